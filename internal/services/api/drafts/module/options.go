package module

import (
	"time"

	"draftdesk/internal/adapters/llm"
	"draftdesk/internal/platform/config"
	draftsvc "draftdesk/internal/services/api/drafts/service"
)

// Options holds the LLM client settings and request tuning for drafts
type Options struct {
	LLM     llm.Options
	Request draftsvc.Options
}

// FromConfig reads CORE_DRAFTS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("CORE_DRAFTS_")
	model := dc.MayString("LLM_MODEL", "")
	return Options{
		LLM: llm.Options{
			BaseURL:    dc.MayString("LLM_BASE_URL", ""),
			APIKey:     dc.MayString("LLM_API_KEY", ""),
			Model:      model,
			UserAgent:  dc.MayString("LLM_UA", "draftdesk-drafts"),
			Timeout:    dc.MayDuration("LLM_TIMEOUT", 30*time.Second),
			RPS:        dc.MayFloat64("LLM_RPS", 0),
			Burst:      dc.MayInt("LLM_BURST", 1),
			MaxRetries: dc.MayInt("LLM_MAX_RETRIES", 3),
			RetryBase:  dc.MayDuration("LLM_RETRY_BASE", 500*time.Millisecond),
		},
		Request: draftsvc.Options{
			Model:       model,
			Temperature: dc.MayFloat64("TEMPERATURE", 0.3),
			MaxTokens:   dc.MayInt("MAX_TOKENS", 0),
		},
	}
}
