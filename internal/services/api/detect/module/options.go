package module

import (
	"context"
	"time"

	"draftdesk/internal/core/contextdetect"
	"draftdesk/internal/platform/config"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
)

// Options holds the pattern table settings
type Options struct {
	PatternsFile string
	Watch        bool
	Debounce     time.Duration
}

// FromConfig reads CORE_DETECT_*
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_DETECT_")
	return Options{
		PatternsFile: c.MayString("PATTERNS_FILE", ""),
		Watch:        c.MayBool("WATCH", true),
		Debounce:     time.Duration(c.MayInt("DEBOUNCE_MS", 500)) * time.Millisecond,
	}
}

// OpenHolder builds the table holder the detect module is given
// without an override file it serves the embedded table, with one it loads it and
// watches it until ctx is done when Watch is set
func OpenHolder(ctx context.Context, o Options, log logger.Logger, rec *metrics.Recorder) (*contextdetect.Holder, error) {
	t := contextdetect.MustLoad()
	if o.PatternsFile != "" {
		var err error
		if t, err = contextdetect.LoadFile(o.PatternsFile); err != nil {
			return nil, err
		}
	}

	h := contextdetect.NewHolder(t,
		contextdetect.WithLogger(log),
		contextdetect.OnReload(rec.PatternReload),
	)
	if o.PatternsFile != "" && o.Watch {
		if err := h.Watch(ctx, o.PatternsFile, o.Debounce); err != nil {
			return nil, err
		}
	}
	return h, nil
}
