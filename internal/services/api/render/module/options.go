package module

import (
	"time"

	"draftdesk/internal/core/actions"
	"draftdesk/internal/core/highlight"
	"draftdesk/internal/platform/config"
)

// Options controls rendering and the copy action dispatcher
type Options struct {
	Highlight bool   // highlight code blocks unless a request says otherwise
	Style     string // chroma style name

	Clipboard   string        // system or memory
	CopiedReset time.Duration // how long a button shows copied
	Containers  int           // live containers kept before the least recently used is dropped
}

// FromConfig reads CORE_RENDER_* and CORE_ACTIONS_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_RENDER_")
	ac := cfg.Prefix("CORE_ACTIONS_")
	return Options{
		Highlight:   rc.MayBool("HIGHLIGHT", true),
		Style:       rc.MayString("STYLE", highlight.DefaultStyle),
		Clipboard:   ac.MayEnum("CLIPBOARD", "system", "system", "memory"),
		CopiedReset: time.Duration(ac.MayInt("COPIED_RESET_MS", int(actions.DefaultReset/time.Millisecond))) * time.Millisecond,
		Containers:  ac.MayInt("CONTAINERS", actions.DefaultCapacity),
	}
}
