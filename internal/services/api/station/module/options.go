package module

import (
	"time"

	"draftdesk/internal/platform/config"
	stationsvc "draftdesk/internal/services/api/station/service"
)

// Options controls the station
type Options struct {
	Name         string
	Tick         time.Duration
	HistoryLimit int
	Origins      []string
	Migrate      bool // create the history table on startup
}

// FromConfig reads CORE_STATION_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	sc := cfg.Prefix("CORE_STATION_")
	return Options{
		Name:         sc.MayString("NAME", "draftdesk radio"),
		Tick:         time.Duration(sc.MayInt("TICK_MS", int(stationsvc.DefaultTick/time.Millisecond))) * time.Millisecond,
		HistoryLimit: sc.MayInt("HISTORY_LIMIT", 100),
		Origins:      sc.MayCSV("ORIGINS", nil),
		Migrate:      sc.MayBool("MIGRATE", true),
	}
}
