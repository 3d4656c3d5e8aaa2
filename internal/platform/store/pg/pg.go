// Package pg opens the pgx pool and reports every query to a set of sinks
package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config is what the pool needs from the environment
type Config struct {
	URL      string
	MaxConns int32
	AppName  string

	// Slow flags queries at or above it, zero flags none
	Slow time.Duration
}

var newPool = pgxpool.NewWithConfig

// Open parses cfg and creates the pool, it does not wait for the server
func Open(ctx context.Context, cfg Config, sinks ...QuerySink) (*pgxpool.Pool, error) {
	pc, err := pgxpool.ParseConfig(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("pg: parse url: %w", err)
	}
	if cfg.MaxConns > 0 {
		pc.MaxConns = cfg.MaxConns
	}
	if cfg.AppName != "" {
		pc.ConnConfig.RuntimeParams["application_name"] = cfg.AppName
	}
	if len(sinks) > 0 {
		pc.ConnConfig.Tracer = &tracer{slow: cfg.Slow, sinks: sinks}
	}
	pool, err := newPool(ctx, pc)
	if err != nil {
		return nil, fmt.Errorf("pg: new pool: %w", err)
	}
	return pool, nil
}
