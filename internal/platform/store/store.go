// Package store is the optional Postgres backend behind station history
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/store/pg"
)

// Store holds whichever backends were enabled, the zero value has none
type Store struct {
	Log logger.Logger

	// PG is nil unless postgres is enabled
	PG TxRunner

	sinks []pg.QuerySink
}

// Config selects and configures backends
type Config struct {
	AppName string
	PG      PGConfig
}

// PGConfig is the postgres part of Config
type PGConfig struct {
	Enabled     bool
	URL         string
	MaxConns    int32
	LogSQL      bool
	SlowQueryMs int

	// zero picks the openPG defaults
	ConnectRetries int
	PingTimeout    time.Duration
}

// Row is a single result row
type Row interface {
	Scan(dest ...any) error
}

// Rows is a result set, Close must be called
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Err() error
	Close()
}

// CommandTag reports what a write did
type CommandTag interface {
	String() string
	RowsAffected() int64
}

// RowQuerier runs sql, repos take one of these
type RowQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) Row
}

// TxRunner is a RowQuerier that can also open transactions
// fn's error rolls the transaction back
type TxRunner interface {
	RowQuerier
	Tx(ctx context.Context, fn func(q RowQuerier) error) error
}

// Option configures Open
type Option func(*Store) error

// WithLogger sets the store logger, slow queries are reported on it
func WithLogger(l logger.Logger) Option {
	return func(s *Store) error {
		s.Log = l
		return nil
	}
}

// WithQuerySink adds a receiver for every traced query
func WithQuerySink(sink pg.QuerySink) Option {
	return func(s *Store) error {
		if sink == nil {
			return errors.New("store: nil query sink")
		}
		s.sinks = append(s.sinks, sink)
		return nil
	}
}

// Open brings up the backends cfg enables
func Open(ctx context.Context, cfg Config, opts ...Option) (*Store, error) {
	s := &Store{}
	for _, o := range opts {
		if err := o(s); err != nil {
			return nil, err
		}
	}
	s.Log = s.Log.With().Logger()

	if cfg.PG.Enabled {
		db, err := openPG(ctx, cfg, s.Log, s.sinks)
		if err != nil {
			return nil, err
		}
		s.PG = db
	}
	return s, nil
}

// Guard pings every open backend
func (s *Store) Guard(ctx context.Context) error {
	if s == nil {
		return errors.New("store: nil")
	}
	if p, ok := s.PG.(interface{ Ping(context.Context) error }); ok {
		if err := p.Ping(ctx); err != nil {
			return fmt.Errorf("pg: %w", err)
		}
	}
	return nil
}

// Close releases every open backend
func (s *Store) Close(context.Context) error {
	if c, ok := s.PG.(interface{ Close() error }); ok {
		return c.Close()
	}
	return nil
}
