package store

import (
	"context"
	"fmt"
	"time"

	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/store/pg"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultConnectRetries = 20
	defaultPingTimeout    = 3 * time.Second
	maxPingBackoff        = 2 * time.Second
)

// pingPool is swapped in tests
var pingPool = func(ctx context.Context, p *pgxpool.Pool) error { return p.Ping(ctx) }

// openPG opens the pool and waits for postgres to answer
// compose starts the api next to a cold database, so refusals are retried with backoff
func openPG(ctx context.Context, cfg Config, log logger.Logger, sinks []pg.QuerySink) (*pgStore, error) {
	sinks = append([]pg.QuerySink{pg.LogSink(log, cfg.PG.LogSQL)}, sinks...)
	pool, err := pg.Open(ctx, pg.Config{
		URL:      cfg.PG.URL,
		MaxConns: cfg.PG.MaxConns,
		AppName:  cfg.AppName,
		Slow:     time.Duration(cfg.PG.SlowQueryMs) * time.Millisecond,
	}, sinks...)
	if err != nil {
		return nil, err
	}

	retries := cfg.PG.ConnectRetries
	if retries <= 0 {
		retries = defaultConnectRetries
	}
	timeout := cfg.PG.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	wait := 150 * time.Millisecond
	var last error
	for attempt := 1; attempt <= retries; attempt++ {
		pctx, cancel := context.WithTimeout(ctx, timeout)
		last = pingPool(pctx, pool)
		cancel()
		if last == nil {
			log.Info().Int("attempt", attempt).Msg("postgres ready")
			return &pgStore{pool: pool}, nil
		}
		log.Debug().Err(last).Int("attempt", attempt).Msg("postgres not ready")

		select {
		case <-ctx.Done():
			pool.Close()
			return nil, ctx.Err()
		case <-time.After(wait):
		}
		wait = min(wait*2, maxPingBackoff)
	}
	pool.Close()
	return nil, fmt.Errorf("postgres unreachable after %d pings: %w", retries, last)
}

// pgxQuerier is the query surface pgxpool.Pool and pgx.Tx share
type pgxQuerier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// querier narrows pgx results to the store interfaces
type querier struct{ q pgxQuerier }

func (x querier) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	tag, err := x.q.Exec(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

func (x querier) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	rows, err := x.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (x querier) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return x.q.QueryRow(ctx, sql, args...)
}

// pgStore is the TxRunner over a pgx pool
type pgStore struct {
	pool *pgxpool.Pool
}

func (s *pgStore) Exec(ctx context.Context, sql string, args ...any) (CommandTag, error) {
	return querier{s.pool}.Exec(ctx, sql, args...)
}

func (s *pgStore) Query(ctx context.Context, sql string, args ...any) (Rows, error) {
	return querier{s.pool}.Query(ctx, sql, args...)
}

func (s *pgStore) QueryRow(ctx context.Context, sql string, args ...any) Row {
	return querier{s.pool}.QueryRow(ctx, sql, args...)
}

func (s *pgStore) Tx(ctx context.Context, fn func(q RowQuerier) error) error {
	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		return fn(querier{tx})
	})
}

func (s *pgStore) Ping(ctx context.Context) error { return s.pool.Ping(ctx) }

func (s *pgStore) Close() error {
	s.pool.Close()
	return nil
}
