// Package repo stores the station play history
package repo

import (
	"context"
	"sync"
	"time"

	"draftdesk/internal/modkit/repokit"
	"draftdesk/internal/platform/store"
)

// MaxLimit caps a single history read
const MaxLimit = 200

// Repo defines the repository contract for station history
type Repo interface {
	Append(ctx context.Context, p RowPlayed) error
	Recent(ctx context.Context, limit int) ([]RowPlayed, error)
}

// RowPlayed is one history row
type RowPlayed struct {
	TrackID   string
	Title     string
	URL       string
	DurationS int
	StartedAt time.Time
}

// Schema creates the history table, Migrate runs it at startup
var Schema = []string{
	`create table if not exists station_history (
	id         bigserial primary key,
	track_id   text        not null,
	title      text        not null,
	url        text        not null,
	duration_s integer     not null,
	started_at timestamptz not null default now()
)`,
	`create index if not exists station_history_started_at_idx on station_history (started_at desc)`,
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

// Migrate applies Schema in a single transaction
func Migrate(ctx context.Context, tx repokit.TxRunner) error {
	return repokit.WithTx(ctx, tx, func(q repokit.Queryer) error {
		for _, stmt := range Schema {
			if _, err := q.Exec(ctx, stmt); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *queries) Append(ctx context.Context, p RowPlayed) error {
	const sql = `
insert into station_history (track_id, title, url, duration_s, started_at)
values ($1, $2, $3, $4, $5)
`
	return store.ExecOne(ctx, r.q, sql, p.TrackID, p.Title, p.URL, p.DurationS, p.StartedAt)
}

func (r *queries) Recent(ctx context.Context, limit int) ([]RowPlayed, error) {
	const sql = `
select track_id, title, url, duration_s, started_at
from station_history
order by started_at desc, id desc
limit $1
`
	return store.Many(ctx, r.q, scanPlayed, sql, clamp(limit))
}

func scanPlayed(row store.Row) (RowPlayed, error) {
	var p RowPlayed
	err := row.Scan(&p.TrackID, &p.Title, &p.URL, &p.DurationS, &p.StartedAt)
	return p, err
}

// Memory keeps the newest cap entries in process
type Memory struct {
	mu    sync.Mutex
	cap   int
	items []RowPlayed // oldest first
}

// NewMemory returns an in memory history holding at most capacity rows
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = 100
	}
	return &Memory{cap: capacity}
}

// Append records p, dropping the oldest row when full
func (m *Memory) Append(_ context.Context, p RowPlayed) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items = append(m.items, p)
	if over := len(m.items) - m.cap; over > 0 {
		m.items = append(m.items[:0:0], m.items[over:]...)
	}
	return nil
}

// Recent returns up to limit rows, newest first
func (m *Memory) Recent(_ context.Context, limit int) ([]RowPlayed, error) {
	limit = clamp(limit)
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]RowPlayed, 0, min(limit, len(m.items)))
	for i := len(m.items) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, m.items[i])
	}
	return out, nil
}

func clamp(limit int) int {
	if limit <= 0 || limit > MaxLimit {
		return 50
	}
	return limit
}
