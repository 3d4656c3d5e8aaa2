package pg

import (
	"context"
	"strings"
	"time"

	"draftdesk/internal/platform/logger"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
)

// QueryEvent is one finished query
type QueryEvent struct {
	SQL     string
	Args    []any
	Elapsed time.Duration
	Rows    int64
	Err     error
	Slow    bool
}

// Verb is the lowercased leading keyword, "other" when there is none
func (e QueryEvent) Verb() string {
	f := strings.Fields(e.SQL)
	if len(f) == 0 {
		return "other"
	}
	return strings.ToLower(f[0])
}

// QuerySink receives finished queries
type QuerySink interface {
	OnQuery(ctx context.Context, ev QueryEvent)
}

// SinkFunc adapts a func to QuerySink
type SinkFunc func(ctx context.Context, ev QueryEvent)

// OnQuery calls f
func (f SinkFunc) OnQuery(ctx context.Context, ev QueryEvent) { f(ctx, ev) }

// LogSink warns on slow or failed queries, with all set every query is logged at debug
func LogSink(l logger.Logger, all bool) QuerySink {
	l = l.With().Str("component", "pg").Logger()
	return SinkFunc(func(_ context.Context, ev QueryEvent) {
		var e *zerolog.Event
		switch {
		case ev.Err != nil:
			e = l.Warn().Err(ev.Err)
		case ev.Slow:
			e = l.Warn()
		case all:
			e = l.Debug()
		default:
			return
		}
		e.Dur("elapsed", ev.Elapsed).
			Bool("slow", ev.Slow).
			Int64("rows", ev.Rows).
			Str("sql", strings.Join(strings.Fields(ev.SQL), " ")).
			Msg("pg query")
	})
}

type startedKey struct{}

type started struct {
	at   time.Time
	sql  string
	args []any
}

// tracer plugs into pgx.ConnConfig.Tracer
type tracer struct {
	slow  time.Duration
	sinks []QuerySink
}

var _ pgx.QueryTracer = (*tracer)(nil)

func (t *tracer) TraceQueryStart(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryStartData) context.Context {
	return context.WithValue(ctx, startedKey{}, started{at: time.Now(), sql: d.SQL, args: d.Args})
}

func (t *tracer) TraceQueryEnd(ctx context.Context, _ *pgx.Conn, d pgx.TraceQueryEndData) {
	s, ok := ctx.Value(startedKey{}).(started)
	if !ok {
		return
	}
	ev := QueryEvent{
		SQL:     s.sql,
		Args:    s.args,
		Elapsed: time.Since(s.at),
		Rows:    d.CommandTag.RowsAffected(),
		Err:     d.Err,
	}
	ev.Slow = t.slow > 0 && ev.Elapsed >= t.slow
	for _, sink := range t.sinks {
		sink.OnQuery(ctx, ev)
	}
}
