package pg

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"draftdesk/internal/platform/testkit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func TestOpen_BadURL(t *testing.T) {
	if _, err := Open(context.Background(), Config{URL: "::not a dsn"}); err == nil {
		t.Fatalf("expected parse error")
	}
}

func TestOpen_AppliesConfig(t *testing.T) {
	testkit.Serial(t)
	var got *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		got = pc
		return nil, errors.New("no server in unit tests")
	})

	_, err := Open(context.Background(), Config{
		URL:      "postgres://draftdesk:pw@localhost:5432/draftdesk",
		MaxConns: 3,
		AppName:  "draftdesk-api",
	}, LogSink(zerolog.Nop(), false))
	if err == nil || !strings.Contains(err.Error(), "no server") {
		t.Fatalf("err %v", err)
	}
	if got.MaxConns != 3 {
		t.Fatalf("max conns %d", got.MaxConns)
	}
	if got.ConnConfig.RuntimeParams["application_name"] != "draftdesk-api" {
		t.Fatalf("runtime params %v", got.ConnConfig.RuntimeParams)
	}
	if _, ok := got.ConnConfig.Tracer.(*tracer); !ok {
		t.Fatalf("tracer not installed: %T", got.ConnConfig.Tracer)
	}
}

func TestOpen_NoSinksNoTracer(t *testing.T) {
	testkit.Serial(t)
	var got *pgxpool.Config
	testkit.Swap(t, &newPool, func(_ context.Context, pc *pgxpool.Config) (*pgxpool.Pool, error) {
		got = pc
		return nil, errors.New("stop")
	})
	_, _ = Open(context.Background(), Config{URL: "postgres://localhost/draftdesk"})
	if got.ConnConfig.Tracer != nil {
		t.Fatalf("unexpected tracer %T", got.ConnConfig.Tracer)
	}
}

func TestTracer_EmitsEvent(t *testing.T) {
	var evs []QueryEvent
	tr := &tracer{slow: time.Nanosecond, sinks: []QuerySink{SinkFunc(func(_ context.Context, ev QueryEvent) {
		evs = append(evs, ev)
	})}}

	ctx := tr.TraceQueryStart(context.Background(), nil, pgx.TraceQueryStartData{
		SQL:  "insert into station_history (track_id) values ($1)",
		Args: []any{"t1"},
	})
	time.Sleep(time.Millisecond)
	tr.TraceQueryEnd(ctx, nil, pgx.TraceQueryEndData{CommandTag: pgconn.NewCommandTag("INSERT 0 1")})

	if len(evs) != 1 {
		t.Fatalf("events %d", len(evs))
	}
	ev := evs[0]
	if ev.Verb() != "insert" || ev.Rows != 1 || !ev.Slow || ev.Elapsed <= 0 {
		t.Fatalf("event %+v", ev)
	}
	if ev.Args[0] != "t1" {
		t.Fatalf("args %v", ev.Args)
	}
}

func TestTracer_EndWithoutStart(t *testing.T) {
	called := false
	tr := &tracer{sinks: []QuerySink{SinkFunc(func(context.Context, QueryEvent) { called = true })}}
	tr.TraceQueryEnd(context.Background(), nil, pgx.TraceQueryEndData{})
	if called {
		t.Fatalf("sink called without a start")
	}
}

func TestQueryEvent_Verb(t *testing.T) {
	for sql, want := range map[string]string{
		"\n  SELECT 1":           "select",
		"create table x (a int)": "create",
		"   ":                    "other",
	} {
		if got := (QueryEvent{SQL: sql}).Verb(); got != want {
			t.Fatalf("%q: %q want %q", sql, got, want)
		}
	}
}

func TestLogSink(t *testing.T) {
	var buf bytes.Buffer
	l := zerolog.New(&buf)

	LogSink(l, false).OnQuery(context.Background(), QueryEvent{SQL: "select 1"})
	if buf.Len() != 0 {
		t.Fatalf("fast query logged without all: %s", buf.String())
	}

	LogSink(l, false).OnQuery(context.Background(), QueryEvent{SQL: "select\n\t *  from station_history", Slow: true})
	testkit.MustContain(t, buf.String(), `"level":"warn"`)
	testkit.MustContain(t, buf.String(), `"sql":"select * from station_history"`)

	buf.Reset()
	LogSink(l, true).OnQuery(context.Background(), QueryEvent{SQL: "select 1"})
	testkit.MustContain(t, buf.String(), `"level":"debug"`)
	testkit.MustContain(t, buf.String(), `"component":"pg"`)

	buf.Reset()
	LogSink(l, false).OnQuery(context.Background(), QueryEvent{SQL: "select 1", Err: errors.New("conn reset")})
	testkit.MustContain(t, buf.String(), "conn reset")
}
