package errors

import (
	"context"
	stderrs "errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestFromPostgres(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want ErrorCode
	}{
		{"unique", &pgconn.PgError{Code: "23505"}, ErrorCodeConflict},
		{"starting up", &pgconn.PgError{Code: "57P03"}, ErrorCodeUnavailable},
		{"connection class", &pgconn.PgError{Code: "08006"}, ErrorCodeUnavailable},
		{"too many connections", &pgconn.PgError{Code: "53300"}, ErrorCodeUnavailable},
		{"syntax", &pgconn.PgError{Code: "42601"}, ErrorCodeDB},
		{"wrapped unique", fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505"}), ErrorCodeConflict},
		{"deadline", context.DeadlineExceeded, ErrorCodeUnavailable},
		{"plain", stderrs.New("driver gone"), ErrorCodeDB},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := FromPostgres(tc.err, "station history")
			if CodeOf(err) != tc.want {
				t.Fatalf("code %v want %v", CodeOf(err), tc.want)
			}
			if !stderrs.Is(err, tc.err) {
				t.Fatalf("cause lost")
			}
		})
	}
}

func TestFromPostgres_PassThrough(t *testing.T) {
	if FromPostgres(nil, "x") != nil {
		t.Fatalf("nil should stay nil")
	}
	ours := NotFoundf("track")
	if FromPostgres(ours, "x") != ours {
		t.Fatalf("already classified errors are kept")
	}
}

func TestPgError(t *testing.T) {
	pe := &pgconn.PgError{Code: "23505", ConstraintName: "station_history_pkey"}
	got, ok := PgError(fmt.Errorf("wrap: %w", pe))
	if !ok || got.ConstraintName != "station_history_pkey" {
		t.Fatalf("got %v %v", got, ok)
	}
	if _, ok := PgError(stderrs.New("x")); ok {
		t.Fatalf("plain error is not a PgError")
	}
}
