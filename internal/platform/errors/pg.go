package errors

import (
	"context"
	stderrs "errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// sqlstate classes and codes the station history can hit
const (
	pgUniqueViolation  = "23505"
	pgCannotConnectNow = "57P03"
	pgClassConnection  = "08"
	pgClassResources   = "53"
)

// PgError returns the *pgconn.PgError in err's chain
func PgError(err error) (*pgconn.PgError, bool) {
	var pe *pgconn.PgError
	if stderrs.As(err, &pe) {
		return pe, true
	}
	return nil, false
}

// FromPostgres wraps a driver error with the code the API should report
//
// unique violations are conflicts, connection and resource classes are
// unavailable, everything else is ErrorCodeDB. nil stays nil.
func FromPostgres(err error, msg string) error {
	if err == nil {
		return nil
	}
	if _, ok := As(err); ok {
		return err
	}
	return Wrap(err, pgCode(err), msg)
}

func pgCode(err error) ErrorCode {
	if stderrs.Is(err, context.DeadlineExceeded) {
		return ErrorCodeUnavailable
	}
	if pgconn.SafeToRetry(err) || pgconn.Timeout(err) {
		return ErrorCodeUnavailable
	}
	pe, ok := PgError(err)
	if !ok {
		return ErrorCodeDB
	}
	switch {
	case pe.Code == pgUniqueViolation:
		return ErrorCodeConflict
	case pe.Code == pgCannotConnectNow,
		len(pe.Code) == 5 && (pe.Code[:2] == pgClassConnection || pe.Code[:2] == pgClassResources):
		return ErrorCodeUnavailable
	default:
		return ErrorCodeDB
	}
}
