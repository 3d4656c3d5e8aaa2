// Package repokit is what SQL backed repos are written against
package repokit

import (
	"context"

	"draftdesk/internal/platform/store"
)

type (
	// Queryer is the read and write surface a repo runs statements on
	Queryer = store.RowQuerier

	// TxRunner is a Queryer that can also open a transaction
	TxRunner = store.TxRunner

	// Row is a single result row
	Row = store.Row
)

// Binder builds a repo over a Queryer, the pool or a transaction
type Binder[T any] interface {
	Bind(Queryer) T
}

// BindFunc is a Binder from a plain func
type BindFunc[T any] func(Queryer) T

// Bind calls f
func (f BindFunc[T]) Bind(q Queryer) T { return f(q) }

// MustBind binds q and panics on a nil Queryer, that is a wiring bug
func MustBind[T any](b Binder[T], q Queryer) T {
	if q == nil {
		panic("repokit: nil Queryer")
	}
	return b.Bind(q)
}

// WithTx runs fn in one transaction on tx
func WithTx(ctx context.Context, tx TxRunner, fn func(q Queryer) error) error {
	return tx.Tx(ctx, fn)
}
