package domain

import "context"

// ServicePort defines the service contract for station
type ServicePort interface {
	State(ctx context.Context) (State, error)
	Enqueue(ctx context.Context, in QueueInput) (State, error)
	Skip(ctx context.Context) (State, error)
	History(ctx context.Context, limit int) (HistoryResult, error)
}
