package domain

import (
	"context"

	"draftdesk/internal/adapters/llm"
)

// Emit receives frames in order, an error stops the stream
type Emit func(Frame) error

// Generator is the model behind the drafts, llm.Client satisfies it
type Generator interface {
	Stream(ctx context.Context, req llm.Request, onDelta func(delta string)) error
}

// ServicePort defines the service contract for drafts
type ServicePort interface {
	Stream(ctx context.Context, in DraftInput, emit Emit) error
	Sync(ctx context.Context, in DraftInput) (Frame, error)
}
