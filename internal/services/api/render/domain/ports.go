package domain

import "context"

// RenderPort renders text into a container, drafts streams through it
type RenderPort interface {
	Render(ctx context.Context, in RenderInput) (RenderOutput, error)
}

// ServicePort defines the service contract for render
type ServicePort interface {
	RenderPort
	Click(ctx context.Context, in ActionInput) (ActionOutput, error)
	Copied(ctx context.Context, containerID string) (CopiedState, error)
	CSS(ctx context.Context) (string, error)
}
