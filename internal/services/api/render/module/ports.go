package module

import (
	"context"

	renderdom "draftdesk/internal/services/api/render/domain"
	rendersvc "draftdesk/internal/services/api/render/service"
)

// Ports returns the module ports, a renderdom.RenderPort
func (m *Module) Ports() any { return m.ports }

// adaptRenderPort exposes only rendering to other modules
type adaptRenderPort struct{ svc rendersvc.Service }

// Render implements renderdom.RenderPort
func (a adaptRenderPort) Render(ctx context.Context, in renderdom.RenderInput) (renderdom.RenderOutput, error) {
	return a.svc.Render(ctx, in)
}
