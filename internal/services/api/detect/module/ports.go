package module

import (
	"context"

	detectdom "draftdesk/internal/services/api/detect/domain"
	detectsvc "draftdesk/internal/services/api/detect/service"
)

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// adaptDetectPort adapts the detect service to the domain port interface
type adaptDetectPort struct{ svc detectsvc.Service }

// Detect implements the domain ServicePort interface
func (a adaptDetectPort) Detect(ctx context.Context, in detectdom.DetectInput) (detectdom.DetectResult, error) {
	return a.svc.Detect(ctx, in)
}

// Domains implements the domain ServicePort interface
func (a adaptDetectPort) Domains(ctx context.Context) (detectdom.DomainsResult, error) {
	return a.svc.Domains(ctx)
}
