package domain

import "context"

// ServicePort defines the service contract for detect
// other modules (drafts, meta) consume it through the module ports
type ServicePort interface {
	Detect(ctx context.Context, in DetectInput) (DetectResult, error)
	Domains(ctx context.Context) (DomainsResult, error)
}
