// Package module mounts /meta, it owns no service and exposes no ports
package module

import (
	"net/http"
	"time"

	modkit "draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	str "draftdesk/internal/platform/strings"

	metahttp "draftdesk/internal/services/api/meta/http"
)

// ServiceName is what /meta reports as the running service
const ServiceName = "draftdesk-api"

// Module implements the modkit.Module interface
type Module struct {
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	register []func(httpkit.Router)
}

// Ports declares what meta reads from other modules, all optional
type Ports struct {
	Patterns metahttp.PatternSource
}

// New builds the meta module, the process start time is taken here
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("meta"), modkit.WithPrefix("/meta")}, opts...)...)

	d := metahttp.Deps{ServiceName: ServiceName, StartedAt: time.Now()}
	if p, ok := b.Ports.(Ports); ok {
		d.Patterns = p.Patterns
	}
	if pg, ok := deps.PG.(metahttp.Pinger); ok {
		d.PG = pg
	}

	return &Module{
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		register: []func(httpkit.Router){
			func(r httpkit.Router) { metahttp.Register(r, d) },
			b.Register,
		},
	}
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register...) }

// Name implements the modkit.Module interface
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the mount path
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Ports implements the modkit.Module interface
func (m *Module) Ports() any { return nil }
