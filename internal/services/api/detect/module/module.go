// Package module wires detect into the API using modkit
package module

import (
	"net/http"

	"draftdesk/internal/core/contextdetect"
	modkit "draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	str "draftdesk/internal/platform/strings"
	detecthttp "draftdesk/internal/services/api/detect/http"
	detectsvc "draftdesk/internal/services/api/detect/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps     modkit.Deps
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	ports    any
	register []func(httpkit.Router)

	svc detectsvc.Service
}

// Ports declares what the detect module needs injected
type Ports struct {
	Holder *contextdetect.Holder
}

// New constructs a detect module, the pattern table holder comes in through modkit.WithPorts
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("detect"), modkit.WithPrefix("/detect")}, opts...)...)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Holder == nil {
		panic("detect API module requires a pattern table Holder port")
	}

	svc := detectsvc.New(injected.Holder, deps.Metrics)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = adaptDetectPort{svc: svc}

	m.register = []func(httpkit.Router){func(r httpkit.Router) {
		detecthttp.Register(r, m.svc)
	}, b.Register}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register...) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
