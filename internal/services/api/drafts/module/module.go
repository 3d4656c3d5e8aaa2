// Package module wires drafts into the API using modkit
package module

import (
	"net/http"

	"draftdesk/internal/adapters/llm"
	modkit "draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	str "draftdesk/internal/platform/strings"
	drafthttp "draftdesk/internal/services/api/drafts/http"
	"draftdesk/internal/services/api/drafts/domain"
	draftsvc "draftdesk/internal/services/api/drafts/service"
	renderdom "draftdesk/internal/services/api/render/domain"
)

// Module implements the modkit.Module interface
type Module struct {
	deps     modkit.Deps
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	ports    any
	register []func(httpkit.Router)

	svc draftsvc.Service
}

// Ports declares what drafts needs from other modules
// Generator is optional, an llm.Client built from CORE_DRAFTS_* is used when nil
type Ports struct {
	Detector  draftsvc.Detector
	Renderer  renderdom.RenderPort
	Generator domain.Generator
}

// New constructs a drafts module
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("drafts"), modkit.WithPrefix("/drafts")}, opts...)...)
	o := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}
	if injected.Detector == nil || injected.Renderer == nil {
		panic("drafts API module requires Detector and Renderer ports")
	}
	gen := injected.Generator
	if gen == nil {
		gen = llm.NewClient(o.LLM)
	}

	svc := draftsvc.New(injected.Detector, injected.Renderer, gen, deps.Metrics, o.Request)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}

	m.register = []func(httpkit.Router){func(r httpkit.Router) {
		drafthttp.Register(r, m.svc)
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

// Ports returns the module ports, drafts exposes none
func (m *Module) Ports() any { return m.ports }
