// Package module wires render into the API using modkit
package module

import (
	"net/http"
	"strings"

	"draftdesk/internal/core/actions"
	"draftdesk/internal/core/highlight"
	modkit "draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	str "draftdesk/internal/platform/strings"
	renderhttp "draftdesk/internal/services/api/render/http"
	rendersvc "draftdesk/internal/services/api/render/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps     modkit.Deps
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	ports    any
	register []func(httpkit.Router)

	svc rendersvc.Service
}

// Ports lets callers swap the clipboard, tests use actions.Memory
type Ports struct {
	Clipboard actions.Clipboard
}

// New constructs a render module with options from CORE_RENDER_* and CORE_ACTIONS_*
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("render"), modkit.WithPrefix("/render")}, opts...)...)
	o := FromConfig(deps.Cfg)

	var injected Ports
	if p, ok := b.Ports.(Ports); ok {
		injected = p
	}

	log := deps.Log.With().Str("module", b.Name).Logger()
	clip := injected.Clipboard
	if clip == nil {
		clip = pickClipboard(o.Clipboard, func() {
			log.Warn().Msg("system clipboard unavailable, using memory clipboard")
		})
	}

	d := actions.NewDispatcher(clip,
		actions.WithReset(o.CopiedReset),
		actions.WithLogger(log),
		actions.WithRecorder(deps.Metrics),
	)
	svc := rendersvc.New(highlight.New(o.Style), actions.NewRegistry(d, o.Containers), deps.Metrics, o.Highlight)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
	}
	m.ports = adaptRenderPort{svc: svc}

	m.register = []func(httpkit.Router){func(r httpkit.Router) {
		renderhttp.Register(r, m.svc)
	}, b.Register}
	return m
}

func pickClipboard(kind string, onFallback func()) actions.Clipboard {
	if strings.EqualFold(kind, "memory") {
		return &actions.Memory{}
	}
	if !actions.SystemAvailable() {
		onFallback()
		return &actions.Memory{}
	}
	return actions.System()
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register...) }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
