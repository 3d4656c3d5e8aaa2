// Package modkit builds API modules from shared deps and functional options
package modkit

import (
	"net/http"

	"draftdesk/internal/modkit/module"
	"draftdesk/internal/modkit/repokit"
	"draftdesk/internal/platform/config"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
	phttp "draftdesk/internal/platform/net/http"
)

// Module is what the api package mounts
type Module = module.Module

// Deps is handed to every module constructor
// PG and Metrics may be nil, modules fall back to in memory state and no metrics
type Deps struct {
	Log     logger.Logger
	Cfg     config.Conf
	PG      repokit.TxRunner
	Metrics *metrics.Recorder
}

// HasPG reports whether postgres is wired
func (d Deps) HasPG() bool { return d.PG != nil }

// Option tunes a module at construction
type Option func(*Built)

// Built is the resolved option set a module constructor reads
type Built struct {
	Name     string
	Prefix   string
	Mw       []func(http.Handler) http.Handler
	Ports    any
	Register func(phttp.Router)
}

// Build resolves opts in order, later options win
func Build(opts ...Option) Built {
	var b Built
	for _, o := range opts {
		o(&b)
	}
	return b
}

// WithName names the module in logs and the port registry
func WithName(name string) Option { return func(b *Built) { b.Name = name } }

// WithPrefix sets the route prefix under /api/v1
func WithPrefix(prefix string) Option { return func(b *Built) { b.Prefix = prefix } }

// WithMiddlewares appends module scoped middleware
func WithMiddlewares(mw ...func(http.Handler) http.Handler) Option {
	return func(b *Built) { b.Mw = append(b.Mw, mw...) }
}

// WithPorts injects what the module needs from its neighbours, the type is the module's own
func WithPorts[T any](p T) Option { return func(b *Built) { b.Ports = p } }

// WithRegister adds routes after the module's own, tests use it to hang probes on a module
func WithRegister(fn func(phttp.Router)) Option { return func(b *Built) { b.Register = fn } }

// Mount opens prefix on r, applies mw and runs every non nil register in order
func Mount(r phttp.Router, prefix string, mw []func(http.Handler) http.Handler, register ...func(phttp.Router)) {
	r.Route(prefix, func(sub phttp.Router) {
		for _, m := range mw {
			sub.Use(m)
		}
		for _, reg := range register {
			if reg != nil {
				reg(sub)
			}
		}
	})
}
