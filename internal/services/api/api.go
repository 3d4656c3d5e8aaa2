// Package api provides the HTTP API for the application
package api

import (
	"context"
	"net/http"
	"time"

	"draftdesk/internal/core/contextdetect"
	"draftdesk/internal/platform/config"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
	phttp "draftdesk/internal/platform/net/http"
	"draftdesk/internal/platform/net/middleware"
	"draftdesk/internal/platform/store"

	"draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	"draftdesk/internal/modkit/module"
	"draftdesk/internal/modkit/swaggerkit"

	detectmod "draftdesk/internal/services/api/detect/module"
	draftsmod "draftdesk/internal/services/api/drafts/module"
	metamod "draftdesk/internal/services/api/meta/module"
	rendermod "draftdesk/internal/services/api/render/module"
	stationmod "draftdesk/internal/services/api/station/module"

	detectdom "draftdesk/internal/services/api/detect/domain"
	renderdom "draftdesk/internal/services/api/render/domain"

	"github.com/go-chi/chi/v5"
	prom "github.com/prometheus/client_golang/prometheus"
)

// Options are the API options
type Options struct {
	// Config is the root config, modules read their own prefixes from it
	Config   config.Conf
	Store    *store.Store
	Logger   *logger.Logger
	Holder   *contextdetect.Holder
	Registry *prom.Registry
	Metrics  *metrics.Recorder

	EnableSwagger  bool
	EnableProfiler bool
	EnableMetrics  bool
}

// Runner is a background loop owned by a mounted module
type Runner interface {
	Run(ctx context.Context) error
}

// Mount mounts the API service onto the given router and returns the loops the caller must run
func Mount(r phttp.Router, opt Options) []Runner {
	apiCfg := opt.Config.Prefix("CORE_API_")

	log := *logger.Named("api")
	if opt.Logger != nil {
		log = *opt.Logger
	}

	// shared deps for modules
	deps := modkit.Deps{
		Log:     log,
		Cfg:     opt.Config,
		Metrics: opt.Metrics,
	}
	if opt.Store != nil && opt.Store.PG != nil {
		deps.PG = opt.Store.PG
	}

	// plain request/response modules get a deadline, streaming ones do not
	timeout := modkit.WithMiddlewares(middleware.Timeout(apiCfg.MayDuration("REQUEST_TIMEOUT", 30*time.Second)))

	detect := detectmod.New(deps, timeout, modkit.WithPorts(detectmod.Ports{Holder: opt.Holder}))
	detectPort := module.MustPortsOf[detectdom.ServicePort](detect)

	render := rendermod.New(deps, timeout)
	renderPort := module.MustPortsOf[renderdom.RenderPort](render)

	drafts := draftsmod.New(deps, modkit.WithPorts(draftsmod.Ports{
		Detector: detectPort,
		Renderer: renderPort,
	}))

	station := stationmod.New(deps)

	meta := metamod.New(deps, timeout, modkit.WithPorts(metamod.Ports{Patterns: detectPort}))

	mods := []module.Module{meta, detect, render, drafts, station}

	swaggerkit.Mount(r, opt.EnableSwagger)
	phttp.MountProfiler(r, "/debug", opt.EnableProfiler)
	if opt.EnableMetrics {
		r.Handle("/metrics", metrics.HTTPHandler(opt.Registry))
	}

	// versioned API with a common middleware stack
	httpkit.MountAPIV1(r, httpkit.CommonStack(apiCfg.MayCSV("CORS_ORIGINS", nil)...), func(api httpkit.Router) {
		for _, m := range mods {
			// register each module's ports under its own name (for cross-module lookups)
			module.Register(m.Name(), m.Ports())

			// mount module routes under its Prefix()
			m.MountRoutes(api)
		}
	})

	return []Runner{module.MustPortsOf[stationmod.Ports](station).Runner}
}

// Handler is a convenience for tests and embedding, it returns the mounted mux
func Handler(opt Options) (http.Handler, []Runner) {
	r := phttp.AdaptChi(chi.NewRouter())
	runners := Mount(r, opt)
	return r.Mux(), runners
}
