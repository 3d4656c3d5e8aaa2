// Package module wires station into the API using modkit
package module

import (
	"context"
	"net/http"
	"time"

	modkit "draftdesk/internal/modkit"
	"draftdesk/internal/modkit/httpkit"
	"draftdesk/internal/modkit/repokit"
	str "draftdesk/internal/platform/strings"
	stationhttp "draftdesk/internal/services/api/station/http"
	stationrepo "draftdesk/internal/services/api/station/repo"
	stationsvc "draftdesk/internal/services/api/station/service"
)

// Module implements the modkit.Module interface
type Module struct {
	deps     modkit.Deps
	name     string
	prefix   string
	mws      []func(http.Handler) http.Handler
	ports    Ports
	register []func(httpkit.Router)

	svc *stationsvc.Svc
}

// Runner is a background loop the binary starts next to the http server
type Runner interface {
	Run(ctx context.Context) error
}

// Ports exposes the station loop to the process
type Ports struct {
	Runner Runner
}

// New constructs the station module, history goes to Postgres when deps carry it
func New(deps modkit.Deps, opts ...modkit.Option) modkit.Module {
	b := modkit.Build(append([]modkit.Option{modkit.WithName("station"), modkit.WithPrefix("/station")}, opts...)...)
	o := FromConfig(deps.Cfg)
	log := deps.Log.With().Str("module", b.Name).Logger()

	var (
		hist   stationrepo.Repo = stationrepo.NewMemory(o.HistoryLimit)
		source                  = "memory"
	)
	if deps.HasPG() {
		ok := true
		if o.Migrate {
			ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			if err := stationrepo.Migrate(ctx, deps.PG); err != nil {
				log.Error().Err(err).Msg("station history migration failed, keeping history in memory")
				ok = false
			}
			cancel()
		}
		if ok {
			hist = repokit.MustBind(stationrepo.NewPG(), repokit.Queryer(deps.PG))
			source = "pg"
		}
	}

	svc := stationsvc.New(stationsvc.Config{
		Name:          o.Name,
		Tick:          o.Tick,
		Origins:       o.Origins,
		HistorySource: source,
	}, hist, deps.Metrics)

	m := &Module{
		deps:   deps,
		name:   b.Name,
		prefix: b.Prefix,
		mws:    b.Mw,
		svc:    svc,
		ports:  Ports{Runner: svc},
	}

	m.register = []func(httpkit.Router){func(r httpkit.Router) {
		stationhttp.Register(r, m.svc)
	}, b.Register}
	return m
}

// MountRoutes implements the modkit.Module interface
func (m *Module) MountRoutes(r httpkit.Router) { modkit.Mount(r, m.prefix, m.mws, m.register...) }

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }

// Name returns the module name
func (m *Module) Name() string { return str.MustString(m.name, "module name") }

// Prefix returns the module route prefix
func (m *Module) Prefix() string { return str.MustPrefix(m.prefix) }

// Middlewares returns the module middlewares
func (m *Module) Middlewares() []func(http.Handler) http.Handler { return m.mws }
