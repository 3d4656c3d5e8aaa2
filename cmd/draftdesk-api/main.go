// @title         Draftdesk API
// @version       0.1.0
// @description   Context detection, streamed reply drafts, markdown rendering and the station feed
// @BasePath      /api/v1

package main

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"os/signal"
	"syscall"

	"draftdesk/internal/platform/config"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
	phttp "draftdesk/internal/platform/net/http"
	"draftdesk/internal/platform/store"
	"draftdesk/internal/platform/store/pg"

	"draftdesk/internal/services/api"
	detectmod "draftdesk/internal/services/api/detect/module"

	"github.com/joho/godotenv"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"
)

func main() {
	// .env is optional, real env vars win
	envFile := os.Getenv("DRAFTDESK_ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Get().Warn().Err(err).Str("file", envFile).Msg("env file not loaded")
	}

	root := config.New()
	apiCfg := root.Prefix("CORE_API_")
	pgCfg := root.Prefix("SERVICE_PGSQL_")

	// bring up logging early
	l := logger.Get()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	reg := prom.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	rec := metrics.New(reg)

	// postgres is optional, without it station history stays in memory
	st, err := store.Open(
		ctx,
		store.Config{
			AppName: "draftdesk-api",
			PG: store.PGConfig{
				Enabled:     pgCfg.MayBool("ENABLED", false),
				URL:         pgCfg.MayString("DBURL", ""),
				MaxConns:    int32(pgCfg.MayInt("MAX_CONNS", 4)),
				SlowQueryMs: pgCfg.MayInt("SLOW_MS", 500),
				LogSQL:      pgCfg.MayBool("LOG_SQL", false),
			},
		},
		store.WithLogger(*logger.Named("store")),
		store.WithQuerySink(pg.SinkFunc(func(_ context.Context, ev pg.QueryEvent) {
			rec.ObserveQuery(ev.Verb(), ev.Elapsed, ev.Err)
		})),
	)
	if err != nil {
		l.Panic().Err(err).Msg("store.Open failed")
	}
	defer func() {
		if err := st.Close(context.Background()); err != nil {
			l.Error().Err(err).Msg("failed to close store")
		}
	}()

	holder, err := detectmod.OpenHolder(ctx, detectmod.FromConfig(root), *logger.Named("contextdetect"), rec)
	if err != nil {
		l.Panic().Err(err).Msg("pattern table failed to load")
	}

	// http server (reads CORE_API_PORT / CORE_API_ADDR)
	srv := phttp.NewServer(apiCfg)

	runners := api.Mount(
		srv.Router(),
		api.Options{
			Config:         root,
			Store:          st,
			Logger:         l,
			Holder:         holder,
			Registry:       reg,
			Metrics:        rec,
			EnableSwagger:  apiCfg.MayBool("SWAGGER", true),
			EnableProfiler: apiCfg.MayBool("PROFILER", false),
			EnableMetrics:  apiCfg.MayBool("METRICS", true),
		},
	)

	// the server and the module loops share a group, the first failure stops them all
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { return srv.Run(gctx) })
	for _, r := range runners {
		g.Go(func() error {
			if err := r.Run(gctx); err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		})
	}

	l.Info().Str("addr", srv.Addr()).Msg("draftdesk api starting")
	if err := g.Wait(); err != nil {
		l.Error().Err(err).Msg("draftdesk api stopped")
	}
}
