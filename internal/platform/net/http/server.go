package http

import (
	"context"
	"errors"
	stdhttp "net/http"
	"strings"
	"time"

	"draftdesk/internal/platform/config"
	"draftdesk/internal/platform/logger"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"
)

const shutdownGrace = 10 * time.Second

// Server owns the chi mux and the net/http server in front of it
type Server struct {
	addr string
	mux  *chi.Mux
	srv  *stdhttp.Server
}

// NewServer reads ADDR, or PORT when ADDR is unset, plus the read and idle timeouts from cfg
// there is no write timeout, draft streams and station sockets outlive any sane value
func NewServer(cfg config.Conf, opts ...func(*chi.Mux)) *Server {
	addr := cfg.MayString("ADDR", "")
	if addr == "" {
		addr = cfg.MayString("PORT", "4000")
		if !strings.Contains(addr, ":") {
			addr = ":" + addr
		}
	}

	mux := chi.NewRouter()
	for _, o := range opts {
		o(mux)
	}
	return &Server{
		addr: addr,
		mux:  mux,
		srv: &stdhttp.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       cfg.MayDuration("READ_TIMEOUT", 30*time.Second),
			IdleTimeout:       cfg.MayDuration("IDLE_TIMEOUT", 2*time.Minute),
		},
	}
}

// Router is the routing facade over the server mux
func (s *Server) Router() Router { return AdaptChi(s.mux) }

// Addr is the configured listen address
func (s *Server) Addr() string { return s.addr }

// Run serves until ctx is done, then drains for up to shutdownGrace
// a clean shutdown returns nil
func (s *Server) Run(ctx context.Context) error {
	log := logger.Named("http")
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", s.addr).Msg("listening")
		if err := s.srv.ListenAndServe(); !errors.Is(err, stdhttp.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
		defer cancel()
		if err := s.srv.Shutdown(sctx); err != nil {
			log.Error().Err(err).Msg("shutdown")
			return err
		}
		return nil
	})
	return g.Wait()
}

// Shutdown drains the server, Run returns once it is done
func (s *Server) Shutdown(ctx context.Context) error { return s.srv.Shutdown(ctx) }
