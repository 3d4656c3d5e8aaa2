// Package logger owns the process zerolog root and the request scoped children
package logger

import (
	"context"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"draftdesk/internal/platform/config/raw"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

// Logger is the type every package logs through
type Logger = zerolog.Logger

// Options shapes the root logger
type Options struct {
	Level      string
	Format     string // json or console
	Color      bool
	TimeFormat string
	Caller     bool
	Sampling   int // keep one event in N, 0 and 1 keep all
	Service    string
	Writer     io.Writer
}

// FromEnv reads the LOG_ keys
func FromEnv() Options {
	env := raw.Prefix("LOG_")
	return Options{
		Level:      env.String("LEVEL", "info"),
		Format:     env.String("FORMAT", "console"),
		Color:      env.Bool("COLOR", true),
		TimeFormat: env.String("TIME_FORMAT", time.RFC3339),
		Caller:     env.Bool("CALLER", false),
		Sampling:   env.Int("SAMPLING", 0),
		Service:    env.String("SERVICE", ""),
	}
}

var (
	once sync.Once
	root atomic.Pointer[Logger]
)

// Init installs the root logger, only the first call has any effect
func Init(opt Options) {
	once.Do(func() {
		zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack
		l := build(opt)
		root.Store(&l)
	})
}

// Get returns the root, building it from the environment on first use
func Get() *Logger {
	if l := root.Load(); l != nil {
		return l
	}
	Init(FromEnv())
	return root.Load()
}

func build(opt Options) Logger {
	lvl, err := zerolog.ParseLevel(opt.Level)
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}

	var w io.Writer = os.Stdout
	if opt.Writer != nil {
		w = opt.Writer
	}
	if opt.Format != "json" {
		w = zerolog.ConsoleWriter{Out: w, NoColor: !opt.Color, TimeFormat: opt.TimeFormat}
	}

	c := zerolog.New(w).Level(lvl).With().Timestamp()
	if opt.Service != "" {
		c = c.Str("service", opt.Service)
	}
	if opt.Caller {
		c = c.Caller()
	}
	l := c.Logger()
	if opt.Sampling > 1 {
		l = l.Sample(&zerolog.BasicSampler{N: uint32(opt.Sampling)})
	}
	return l
}

// Named is a root child tagged with component
func Named(component string) *Logger {
	l := Get().With().Str("component", component).Logger()
	return &l
}

type scopeKey struct{}

type scope struct {
	requestID   string
	containerID string
}

// WithRequest remembers the request id and container id for C
// empty values keep whatever ctx already carries
func WithRequest(ctx context.Context, requestID, containerID string) context.Context {
	s, _ := ctx.Value(scopeKey{}).(scope)
	if requestID != "" {
		s.requestID = requestID
	}
	if containerID != "" {
		s.containerID = containerID
	}
	return context.WithValue(ctx, scopeKey{}, s)
}

// C is a root child carrying the ids WithRequest put on ctx
func C(ctx context.Context) *Logger {
	s, _ := ctx.Value(scopeKey{}).(scope)
	c := Get().With()
	if s.requestID != "" {
		c = c.Str("request_id", s.requestID)
	}
	if s.containerID != "" {
		c = c.Str("container_id", s.containerID)
	}
	l := c.Logger()
	return &l
}
