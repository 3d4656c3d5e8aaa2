package middleware

import (
	"net/http"
	"time"

	"draftdesk/internal/platform/logger"
	pnet "draftdesk/internal/platform/net"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

// AccessLogOptions configures AccessLogZerolog
type AccessLogOptions struct {
	// Slow logs requests at warn once they take this long, zero never does
	// draft streams stay open for the whole generation, so keep it well above a normal call
	Slow time.Duration

	// Skip suppresses the line for matching requests
	Skip func(r *http.Request) bool

	// Logger replaces the root logger, tests point it at a buffer
	Logger *logger.Logger
}

// AccessLogZerolog writes one line per request once the handler returns
// the writer is chi's WrapResponseWriter, so SSE flushes and websocket hijacks still reach the connection
func AccessLogZerolog(opt AccessLogOptions) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if opt.Skip != nil && opt.Skip(r) {
				next.ServeHTTP(w, r)
				return
			}

			ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			elapsed := time.Since(start)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}

			l := requestLogger(opt.Logger, r)
			e := l.Info()
			switch {
			case status >= http.StatusInternalServerError:
				e = l.Error()
			case opt.Slow > 0 && elapsed >= opt.Slow:
				e = l.Warn()
			}
			if rc := chi.RouteContext(r.Context()); rc != nil && rc.RoutePattern() != "" {
				e = e.Str("route", rc.RoutePattern())
			}
			e.Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", status).
				Int("bytes", ww.BytesWritten()).
				Dur("elapsed", elapsed).
				Str("remote", r.RemoteAddr).
				Msg("request")
		})
	}
}

func requestLogger(base *logger.Logger, r *http.Request) *logger.Logger {
	id := pnet.RequestID(r.Context())
	if base == nil {
		return logger.C(logger.WithRequest(r.Context(), id, ""))
	}
	l := base.With().Str("request_id", id).Logger()
	return &l
}
