package httpkit

import (
	"compress/flate"
	"net/http"
	"time"

	"draftdesk/internal/platform/net/middleware"
)

// CommonStack returns the baseline middleware slice for the versioned API
// origins feeds CORS, none means any origin
// request timeouts are per module since draft streams and the station socket stay open
func CommonStack(origins ...string) []func(http.Handler) http.Handler {
	return []func(http.Handler) http.Handler{
		// tracing / correlation
		middleware.RequestID(),
		middleware.RealIP(),

		// safety
		middleware.RecoverJSON,

		// cache / freshness
		middleware.NoCache(),

		// observability
		middleware.AccessLogZerolog(middleware.AccessLogOptions{Slow: 2 * time.Second}),

		middleware.CORS(middleware.CORSOptions{AllowedOrigins: origins}),
		middleware.Compress(flate.BestSpeed),
		middleware.Heartbeat("/health"),
		middleware.RedirectSlashes(),
		middleware.StripSlashes(),
	}
}
