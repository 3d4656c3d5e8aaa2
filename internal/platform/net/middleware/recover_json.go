package middleware

import (
	stdhttp "net/http"
	"runtime/debug"

	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/logger"
	pnet "draftdesk/internal/platform/net"
	phttp "draftdesk/internal/platform/net/http"
)

// RecoverJSON turns a panic into the usual error envelope with a 500
// http.ErrAbortHandler is re-raised, it is how a handler drops a stream on purpose
func RecoverJSON(next stdhttp.Handler) stdhttp.Handler {
	return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
		defer func() {
			v := recover()
			if v == nil {
				return
			}
			if v == stdhttp.ErrAbortHandler {
				panic(v)
			}

			reqID := pnet.RequestID(r.Context())
			logger.C(logger.WithRequest(r.Context(), reqID, "")).Error().
				Interface("panic", v).
				Bytes("stack", debug.Stack()).
				Str("path", r.URL.Path).
				Msg("panic recovered")

			env := phttp.ErrorEnvelope(r, perr.New(perr.ErrorCodePanic, "panic recovered"))
			phttp.WriteJSON(w, env.StatusCode, env)
		}()
		next.ServeHTTP(w, r)
	})
}
