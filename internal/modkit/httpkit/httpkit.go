// Package httpkit is the HTTP surface modules build their routes with
// modules import this instead of platform/net/http
package httpkit

import (
	"net/http"
	"strings"

	phttp "draftdesk/internal/platform/net/http"
	"draftdesk/internal/platform/net/http/bind"
)

type (
	// Envelope is the JSON body every non streaming route answers with
	Envelope = phttp.Envelope

	// Response is what Handle style handlers return
	Response = phttp.Response

	// Handler is a plain handler func
	Handler = phttp.Handler

	// Router is the routing seam
	Router = phttp.Router
)

// Error wraps err as a Response
func Error(err error) Response { return phttp.Error(err) }

// Handle adapts a Response returning func
func Handle(fn func(*http.Request) Response) Handler { return phttp.Handle(fn) }

// Param returns a path parameter
func Param(r *http.Request, name string) string { return phttp.Param(r, name) }

// Bind decodes and validates a body for handlers that write their own response, e.g. SSE
func Bind[T any](r *http.Request) (T, error) { return bind.ParseJSON[T](r) }

// Get mounts a GET returning (data, error)
func Get(r Router, path string, h func(*http.Request) (any, error)) { r.Get(path, phttp.Call(h)) }

// Post mounts a POST without a body
func Post(r Router, path string, h func(*http.Request) (any, error)) { r.Post(path, phttp.Call(h)) }

// PostJSON mounts a POST whose body binds into T
func PostJSON[T any](r Router, path string, h func(*http.Request, T) (any, error)) {
	r.Post(path, phttp.JSON(h))
}

// MountAPIV1 scopes mount under /api/v1 with the given middleware
func MountAPIV1(r Router, mw []func(http.Handler) http.Handler, mount func(Router)) {
	MountAPI(r, "v1", mw, mount)
}

// MountAPI scopes mount under /api/{version}
func MountAPI(r Router, version string, mw []func(http.Handler) http.Handler, mount func(Router)) {
	r.Route("/api/"+strings.TrimPrefix(version, "/"), func(api Router) {
		if len(mw) > 0 {
			api.Use(mw...)
		}
		mount(api)
	})
}
