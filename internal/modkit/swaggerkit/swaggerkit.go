// Package swaggerkit serves the OpenAPI document and the swagger UI under /api/docs
package swaggerkit

import (
	"encoding/json"
	"net/http"
	"strings"

	"draftdesk/internal/core/version"
	perr "draftdesk/internal/platform/errors"
	phttp "draftdesk/internal/platform/net/http"

	httpSwagger "github.com/swaggo/http-swagger"
)

// BasePath is where the versioned API is mounted
const BasePath = "/api/v1"

// Mount registers the UI and doc.json when enabled
func Mount(r phttp.Router, enabled bool) {
	if !enabled {
		return
	}
	r.Get("/api/docs", func(w http.ResponseWriter, req *http.Request) {
		http.Redirect(w, req, "/api/docs/", http.StatusPermanentRedirect)
	})
	r.Get("/api/docs/doc.json", serveDoc(readDoc))
	r.Handle("/api/docs/*", httpSwagger.Handler(
		httpSwagger.InstanceName("api"),
		httpSwagger.URL("/api/docs/doc.json"),
	))
}

func serveDoc(read func() string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		var spec map[string]any
		if err := json.Unmarshal([]byte(read()), &spec); err != nil {
			err = perr.Wrap(err, perr.ErrorCodeUnknown, "openapi document does not parse")
			phttp.Handle(func(*http.Request) phttp.Response { return phttp.Error(err) })(w, req)
			return
		}
		patch(spec)
		w.Header().Set("Cache-Control", "no-store")
		phttp.WriteJSON(w, http.StatusOK, spec)
	}
}

// patch fixes up what swag emits so the UI shows the runtime contract
// the UI renders 3.0 only, so 3.1 documents are served as 3.0.3
func patch(spec map[string]any) {
	if v, _ := spec["openapi"].(string); v == "" || strings.HasPrefix(v, "3.1") {
		spec["openapi"] = "3.0.3"
	}
	delete(spec, "swagger")
	if _, ok := spec["servers"]; !ok {
		spec["servers"] = []any{map[string]any{"url": BasePath}}
	}
	info := child(spec, "info")
	if v := version.Info().Version; v != "" && v != "dev" {
		info["version"] = v
	}

	schemas := child(child(spec, "components"), "schemas")
	if _, ok := schemas["ErrorResponse"]; !ok {
		schemas["ErrorResponse"] = errorSchema
	}

	paths, _ := spec["paths"].(map[string]any)
	for _, item := range paths {
		ops, _ := item.(map[string]any)
		for _, op := range ops {
			o, ok := op.(map[string]any)
			if !ok {
				continue
			}
			resp := child(o, "responses")
			for status, r := range defaultResponses {
				if _, ok := resp[status]; !ok {
					resp[status] = r
				}
			}
		}
	}
}

// child returns m[key] as an object, creating it when absent
func child(m map[string]any, key string) map[string]any {
	if c, ok := m[key].(map[string]any); ok {
		return c
	}
	c := map[string]any{}
	m[key] = c
	return c
}

var errorSchema = map[string]any{
	"type":        "object",
	"description": "Error envelope, data is absent",
	"required":    []any{"status_code", "status", "code", "error"},
	"properties": map[string]any{
		"status_code": map[string]any{"type": "integer"},
		"status":      map[string]any{"type": "string"},
		"code":        map[string]any{"type": "integer", "description": "machine readable error class"},
		"error":       map[string]any{"type": "string"},
		"field":       map[string]any{"type": "string", "description": "json name of the offending field on validation errors"},
		"request_id":  map[string]any{"type": "string"},
	},
}

func errorResponse(desc string, status int, code perr.ErrorCode, msg, field string) map[string]any {
	example := map[string]any{
		"status_code": status,
		"status":      http.StatusText(status),
		"code":        int(code),
		"error":       msg,
		"request_id":  "desk-7f3a/abc-000042",
	}
	if field != "" {
		example["field"] = field
	}
	return map[string]any{
		"description": desc,
		"content": map[string]any{
			"application/json": map[string]any{
				"schema":  map[string]any{"$ref": "#/components/schemas/ErrorResponse"},
				"example": example,
			},
		},
	}
}

var defaultResponses = map[string]any{
	"400": errorResponse("Malformed or invalid body", http.StatusBadRequest,
		perr.ErrorCodeValidation, "container_id must be a valid container id", "container_id"),
	"500": errorResponse("Unexpected failure", http.StatusInternalServerError,
		perr.ErrorCodePanic, "panic recovered", ""),
}
