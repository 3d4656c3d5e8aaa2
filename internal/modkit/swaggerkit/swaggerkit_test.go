package swaggerkit

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	perr "draftdesk/internal/platform/errors"
	phttp "draftdesk/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

const swagOut = `{
  "openapi": "3.1.0",
  "info": {"title": "Draftdesk API", "version": "0.1.0"},
  "paths": {
    "/render": {"post": {"responses": {"200": {"description": "ok"}}}},
    "/drafts": {"post": {"responses": {"400": {"description": "custom"}}}}
  }
}`

func TestPatch(t *testing.T) {
	var spec map[string]any
	if err := json.Unmarshal([]byte(swagOut), &spec); err != nil {
		t.Fatal(err)
	}
	patch(spec)

	if spec["openapi"] != "3.0.3" {
		t.Fatalf("openapi %v", spec["openapi"])
	}
	servers := spec["servers"].([]any)
	if servers[0].(map[string]any)["url"] != BasePath {
		t.Fatalf("servers %v", servers)
	}

	schema := spec["components"].(map[string]any)["schemas"].(map[string]any)["ErrorResponse"].(map[string]any)
	if _, ok := schema["properties"].(map[string]any)["field"]; !ok {
		t.Fatalf("error schema lacks field")
	}

	paths := spec["paths"].(map[string]any)
	render := paths["/render"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	for _, status := range []string{"200", "400", "500"} {
		if _, ok := render[status]; !ok {
			t.Fatalf("render missing %s", status)
		}
	}
	drafts := paths["/drafts"].(map[string]any)["post"].(map[string]any)["responses"].(map[string]any)
	if drafts["400"].(map[string]any)["description"] != "custom" {
		t.Fatalf("declared 400 overwritten")
	}
}

func TestDefaultResponses_UseRuntimeCodes(t *testing.T) {
	ex := defaultResponses["400"].(map[string]any)["content"].(map[string]any)["application/json"].(map[string]any)["example"].(map[string]any)
	if ex["code"] != int(perr.ErrorCodeValidation) || ex["status_code"] != http.StatusBadRequest {
		t.Fatalf("400 example %v", ex)
	}
	if perr.HTTPStatusCode(perr.ErrorCodeValidation) != http.StatusBadRequest {
		t.Fatalf("validation no longer maps to 400")
	}
}

func TestServeDoc_BadJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	serveDoc(func() string { return "{" })(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("code %d", rec.Code)
	}
}

func TestMount(t *testing.T) {
	off := phttp.AdaptChi(chi.NewRouter())
	Mount(off, false)
	rec := httptest.NewRecorder()
	off.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("disabled docs served %d", rec.Code)
	}

	on := phttp.AdaptChi(chi.NewRouter())
	Mount(on, true)
	rec = httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs/doc.json", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("doc.json %d", rec.Code)
	}
	var spec map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &spec); err != nil || spec["openapi"] != "3.0.3" {
		t.Fatalf("doc %v %s", err, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	on.Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/docs", nil))
	if rec.Code != http.StatusPermanentRedirect {
		t.Fatalf("redirect %d", rec.Code)
	}
}
