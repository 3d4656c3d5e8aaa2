package http

import (
	stdhttp "net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
)

func tagHeader(name string) func(stdhttp.Handler) stdhttp.Handler {
	return func(next stdhttp.Handler) stdhttp.Handler {
		return stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, r *stdhttp.Request) {
			w.Header().Add("X-Seen", name)
			next.ServeHTTP(w, r)
		})
	}
}

func TestAdaptChi_ScopesMiddleware(t *testing.T) {
	r := AdaptChi(chi.NewRouter())
	r.Use(tagHeader("root"))

	r.Route("/render", func(sub Router) {
		sub.Use(tagHeader("render"))
		sub.Get("/highlight.css", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { _, _ = w.Write([]byte("css")) })
	})
	r.Group(func(g Router) {
		g.Use(tagHeader("group"))
		g.Post("/drafts", func(w stdhttp.ResponseWriter, _ *stdhttp.Request) { w.WriteHeader(stdhttp.StatusAccepted) })
	})

	cases := []struct {
		method, path string
		code         int
		seen         []string
	}{
		{stdhttp.MethodGet, "/render/highlight.css", stdhttp.StatusOK, []string{"root", "render"}},
		{stdhttp.MethodPost, "/drafts", stdhttp.StatusAccepted, []string{"root", "group"}},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		r.Mux().ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
		if rec.Code != tc.code {
			t.Fatalf("%s %s: code %d want %d", tc.method, tc.path, rec.Code, tc.code)
		}
		got := rec.Header().Values("X-Seen")
		if len(got) != len(tc.seen) {
			t.Fatalf("%s %s: middleware %v want %v", tc.method, tc.path, got, tc.seen)
		}
		for i := range got {
			if got[i] != tc.seen[i] {
				t.Fatalf("%s %s: middleware %v want %v", tc.method, tc.path, got, tc.seen)
			}
		}
	}
}

func TestAdaptChi_HandleAndParam(t *testing.T) {
	mux := chi.NewRouter()
	r := AdaptChi(mux)

	var id string
	r.Get("/actions/{id}", func(_ stdhttp.ResponseWriter, req *stdhttp.Request) { id = Param(req, "id") })
	r.Handle("/metrics", stdhttp.HandlerFunc(func(w stdhttp.ResponseWriter, _ *stdhttp.Request) {
		w.WriteHeader(stdhttp.StatusTeapot)
	}))

	mux.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(stdhttp.MethodGet, "/actions/pane-7", nil))
	if id != "pane-7" {
		t.Fatalf("param %q", id)
	}

	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, "/metrics", nil))
	if rec.Code != stdhttp.StatusTeapot {
		t.Fatalf("handle code %d", rec.Code)
	}
}
