package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"draftdesk/internal/platform/config"
	phttp "draftdesk/internal/platform/net/http"

	"github.com/go-chi/chi/v5"
)

func TestNewServer_Addr(t *testing.T) {
	cases := []struct {
		addr, port, want string
	}{
		{"", "", ":4000"},
		{"", "8088", ":8088"},
		{"", ":9090", ":9090"},
		{"127.0.0.1:7000", "8088", "127.0.0.1:7000"},
	}
	for _, tc := range cases {
		t.Setenv("ADDR", tc.addr)
		t.Setenv("PORT", tc.port)
		if got := phttp.NewServer(config.New()).Addr(); got != tc.want {
			t.Errorf("ADDR=%q PORT=%q: got %q want %q", tc.addr, tc.port, got, tc.want)
		}
	}
}

func TestNewServer_OptionsSeeMux(t *testing.T) {
	srv := phttp.NewServer(config.New(), func(m *chi.Mux) {
		m.Get("/ping", func(w http.ResponseWriter, _ *http.Request) { _, _ = w.Write([]byte("pong")) })
	})

	rec := httptest.NewRecorder()
	srv.Router().Mux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if rec.Body.String() != "pong" {
		t.Fatalf("got %d %q", rec.Code, rec.Body.String())
	}
}

func TestServer_RunStopsOnCancel(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:0")
	srv := phttp.NewServer(config.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Run(ctx) }()
	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("run: %v", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatalf("run did not return after cancel")
	}
}

func TestServer_RunListenError(t *testing.T) {
	t.Setenv("ADDR", "127.0.0.1:notaport")
	if err := phttp.NewServer(config.New()).Run(context.Background()); err == nil {
		t.Fatalf("expected a listen error")
	}
}
