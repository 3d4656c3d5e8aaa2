package http

import (
	"context"
	"encoding/json"
	"errors"
	stdhttp "net/http"
	"net/http/httptest"
	"testing"
	"time"

	phttp "draftdesk/internal/platform/net/http"
	detectdom "draftdesk/internal/services/api/detect/domain"

	"github.com/go-chi/chi/v5"
)

type pinger struct{ err error }

func (p pinger) Ping(context.Context) error { return p.err }

type patterns struct {
	res detectdom.DomainsResult
	err error
}

func (p patterns) Domains(context.Context) (detectdom.DomainsResult, error) { return p.res, p.err }

var table = patterns{res: detectdom.DomainsResult{
	Version: 3,
	Source:  "embedded",
	Domains: []detectdom.DomainInfo{{Tag: "payouts"}, {Tag: "disputes"}},
}}

func get(t *testing.T, d Deps, path string, out any) int {
	t.Helper()
	r := phttp.AdaptChi(chi.NewRouter())
	r.Route("/meta", func(sub phttp.Router) { Register(sub, d) })
	rec := httptest.NewRecorder()
	r.Mux().ServeHTTP(rec, httptest.NewRequest(stdhttp.MethodGet, path, nil))

	var env struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v", err)
	}
	if out != nil {
		if err := json.Unmarshal(env.Data, out); err != nil {
			t.Fatalf("decode data: %v", err)
		}
	}
	return rec.Code
}

func TestHealth(t *testing.T) {
	var res HealthResponse
	if code := get(t, Deps{ServiceName: "draftdesk-api"}, "/meta/health", &res); code != stdhttp.StatusOK {
		t.Fatalf("status %d", code)
	}
	if res.Status != "ok" || res.Service != "draftdesk-api" || res.Now.IsZero() {
		t.Fatalf("health %+v", res)
	}
}

func TestReady(t *testing.T) {
	cases := []struct {
		name   string
		deps   Deps
		status string
		code   int
	}{
		{"no postgres", Deps{Patterns: table}, "ok", stdhttp.StatusOK},
		{"pg up", Deps{PG: pinger{}, Patterns: table}, "ok", stdhttp.StatusOK},
		{"pg down", Deps{PG: pinger{err: errors.New("refused")}, Patterns: table}, "fail", stdhttp.StatusServiceUnavailable},
		{"empty table", Deps{Patterns: patterns{}}, "fail", stdhttp.StatusServiceUnavailable},
		{"table error", Deps{Patterns: patterns{err: errors.New("reload")}}, "fail", stdhttp.StatusServiceUnavailable},
	}
	for _, tc := range cases {
		var res ReadyResponse
		code := get(t, tc.deps, "/meta/ready", &res)
		if code != tc.code || res.Status != tc.status {
			t.Fatalf("%s: %d %+v", tc.name, code, res)
		}
	}
}

func TestReady_SkipsUnconfigured(t *testing.T) {
	var res ReadyResponse
	get(t, Deps{}, "/meta/ready", &res)
	for _, c := range res.Checks {
		if c.Status != "skipped" {
			t.Fatalf("check %+v", c)
		}
	}
}

func TestDetector(t *testing.T) {
	var res DetectorResponse
	if code := get(t, Deps{Patterns: table}, "/meta/detector", &res); code != stdhttp.StatusOK {
		t.Fatalf("status %d", code)
	}
	if res.TableVersion != 3 || res.Domains != 2 || res.Tags[1] != "disputes" || res.Source != "embedded" {
		t.Fatalf("detector %+v", res)
	}

	var empty DetectorResponse
	get(t, Deps{}, "/meta/detector", &empty)
	if empty.Tags == nil || empty.Domains != 0 {
		t.Fatalf("no table %+v", empty)
	}
}

func TestService(t *testing.T) {
	var res ServiceResponse
	get(t, Deps{ServiceName: "draftdesk-api", StartedAt: time.Now().Add(-90 * time.Second)}, "/meta/service", &res)
	if res.UptimeS < 89 || res.Name != "draftdesk-api" || res.Build.Service != "draftdesk-api" {
		t.Fatalf("service %+v", res)
	}
}
