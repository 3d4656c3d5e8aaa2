// Package http serves /meta, the probes and build facts the console footer shows
package http

import (
	"context"
	"net/http"
	"time"

	"draftdesk/internal/core/version"
	"draftdesk/internal/modkit/httpkit"
	detectdom "draftdesk/internal/services/api/detect/domain"
)

// Pinger is the postgres store as seen by the ready probe
type Pinger interface {
	Ping(context.Context) error
}

// PatternSource reports the loaded pattern table, the detect port satisfies it
type PatternSource interface {
	Domains(ctx context.Context) (detectdom.DomainsResult, error)
}

// Deps feed the meta routes, PG and Patterns are optional
type Deps struct {
	ServiceName string
	StartedAt   time.Time
	PG          Pinger
	Patterns    PatternSource
}

// probeTimeout bounds the whole ready probe
const probeTimeout = 2 * time.Second

type handlers struct {
	Deps
	now func() time.Time
}

// Register mounts the meta routes on r
func Register(r httpkit.Router, d Deps) {
	h := &handlers{Deps: d, now: time.Now}
	httpkit.Get(r, "/health", h.health)
	httpkit.Get(r, "/ready", h.ready)
	httpkit.Get(r, "/version", h.version)
	httpkit.Get(r, "/service", h.service)
	httpkit.Get(r, "/detector", h.detector)
}

// HealthResponse says the process is serving
type HealthResponse struct {
	Status  string    `json:"status"  example:"ok"`
	Service string    `json:"service" example:"draftdesk-api"`
	Now     time.Time `json:"now"     example:"2026-03-01T09:05:00Z"`
}

// Check is one dependency probed by /ready
type Check struct {
	Name   string `json:"name"            example:"pg"`
	Status string `json:"status"          example:"ok" enums:"ok,fail,skipped"`
	Error  string `json:"error,omitempty" example:"dial tcp 127.0.0.1:5432: connect: connection refused"`
}

// ReadyResponse is ok unless a configured dependency failed
type ReadyResponse struct {
	Status string  `json:"status" example:"ok" enums:"ok,fail"`
	Checks []Check `json:"checks"`
}

// ServiceResponse is the console footer payload
type ServiceResponse struct {
	Name      string            `json:"name"       example:"draftdesk-api"`
	StartedAt time.Time         `json:"started_at" example:"2026-03-01T09:00:00Z"`
	UptimeS   int64             `json:"uptime_s"   example:"300"`
	Build     version.BuildInfo `json:"build"`
}

// DetectorResponse summarises the pattern table in use
type DetectorResponse struct {
	TableVersion int      `json:"table_version" example:"1"`
	Source       string   `json:"source"        example:"embedded"`
	Domains      int      `json:"domains"       example:"6"`
	Tags         []string `json:"tags"`
}

// @Summary Liveness
// @Tags Meta
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /meta/health [get]
func (h *handlers) health(*http.Request) (any, error) {
	return HealthResponse{Status: "ok", Service: h.ServiceName, Now: h.now().UTC()}, nil
}

// @Summary Readiness, pings postgres when configured and checks the pattern table
// @Tags Meta
// @Produce json
// @Success 200 {object} ReadyResponse
// @Failure 503 {object} ReadyResponse
// @Router /meta/ready [get]
func (h *handlers) ready(r *http.Request) (any, error) {
	ctx, cancel := context.WithTimeout(r.Context(), probeTimeout)
	defer cancel()

	res := ReadyResponse{Status: "ok", Checks: []Check{h.checkPG(ctx), h.checkPatterns(ctx)}}
	for _, c := range res.Checks {
		if c.Status == "fail" {
			res.Status = "fail"
		}
	}
	if res.Status != "ok" {
		return httpkit.Response{Status: http.StatusServiceUnavailable, Body: res}, nil
	}
	return res, nil
}

func (h *handlers) checkPG(ctx context.Context) Check {
	c := Check{Name: "pg", Status: "skipped"}
	if h.PG == nil {
		return c
	}
	c.Status = "ok"
	if err := h.PG.Ping(ctx); err != nil {
		c.Status, c.Error = "fail", err.Error()
	}
	return c
}

func (h *handlers) checkPatterns(ctx context.Context) Check {
	c := Check{Name: "patterns", Status: "skipped"}
	if h.Patterns == nil {
		return c
	}
	res, err := h.Patterns.Domains(ctx)
	switch {
	case err != nil:
		c.Status, c.Error = "fail", err.Error()
	case len(res.Domains) == 0:
		c.Status, c.Error = "fail", "pattern table has no domains"
	default:
		c.Status = "ok"
	}
	return c
}

// @Summary Build info
// @Tags Meta
// @Produce json
// @Success 200 {object} version.BuildInfo
// @Router /meta/version [get]
func (h *handlers) version(*http.Request) (any, error) {
	return version.Named(h.ServiceName), nil
}

// @Summary Name, start time, uptime and build
// @Tags Meta
// @Produce json
// @Success 200 {object} ServiceResponse
// @Router /meta/service [get]
func (h *handlers) service(*http.Request) (any, error) {
	return ServiceResponse{
		Name:      h.ServiceName,
		StartedAt: h.StartedAt.UTC(),
		UptimeS:   int64(h.now().Sub(h.StartedAt) / time.Second),
		Build:     version.Named(h.ServiceName),
	}, nil
}

// @Summary Pattern table version and domains
// @Tags Meta
// @Produce json
// @Success 200 {object} DetectorResponse
// @Router /meta/detector [get]
func (h *handlers) detector(r *http.Request) (any, error) {
	out := DetectorResponse{Tags: []string{}}
	if h.Patterns == nil {
		return out, nil
	}
	res, err := h.Patterns.Domains(r.Context())
	if err != nil {
		return nil, err
	}
	out.TableVersion, out.Source, out.Domains = res.Version, res.Source, len(res.Domains)
	for _, d := range res.Domains {
		out.Tags = append(out.Tags, d.Tag)
	}
	return out, nil
}
