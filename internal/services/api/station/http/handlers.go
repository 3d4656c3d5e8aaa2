// Package http provides http transport for station
package http

import (
	stdhttp "net/http"
	"strconv"

	"draftdesk/internal/modkit/httpkit"
	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/services/api/station/domain"
	svc "draftdesk/internal/services/api/station/service"
)

// Register mounts station endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/", h.state)
	httpkit.PostJSON[domain.QueueInput](r, "/queue", h.enqueue)
	httpkit.Post(r, "/skip", h.skip)
	httpkit.Get(r, "/history", h.history)
	r.Get("/ws", h.ws)
}

type handlers struct{ svc svc.Service }

// swagger:route GET /station Station stationState
// @Summary Current station state
// @Tags Station
// @Produce json
// @Success 200 {object} domain.State "ok"
// @Router /station [get]
func (h *handlers) state(r *stdhttp.Request) (any, error) {
	return h.svc.State(r.Context())
}

// swagger:route POST /station/queue Station stationQueue
// @Summary Queue a track
// @Tags Station
// @Accept json
// @Produce json
// @Param payload body domain.QueueInput true "Track"
// @Success 200 {object} domain.State "ok"
// @Router /station/queue [post]
func (h *handlers) enqueue(r *stdhttp.Request, in domain.QueueInput) (any, error) {
	return h.svc.Enqueue(r.Context(), in)
}

// swagger:route POST /station/skip Station stationSkip
// @Summary Skip the current track
// @Tags Station
// @Produce json
// @Success 200 {object} domain.State "ok"
// @Router /station/skip [post]
func (h *handlers) skip(r *stdhttp.Request) (any, error) {
	return h.svc.Skip(r.Context())
}

// swagger:route GET /station/history Station stationHistory
// @Summary Recently started tracks, newest first
// @Tags Station
// @Produce json
// @Param limit query int false "Max items (1-200, default 50)"
// @Success 200 {object} domain.HistoryResult "ok"
// @Router /station/history [get]
func (h *handlers) history(r *stdhttp.Request) (any, error) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return nil, perr.WithField(perr.InvalidArgf("limit must be a non negative integer"), "limit")
		}
		limit = n
	}
	return h.svc.History(r.Context(), limit)
}

// swagger:route GET /station/ws Station stationWS
// @Summary Websocket of station events
// @Description Each message is a domain.Event, the first one carries the current state
// @Tags Station
// @Success 101 {object} domain.Event "switching protocols"
// @Router /station/ws [get]
func (h *handlers) ws(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	// the upgrader has already answered the client when this fails
	_ = h.svc.Connect(w, r)
}
