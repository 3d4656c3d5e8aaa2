// Package http provides http transport for drafts
package http

import (
	"encoding/json"
	"errors"
	"fmt"
	stdhttp "net/http"

	"draftdesk/internal/modkit/httpkit"
	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/services/api/drafts/domain"
	svc "draftdesk/internal/services/api/drafts/service"
)

// Register mounts drafts endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	r.Post("/", h.stream)
	httpkit.PostJSON[domain.DraftInput](r, "/sync", h.sync)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /drafts Drafts streamDraft
// @Summary Stream a reply draft as server sent events
// @Description Each message is a domain.Frame, an error event carries a domain.StreamFailure
// @Tags Drafts
// @Accept json
// @Produce text/event-stream
// @Param payload body domain.DraftInput true "Case notes"
// @Success 200 {object} domain.Frame "frames"
// @Failure 400 {object} httpkit.Envelope "invalid input"
// @Router /drafts [post]
func (h *handlers) stream(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	in, err := httpkit.Bind[domain.DraftInput](r)
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}

	es := newEventStream(w)
	es.open()

	seq := 0
	err = h.svc.Stream(r.Context(), in, func(f domain.Frame) error {
		seq = f.Seq
		return es.send("", f)
	})
	if err == nil || r.Context().Err() != nil {
		return
	}
	_ = es.send("error", domain.StreamFailure{
		StatusCode: perr.HTTPStatus(err),
		Code:       perr.CodeOf(err),
		Error:      err.Error(),
		Seq:        seq,
	})
}

// swagger:route POST /drafts/sync Drafts syncDraft
// @Summary Generate a reply draft and return only the final frame
// @Tags Drafts
// @Accept json
// @Produce json
// @Param payload body domain.DraftInput true "Case notes"
// @Success 200 {object} domain.Frame "ok"
// @Router /drafts/sync [post]
func (h *handlers) sync(r *stdhttp.Request, in domain.DraftInput) (any, error) {
	return h.svc.Sync(r.Context(), in)
}

// eventStream writes server sent events and flushes after each one
type eventStream struct {
	w  stdhttp.ResponseWriter
	rc *stdhttp.ResponseController
}

func newEventStream(w stdhttp.ResponseWriter) *eventStream {
	return &eventStream{w: w, rc: stdhttp.NewResponseController(w)}
}

func (e *eventStream) open() {
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(stdhttp.StatusOK)
	_ = e.rc.Flush()
}

func (e *eventStream) send(event string, v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if event != "" {
		if _, err := fmt.Fprintf(e.w, "event: %s\n", event); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(e.w, "data: %s\n\n", b); err != nil {
		return err
	}
	if err := e.rc.Flush(); err != nil && !errors.Is(err, stdhttp.ErrNotSupported) {
		return err
	}
	return nil
}
