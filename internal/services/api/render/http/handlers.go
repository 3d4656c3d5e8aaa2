// Package http provides http transport for render
package http

import (
	stdhttp "net/http"

	"draftdesk/internal/modkit/httpkit"
	"draftdesk/internal/services/api/render/domain"
	svc "draftdesk/internal/services/api/render/service"
)

// Register mounts render endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RenderInput](r, "/", h.render)
	r.Get("/highlight.css", h.css)
	httpkit.PostJSON[domain.ActionInput](r, "/actions", h.click)
	httpkit.Get(r, "/actions/{id}", h.copied)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /render Render renderText
// @Summary Render a markdown snapshot into a container
// @Tags Render
// @Accept json
// @Produce json
// @Param payload body domain.RenderInput true "Snapshot"
// @Success 200 {object} domain.RenderOutput "ok"
// @Router /render [post]
func (h *handlers) render(r *stdhttp.Request, in domain.RenderInput) (any, error) {
	return h.svc.Render(r.Context(), in)
}

// swagger:route GET /render/highlight.css Render renderCSS
// @Summary Stylesheet for highlighted code blocks
// @Tags Render
// @Produce text/css
// @Success 200 {string} string "css"
// @Router /render/highlight.css [get]
func (h *handlers) css(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	css, err := h.svc.CSS(r.Context())
	if err != nil {
		httpkit.Handle(func(*stdhttp.Request) httpkit.Response { return httpkit.Error(err) })(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.WriteHeader(stdhttp.StatusOK)
	_, _ = w.Write([]byte(css))
}

// swagger:route POST /render/actions Render renderAction
// @Summary Click a copy button in a rendered container
// @Tags Render
// @Accept json
// @Produce json
// @Param payload body domain.ActionInput true "Click"
// @Success 200 {object} domain.ActionOutput "ok"
// @Failure 404 {object} httpkit.Envelope "unknown container"
// @Router /render/actions [post]
func (h *handlers) click(r *stdhttp.Request, in domain.ActionInput) (any, error) {
	return h.svc.Click(r.Context(), in)
}

// swagger:route GET /render/actions/{id} Render renderCopied
// @Summary Buttons currently showing the copied state
// @Tags Render
// @Produce json
// @Param id path string true "Container id"
// @Success 200 {object} domain.CopiedState "ok"
// @Failure 404 {object} httpkit.Envelope "unknown container"
// @Router /render/actions/{id} [get]
func (h *handlers) copied(r *stdhttp.Request) (any, error) {
	return h.svc.Copied(r.Context(), httpkit.Param(r, "id"))
}
