// Package http provides http transport for detect
package http

import (
	stdhttp "net/http"

	"draftdesk/internal/modkit/httpkit"
	"draftdesk/internal/services/api/detect/domain"
	svc "draftdesk/internal/services/api/detect/service"
)

// Register mounts detect endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.DetectInput](r, "/", h.detect)
	httpkit.Get(r, "/domains", h.domains)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /detect Detect detectText
// @Summary Classify a support message into a documentation domain
// @Tags Detect
// @Accept json
// @Produce json
// @Param payload body domain.DetectInput true "Text"
// @Success 200 {object} domain.DetectResult "ok"
// @Router /detect [post]
func (h *handlers) detect(r *stdhttp.Request, in domain.DetectInput) (any, error) {
	return h.svc.Detect(r.Context(), in)
}

// swagger:route GET /detect/domains Detect detectDomains
// @Summary List the loaded pattern table
// @Tags Detect
// @Produce json
// @Success 200 {object} domain.DomainsResult "ok"
// @Router /detect/domains [get]
func (h *handlers) domains(r *stdhttp.Request) (any, error) {
	return h.svc.Domains(r.Context())
}
