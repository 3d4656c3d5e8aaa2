// Package service contains render workflows
package service

import (
	"context"
	"time"

	"draftdesk/internal/core/actions"
	"draftdesk/internal/core/highlight"
	"draftdesk/internal/core/markdown"
	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/metrics"
	"draftdesk/internal/services/api/render/domain"
)

// Service defines the service contract for render
type Service interface{ domain.ServicePort }

// Svc renders markdown, runs the highlight pass and keeps every pane's tree
// in the actions registry so copy clicks resolve against what was rendered
type Svc struct {
	hl        *highlight.Highlighter
	highlight bool
	reg       *actions.Registry
	rec       *metrics.Recorder
	now       func() time.Time
}

// New creates a render service, highlightByDefault applies when a request leaves highlight unset
func New(hl *highlight.Highlighter, reg *actions.Registry, rec *metrics.Recorder, highlightByDefault bool) *Svc {
	if hl == nil {
		panic("render.Service requires a non nil Highlighter")
	}
	if reg == nil {
		panic("render.Service requires a non nil actions Registry")
	}
	return &Svc{hl: hl, highlight: highlightByDefault, reg: reg, rec: rec, now: time.Now}
}

// Render renders in.Text into its container, creating the container on first use
func (s *Svc) Render(_ context.Context, in domain.RenderInput) (domain.RenderOutput, error) {
	start := s.now()

	html := markdown.Render(in.Text)
	on := s.highlight
	if in.Highlight != nil {
		on = *in.Highlight
	}
	if on {
		html = s.hl.Apply(html)
	}
	s.rec.ObserveRender(s.now().Sub(start), len(html))

	c, _ := s.reg.Ensure(in.ContainerID)
	c.Update(html)
	return domain.RenderOutput{HTML: html, ContainerID: c.ID()}, nil
}

// Click dispatches a copy click through the container's dispatcher
func (s *Svc) Click(_ context.Context, in domain.ActionInput) (domain.ActionOutput, error) {
	c, ok := s.reg.Get(in.ContainerID)
	if !ok {
		return domain.ActionOutput{}, perr.NotFoundf("container %s not found", in.ContainerID)
	}
	d := c.Dispatcher()
	if d == nil {
		return domain.ActionOutput{}, perr.Newf(perr.ErrorCodeConflict, "container %s has no dispatcher", in.ContainerID)
	}
	res := d.Click(c, actions.Click{Action: in.Action, Index: in.Index})
	return domain.ActionOutput{Copied: res.Copied, Action: res.Action, Index: res.Index, Chars: res.Chars}, nil
}

// Copied lists the buttons of a container currently marked copied
func (s *Svc) Copied(_ context.Context, id string) (domain.CopiedState, error) {
	c, ok := s.reg.Get(id)
	if !ok {
		return domain.CopiedState{}, perr.NotFoundf("container %s not found", id)
	}
	marks := c.Copied()
	out := domain.CopiedState{
		ContainerID: c.ID(),
		Copied:      make([]domain.CopiedButton, 0, len(marks)),
		ResetMS:     s.reg.Dispatcher().Reset().Milliseconds(),
	}
	for _, m := range marks {
		out.Copied = append(out.Copied, domain.CopiedButton{Action: m.Action, Index: m.Index})
	}
	return out, nil
}

// CSS returns the stylesheet for highlighted code
func (s *Svc) CSS(_ context.Context) (string, error) {
	css, err := s.hl.CSS()
	if err != nil {
		return "", perr.Wrapf(err, perr.ErrorCodeUnknown, "highlight stylesheet")
	}
	return css, nil
}
