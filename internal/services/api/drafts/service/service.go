// Package service streams reply drafts from case notes
package service

import (
	"context"
	"errors"
	"strings"

	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
	pnet "draftdesk/internal/platform/net"
	detectdom "draftdesk/internal/services/api/detect/domain"
	"draftdesk/internal/services/api/drafts/domain"
	renderdom "draftdesk/internal/services/api/render/domain"

	"github.com/google/uuid"
	"golang.org/x/text/unicode/norm"
)

// stream outcomes as reported to metrics
const (
	OutcomeDone     = "done"
	OutcomeError    = "error"
	OutcomeCanceled = "canceled"
)

// Service defines the service contract for drafts
type Service interface{ domain.ServicePort }

// Detector is the part of the detect port drafts needs
type Detector interface {
	Detect(ctx context.Context, in detectdom.DetectInput) (detectdom.DetectResult, error)
}

// Options tunes the generated request, zero values leave the client defaults
type Options struct {
	Model       string
	Temperature float64
	MaxTokens   int
}

// Svc implements the drafts service
type Svc struct {
	det  Detector
	ren  renderdom.RenderPort
	gen  domain.Generator
	rec  *metrics.Recorder
	opts Options
}

// New creates a drafts service
func New(det Detector, ren renderdom.RenderPort, gen domain.Generator, rec *metrics.Recorder, o Options) *Svc {
	if det == nil {
		panic("drafts.Service requires a non nil Detector")
	}
	if ren == nil {
		panic("drafts.Service requires a non nil RenderPort")
	}
	if gen == nil {
		panic("drafts.Service requires a non nil Generator")
	}
	return &Svc{det: det, ren: ren, gen: gen, rec: rec, opts: o}
}

// Stream emits one frame per model delta and a final done frame
func (s *Svc) Stream(ctx context.Context, in domain.DraftInput, emit domain.Emit) error {
	if emit == nil {
		return perr.InvalidArgf("drafts stream needs an emitter")
	}
	return s.run(ctx, in, emit, true)
}

// Sync runs the whole draft and returns only the final frame
func (s *Svc) Sync(ctx context.Context, in domain.DraftInput) (domain.Frame, error) {
	var last domain.Frame
	err := s.run(ctx, in, func(f domain.Frame) error {
		last = f
		return nil
	}, false)
	return last, err
}

func (s *Svc) run(ctx context.Context, in domain.DraftInput, emit domain.Emit, perDelta bool) error {
	notes := norm.NFC.String(strings.TrimSpace(in.Notes))
	if notes == "" {
		return perr.InvalidArgf("notes are empty")
	}

	det, err := s.det.Detect(ctx, detectdom.DetectInput{Text: notes})
	if err != nil {
		return err
	}
	links := det.Links
	if !det.Matched || links == nil {
		links = []detectdom.Link{}
	}

	// one container per stream so every frame and later copy click target the same tree
	container := in.ContainerID
	if container == "" {
		container = uuid.NewString()
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		acc     strings.Builder
		seq     int
		emitErr error
	)
	frame := func(done bool) (domain.Frame, error) {
		out, err := s.ren.Render(ctx, renderdom.RenderInput{Text: acc.String(), ContainerID: container})
		if err != nil {
			return domain.Frame{}, err
		}
		f := domain.Frame{
			Seq:         seq,
			HTML:        out.HTML,
			Tag:         det.Tag,
			Links:       links,
			ContainerID: out.ContainerID,
			Done:        done,
		}
		seq++
		return f, nil
	}

	genErr := s.gen.Stream(ctx, buildRequest(notes, in.Tone, det, s.opts), func(d string) {
		if emitErr != nil {
			return
		}
		acc.WriteString(d)
		if !perDelta {
			return
		}
		f, err := frame(false)
		if err == nil {
			err = emit(f)
		}
		if err != nil {
			emitErr = err
			cancel()
			return
		}
		s.rec.IncDraftChunk()
	})

	log := logger.C(logger.WithRequest(ctx, pnet.RequestID(ctx), container)).With().
		Str("component", "drafts").
		Str("tag", det.Tag).
		Int("frames", seq).
		Int("chars", acc.Len()).
		Logger()
	switch {
	case emitErr != nil:
		s.rec.IncDraftStream(OutcomeCanceled)
		log.Debug().Err(emitErr).Msg("draft stream stopped by client")
		return emitErr
	case genErr != nil && errors.Is(genErr, context.Canceled):
		s.rec.IncDraftStream(OutcomeCanceled)
		log.Debug().Err(genErr).Msg("draft stream canceled")
		return genErr
	case genErr != nil:
		s.rec.IncDraftStream(OutcomeError)
		log.Warn().Err(genErr).Msg("draft stream failed")
		return genErr
	}

	f, err := frame(true)
	if err != nil {
		s.rec.IncDraftStream(OutcomeError)
		return err
	}
	if err := emit(f); err != nil {
		s.rec.IncDraftStream(OutcomeCanceled)
		return err
	}
	if perDelta {
		s.rec.IncDraftChunk()
	}
	s.rec.IncDraftStream(OutcomeDone)
	log.Info().Msg("draft stream done")
	return nil
}
