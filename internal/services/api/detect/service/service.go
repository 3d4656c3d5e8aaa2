// Package service contains detect workflows
package service

import (
	"context"

	"draftdesk/internal/core/contextdetect"
	"draftdesk/internal/platform/metrics"
	"draftdesk/internal/services/api/detect/domain"
)

// Service defines the service contract for detect
type Service interface{ domain.ServicePort }

// Svc implements the Service interface over a pattern table holder
type Svc struct {
	holder *contextdetect.Holder
	rec    *metrics.Recorder
}

// New creates a detect service, rec may be nil
func New(holder *contextdetect.Holder, rec *metrics.Recorder) *Svc {
	if holder == nil {
		panic("detect.Service requires a non nil pattern table holder")
	}
	return &Svc{holder: holder, rec: rec}
}

// Detect classifies in.Text against the current table snapshot
func (s *Svc) Detect(_ context.Context, in domain.DetectInput) (domain.DetectResult, error) {
	t := s.holder.Table()
	res := t.Explain(in.Text)
	s.rec.IncDetect(res.Tag)

	out := domain.DetectResult{
		Tag:          res.Tag,
		Matched:      res.OK,
		Reason:       res.Reason,
		Links:        []domain.Link{},
		Scores:       make([]domain.Score, 0, len(res.Scores)),
		TableVersion: t.Version,
	}
	for _, sc := range res.Scores {
		out.Scores = append(out.Scores, domain.Score{Tag: sc.Tag, Score: sc.Score})
	}
	if res.OK {
		out.Links = toLinks(t.Links(res.Tag))
	}
	return out, nil
}

// Domains lists the current table
func (s *Svc) Domains(_ context.Context) (domain.DomainsResult, error) {
	t := s.holder.Table()
	ds := t.Domains()
	out := domain.DomainsResult{
		Version: t.Version,
		Source:  t.Source,
		Domains: make([]domain.DomainInfo, 0, len(ds)),
	}
	for _, d := range ds {
		info := domain.DomainInfo{
			Tag:           d.Tag,
			Keywords:      len(d.Keywords),
			StrongPhrases: len(d.StrongPhrases),
			Links:         toLinks(d.Links),
		}
		if d.IDPattern != nil {
			info.IDPattern = d.IDPattern.String()
		}
		out.Domains = append(out.Domains, info)
	}
	return out, nil
}

func toLinks(in []contextdetect.Link) []domain.Link {
	out := make([]domain.Link, 0, len(in))
	for _, l := range in {
		out = append(out, domain.Link{Title: l.Title, URL: l.URL})
	}
	return out
}
