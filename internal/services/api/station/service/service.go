// Package service runs the shared station: one queue and one now playing for every console
package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	perr "draftdesk/internal/platform/errors"
	"draftdesk/internal/platform/logger"
	"draftdesk/internal/platform/metrics"
	"draftdesk/internal/services/api/station/domain"
	"draftdesk/internal/services/api/station/repo"

	"github.com/google/uuid"
)

// DefaultTick is how often the station checks whether the current track ended
const DefaultTick = time.Second

// Service defines the service contract for station
type Service interface {
	domain.ServicePort
	Connect(w http.ResponseWriter, r *http.Request) error
}

// Config holds station settings
type Config struct {
	Name    string
	Tick    time.Duration
	Origins []string

	// HistorySource names where history lives, pg or memory
	HistorySource string
}

// Svc implements the station
type Svc struct {
	mu      sync.Mutex
	queue   []domain.Track
	current *domain.NowPlaying

	cfg  Config
	hub  *Hub
	hist repo.Repo
	rec  *metrics.Recorder
	log  logger.Logger

	now   func() time.Time
	newID func() string
}

// New creates the station, hist is required
func New(cfg Config, hist repo.Repo, rec *metrics.Recorder) *Svc {
	if hist == nil {
		panic("station.Service requires a non nil history Repo")
	}
	if cfg.Name == "" {
		cfg.Name = "draftdesk radio"
	}
	if cfg.Tick <= 0 {
		cfg.Tick = DefaultTick
	}
	if cfg.HistorySource == "" {
		cfg.HistorySource = "memory"
	}
	s := &Svc{
		cfg:   cfg,
		hist:  hist,
		rec:   rec,
		log:   *logger.Named("station"),
		now:   time.Now,
		newID: uuid.NewString,
	}
	s.hub = NewHub(cfg.Origins, rec.SetListeners)
	return s
}

// Hub returns the listener hub
func (s *Svc) Hub() *Hub { return s.hub }

// State returns a snapshot of the station
func (s *Svc) State(_ context.Context) (domain.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshot(), nil
}

// Enqueue appends a track, an idle station starts playing it at once
func (s *Svc) Enqueue(ctx context.Context, in domain.QueueInput) (domain.State, error) {
	if in.DurationS <= 0 {
		return domain.State{}, perr.InvalidArgf("duration_s must be positive")
	}
	s.mu.Lock()
	s.queue = append(s.queue, domain.Track{
		ID:        s.newID(),
		Title:     in.Title,
		URL:       in.URL,
		DurationS: in.DurationS,
	})
	var started *domain.NowPlaying
	if s.current == nil {
		started = s.advance()
	}
	st := s.snapshot()
	s.mu.Unlock()

	s.after(ctx, started, st, started != nil)
	return st, nil
}

// Skip ends the current track and starts the next one, if any
func (s *Svc) Skip(ctx context.Context) (domain.State, error) {
	s.mu.Lock()
	if s.current == nil && len(s.queue) == 0 {
		st := s.snapshot()
		s.mu.Unlock()
		return st, nil
	}
	started := s.advance()
	st := s.snapshot()
	s.mu.Unlock()

	s.after(ctx, started, st, true)
	return st, nil
}

// Tick advances when the current track has played out, it is the scheduler task
func (s *Svc) Tick() {
	s.mu.Lock()
	due := s.current == nil && len(s.queue) > 0
	if c := s.current; c != nil {
		due = s.now().Sub(c.StartedAt) >= time.Duration(c.Track.DurationS)*time.Second
	}
	if !due {
		s.mu.Unlock()
		return
	}
	started := s.advance()
	st := s.snapshot()
	s.mu.Unlock()

	s.after(context.Background(), started, st, true)
}

// History returns recently started tracks, newest first
func (s *Svc) History(ctx context.Context, limit int) (domain.HistoryResult, error) {
	rows, err := s.hist.Recent(ctx, limit)
	if err != nil {
		return domain.HistoryResult{}, perr.FromPostgres(err, "station history")
	}
	out := domain.HistoryResult{Source: s.cfg.HistorySource, Items: make([]domain.Played, 0, len(rows))}
	for _, r := range rows {
		out.Items = append(out.Items, domain.Played{
			TrackID:   r.TrackID,
			Title:     r.Title,
			URL:       r.URL,
			DurationS: r.DurationS,
			StartedAt: r.StartedAt,
		})
	}
	return out, nil
}

// Connect upgrades r to a websocket listener, the first message is the current state
func (s *Svc) Connect(w http.ResponseWriter, r *http.Request) error {
	s.mu.Lock()
	st := s.snapshot()
	s.mu.Unlock()
	st.Listeners++
	return s.hub.Serve(w, r, domain.Event{Type: domain.EventState, State: st})
}

// advance pops the next track into now playing, callers hold mu
func (s *Svc) advance() *domain.NowPlaying {
	if len(s.queue) == 0 {
		s.current = nil
		return nil
	}
	next := s.queue[0]
	s.queue = s.queue[1:]
	s.current = &domain.NowPlaying{Track: next, StartedAt: s.now().UTC()}
	np := *s.current
	return &np
}

// snapshot copies the state, callers hold mu
func (s *Svc) snapshot() domain.State {
	st := domain.State{
		Name:      s.cfg.Name,
		Queue:     append([]domain.Track{}, s.queue...),
		Listeners: s.hub.Count(),
	}
	if s.current != nil {
		np := *s.current
		np.ElapsedS = int(s.now().Sub(np.StartedAt) / time.Second)
		st.NowPlaying = &np
	}
	return st
}

// after records a started track and tells the listeners, it runs without mu
// a track event means now playing changed, including to nothing
func (s *Svc) after(ctx context.Context, started *domain.NowPlaying, st domain.State, trackChanged bool) {
	typ := domain.EventState
	if trackChanged {
		typ = domain.EventTrack
	}
	defer s.hub.Broadcast(domain.Event{Type: typ, State: st})

	if started == nil {
		return
	}
	err := s.hist.Append(ctx, repo.RowPlayed{
		TrackID:   started.Track.ID,
		Title:     started.Track.Title,
		URL:       started.Track.URL,
		DurationS: started.Track.DurationS,
		StartedAt: started.StartedAt,
	})
	if err != nil {
		s.log.Error().Err(err).Str("track", started.Track.ID).Msg("history append failed")
	}
	s.log.Info().Str("track", started.Track.ID).Str("title", started.Track.Title).Msg("now playing")
}
