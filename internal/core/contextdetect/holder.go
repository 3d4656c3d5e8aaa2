package contextdetect

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"
	"time"

	"draftdesk/internal/platform/logger"

	"github.com/fsnotify/fsnotify"
)

// Holder publishes the current table snapshot to concurrent readers
// a reload builds a fresh Table and swaps the pointer, readers never see a partial table
type Holder struct {
	cur      atomic.Pointer[Table]
	log      logger.Logger
	onReload func(err error)
}

// HolderOption configures a Holder
type HolderOption func(*Holder)

// WithLogger sets the holder logger
func WithLogger(l logger.Logger) HolderOption { return func(h *Holder) { h.log = l } }

// OnReload registers a hook called after every reload attempt, err is nil on success
func OnReload(fn func(err error)) HolderOption { return func(h *Holder) { h.onReload = fn } }

// NewHolder returns a holder serving t
func NewHolder(t *Table, opts ...HolderOption) *Holder {
	if t == nil {
		panic("contextdetect: NewHolder requires a non nil table")
	}
	h := &Holder{log: *logger.Named("contextdetect")}
	for _, o := range opts {
		o(h)
	}
	h.cur.Store(t)
	return h
}

// Table returns the current snapshot
func (h *Holder) Table() *Table { return h.cur.Load() }

// Swap publishes t, nil is ignored
func (h *Holder) Swap(t *Table) {
	if t != nil {
		h.cur.Store(t)
	}
}

// Detect runs Table.Detect against the current snapshot
func (h *Holder) Detect(text string) (string, bool) { return h.Table().Detect(text) }

// Explain runs Table.Explain against the current snapshot
func (h *Holder) Explain(text string) Result { return h.Table().Explain(text) }

// Reload loads path and swaps it in, the previous table stays on error
func (h *Holder) Reload(path string) error {
	t, err := LoadFile(path)
	if err == nil {
		h.Swap(t)
		h.log.Info().Str("path", path).Int("domains", len(t.domains)).Msg("pattern table reloaded")
	} else {
		h.log.Error().Err(err).Str("path", path).Msg("pattern table reload failed, keeping previous table")
	}
	if h.onReload != nil {
		h.onReload(err)
	}
	return err
}

// Watch reloads path whenever it changes until ctx is done
// the parent directory is watched since editors often replace files on save
func (h *Holder) Watch(ctx context.Context, path string, debounce time.Duration) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("contextdetect: resolve %s: %w", path, err)
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("contextdetect: new watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(abs)); err != nil {
		_ = w.Close()
		return fmt.Errorf("contextdetect: watch %s: %w", filepath.Dir(abs), err)
	}
	if debounce <= 0 {
		debounce = 500 * time.Millisecond
	}

	h.log.Info().Str("path", abs).Dur("debounce", debounce).Msg("watching pattern table")
	go h.watchLoop(ctx, w, abs, debounce)
	return nil
}

func (h *Holder) watchLoop(ctx context.Context, w *fsnotify.Watcher, abs string, debounce time.Duration) {
	defer func() { _ = w.Close() }()

	base := filepath.Base(abs)
	var timer *time.Timer
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != base {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer != nil {
				timer.Stop()
			}
			timer = time.AfterFunc(debounce, func() { _ = h.Reload(abs) })
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			h.log.Warn().Err(err).Msg("pattern table watcher error")
		}
	}
}
