// Package actions is the copy capability behind the buttons the renderer emits.
// A Container holds the latest rendered HTML of one console pane; exactly one
// Dispatcher is attached to it for its lifetime and resolves clicks against
// whatever tree the container currently holds.
package actions

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"draftdesk/internal/core/markdown"
	"draftdesk/internal/platform/logger"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// DefaultReset is how long a button stays marked copied
const DefaultReset = 2 * time.Second

// clipboard write outcomes as reported to the Recorder
const (
	ResultOK    = "ok"
	ResultError = "error"
	ResultMiss  = "miss"
)

var (
	errUnknownAction = errors.New("unknown action")
	errNoButton      = errors.New("no such button")
	errNoTarget      = errors.New("button has no copy target")
)

// Recorder receives one event per click
type Recorder interface {
	ClipboardWrite(action, result string)
}

// Click addresses the Index-th button (zero based, document order) of an action class
type Click struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
}

// Mark is a button currently shown as copied
type Mark = Click

// Result reports what a click did
type Result struct {
	Action string `json:"action"`
	Index  int    `json:"index"`
	Copied bool   `json:"copied"`
	Chars  int    `json:"chars"`
}

// Container is the rendered tree of one console pane
type Container struct {
	id string

	mu     sync.Mutex
	doc    string
	root   *html.Node
	d      *Dispatcher
	copied map[Mark]*time.Timer
}

// NewContainer returns an empty container
func NewContainer(id string) *Container {
	return &Container{id: id, copied: map[Mark]*time.Timer{}}
}

// ID returns the container id
func (c *Container) ID() string { return c.id }

// Update replaces the rendered tree, copied marks belong to the old buttons and are cleared
func (c *Container) Update(doc string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if doc == c.doc {
		return
	}
	c.doc = doc
	c.root = nil
	for m, t := range c.copied {
		t.Stop()
		delete(c.copied, m)
	}
}

// HTML returns the current tree
func (c *Container) HTML() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.doc
}

// Attach installs d as the container's dispatcher, it reports false when one is already attached
func (c *Container) Attach(d *Dispatcher) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.d != nil || d == nil {
		return false
	}
	c.d = d
	return true
}

// Dispatcher returns the attached dispatcher or nil
func (c *Container) Dispatcher() *Dispatcher {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.d
}

// Copied lists the buttons currently marked copied
func (c *Container) Copied() []Mark {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Mark, 0, len(c.copied))
	for m := range c.copied {
		out = append(out, m)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Action != out[j].Action {
			return out[i].Action < out[j].Action
		}
		return out[i].Index < out[j].Index
	})
	return out
}

// IsCopied reports whether the button is marked copied
func (c *Container) IsCopied(m Mark) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.copied[m]
	return ok
}

// resolve finds the text a click copies in the current tree
func (c *Container) resolve(k Click) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.root == nil {
		root, err := parse(c.doc)
		if err != nil {
			return "", err
		}
		c.root = root
	}

	btns := buttons(c.root, k.Action)
	if k.Index < 0 || k.Index >= len(btns) {
		return "", fmt.Errorf("%w: %s[%d] of %d", errNoButton, k.Action, k.Index, len(btns))
	}
	btn := btns[k.Index]

	switch k.Action {
	case markdown.ActionCopyURL:
		if u, ok := attr(btn, "data-url"); ok && u != "" {
			return u, nil
		}
	case markdown.ActionCopyCode:
		if panel := closest(btn, classCodePanel); panel != nil {
			if code := first(panel, atom.Code); code != nil {
				return strings.TrimSpace(textContent(code)), nil
			}
		}
	case markdown.ActionCopyTable:
		if panel := closest(btn, classTablePanel); panel != nil {
			if table := first(panel, atom.Table); table != nil {
				return tsv(table), nil
			}
		}
	}
	return "", errNoTarget
}

// mark flags m as copied and (re)arms its reset timer
func (c *Container) mark(m Mark, reset time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if t, ok := c.copied[m]; ok {
		t.Stop()
	}
	var t *time.Timer
	t = time.AfterFunc(reset, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if c.copied[m] == t {
			delete(c.copied, m)
		}
	})
	c.copied[m] = t
}

// Dispatcher handles copy-code, copy-url and copy-table clicks
type Dispatcher struct {
	clip  Clipboard
	reset time.Duration
	log   logger.Logger
	rec   Recorder
}

// Option configures a Dispatcher
type Option func(*Dispatcher)

// WithReset sets how long the copied mark lasts
func WithReset(d time.Duration) Option {
	return func(x *Dispatcher) {
		if d > 0 {
			x.reset = d
		}
	}
}

// WithLogger sets the dispatcher logger
func WithLogger(l logger.Logger) Option { return func(x *Dispatcher) { x.log = l } }

// WithRecorder reports every click outcome to r
func WithRecorder(r Recorder) Option { return func(x *Dispatcher) { x.rec = r } }

// NewDispatcher returns a dispatcher writing to clip
func NewDispatcher(clip Clipboard, opts ...Option) *Dispatcher {
	if clip == nil {
		panic("actions: NewDispatcher requires a clipboard")
	}
	d := &Dispatcher{
		clip:  clip,
		reset: DefaultReset,
		log:   *logger.Named("actions"),
	}
	for _, o := range opts {
		o(d)
	}
	return d
}

// Reset returns the copied mark duration
func (d *Dispatcher) Reset() time.Duration { return d.reset }

// Click copies the target of the addressed button
// nothing here fails loudly, a miss or a clipboard error is logged and Copied is false
func (d *Dispatcher) Click(c *Container, k Click) Result {
	res := Result{Action: k.Action, Index: k.Index}
	if c == nil {
		return res
	}

	switch k.Action {
	case markdown.ActionCopyCode, markdown.ActionCopyURL, markdown.ActionCopyTable:
	default:
		d.log.Warn().Err(errUnknownAction).Str("container", c.id).Str("action", k.Action).Msg("click ignored")
		d.record(k.Action, ResultMiss)
		return res
	}

	text, err := c.resolve(k)
	if err != nil {
		d.log.Warn().Err(err).Str("container", c.id).Str("action", k.Action).Int("index", k.Index).Msg("click ignored")
		d.record(k.Action, ResultMiss)
		return res
	}

	if err := d.clip.WriteAll(text); err != nil {
		d.log.Warn().Err(err).Str("container", c.id).Str("action", k.Action).Int("index", k.Index).Msg("clipboard write failed")
		d.record(k.Action, ResultError)
		return res
	}

	c.mark(k, d.reset)
	d.record(k.Action, ResultOK)
	res.Copied = true
	res.Chars = utf8.RuneCountInString(text)
	return res
}

func (d *Dispatcher) record(action, result string) {
	if d.rec != nil {
		d.rec.ClipboardWrite(action, result)
	}
}
