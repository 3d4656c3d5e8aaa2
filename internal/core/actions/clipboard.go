package actions

import (
	"errors"
	"sync"

	"github.com/atotto/clipboard"
)

// ErrNoClipboard is returned by the system clipboard when no backend is available
var ErrNoClipboard = errors.New("actions: system clipboard unsupported on this host")

// Clipboard is the write capability the copy buttons use
type Clipboard interface {
	WriteAll(text string) error
}

type systemClipboard struct{}

// System returns the host clipboard
func System() Clipboard { return systemClipboard{} }

// SystemAvailable reports whether the host has a clipboard backend
func SystemAvailable() bool { return !clipboard.Unsupported }

func (systemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return ErrNoClipboard
	}
	return clipboard.WriteAll(text)
}

// Memory is an in process clipboard, used headless and in tests
// set Fail to make every write return that error
type Memory struct {
	mu     sync.Mutex
	last   string
	writes int
	Fail   error
}

// WriteAll stores text unless Fail is set
func (m *Memory) WriteAll(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail != nil {
		return m.Fail
	}
	m.last = text
	m.writes++
	return nil
}

// Last returns the most recent successful write
func (m *Memory) Last() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.last
}

// Writes returns the number of successful writes
func (m *Memory) Writes() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.writes
}
