// Package module is the contract between modkit modules and the port lookups that wire them
package module

import (
	"fmt"
	"reflect"
	"sync"

	phttp "draftdesk/internal/platform/net/http"
)

// Module mounts routes and exposes ports
// it lives apart from modkit so a module's ports type can import it without a cycle
type Module interface {
	MountRoutes(r phttp.Router)
	Ports() any
	Name() string
}

// PortsOf finds a T in m.Ports(), either the value itself or one of its exported fields
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for bootstrap, a missing port is a wiring bug
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic(fmt.Sprintf("module %s has no %s port", m.Name(), reflect.TypeFor[T]()))
	}
	return v
}

var (
	regMu    sync.RWMutex
	registry = map[string]any{}
)

// Register publishes a module's ports under its name
func Register(name string, ports any) {
	regMu.Lock()
	defer regMu.Unlock()
	registry[name] = ports
}

// Lookup returns the ports registered under name as a T
func Lookup[T any](name string) (T, bool) {
	regMu.RLock()
	defer regMu.RUnlock()
	v, ok := registry[name].(T)
	return v, ok
}

// Reset empties the registry between tests
func Reset() {
	regMu.Lock()
	defer regMu.Unlock()
	clear(registry)
}
