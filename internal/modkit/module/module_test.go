package module

import (
	"strings"
	"testing"

	phttp "draftdesk/internal/platform/net/http"
	"draftdesk/internal/platform/testkit"
)

type Renderer interface{ Render(string) string }
type Detector interface{ Detect(string) string }

type upper struct{}

func (upper) Render(s string) string { return strings.ToUpper(s) }

type fake struct {
	name  string
	ports any
}

func (f fake) MountRoutes(phttp.Router) {}
func (f fake) Ports() any                { return f.ports }
func (f fake) Name() string              { return f.name }

type bundle struct {
	Renderer Renderer
	hidden   Detector
	Count    int
}

func TestPortsOf(t *testing.T) {
	direct := fake{name: "render", ports: upper{}}
	if r, ok := PortsOf[Renderer](direct); !ok || r.Render("x") != "X" {
		t.Fatalf("direct port not found")
	}

	field := fake{name: "render", ports: bundle{Renderer: upper{}}}
	if r, ok := PortsOf[Renderer](field); !ok || r.Render("y") != "Y" {
		t.Fatalf("field port not found")
	}

	if _, ok := PortsOf[Detector](field); ok {
		t.Fatalf("unexported field should not resolve")
	}
	if _, ok := PortsOf[Renderer](fake{name: "empty"}); ok {
		t.Fatalf("nil ports should not resolve")
	}
	if _, ok := PortsOf[Renderer](fake{name: "scalar", ports: 42}); ok {
		t.Fatalf("non struct ports should not resolve")
	}
}

func TestMustPortsOf_PanicNamesModule(t *testing.T) {
	defer func() {
		msg, _ := recover().(string)
		if !strings.Contains(msg, "drafts") || !strings.Contains(msg, "Detector") {
			t.Fatalf("panic %q", msg)
		}
	}()
	MustPortsOf[Detector](fake{name: "drafts", ports: bundle{}})
}

func TestMustPortsOf_Found(t *testing.T) {
	testkit.MustNotPanic(t, func() { MustPortsOf[Renderer](fake{name: "render", ports: upper{}}) })
}

func TestRegistry(t *testing.T) {
	t.Cleanup(Reset)
	Register("render", bundle{Renderer: upper{}, Count: 2})

	b, ok := Lookup[bundle]("render")
	if !ok || b.Count != 2 {
		t.Fatalf("lookup %+v %v", b, ok)
	}
	if _, ok := Lookup[Renderer]("render"); ok {
		t.Fatalf("wrong type should miss")
	}
	Reset()
	if _, ok := Lookup[bundle]("render"); ok {
		t.Fatalf("reset kept entries")
	}
}
