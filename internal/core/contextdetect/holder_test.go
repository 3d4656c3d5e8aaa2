package contextdetect

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"draftdesk/internal/platform/testkit"
)

const overrideYAML = `
version: 1
domains:
  - tag: shipping
    id_pattern: "\\bshp_[0-9]+"
    keywords: [parcel]
`

func TestHolder_NilTablePanics(t *testing.T) {
	testkit.MustPanic(t, func() { NewHolder(nil) })
}

func TestHolder_SwapAndDetect(t *testing.T) {
	h := NewHolder(mustTable(t))
	if tag, ok := h.Detect("po_1 payout"); !ok || tag != "payouts" {
		t.Fatalf("want payouts got %q %v", tag, ok)
	}

	h.Swap(nil)
	if h.Table() == nil {
		t.Fatalf("Swap(nil) must keep the current table")
	}

	h.Swap(mustParse(t, overrideYAML))
	if _, ok := h.Detect("po_1 payout"); ok {
		t.Fatalf("old table should be gone")
	}
	if r := h.Explain("shp_7"); !r.OK || r.Tag != "shipping" {
		t.Fatalf("want shipping got %+v", r)
	}
}

func TestHolder_ReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "patterns.yaml")
	if err := os.WriteFile(p, []byte("version: 9\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	var calls, failures atomic.Int32
	h := NewHolder(mustTable(t), OnReload(func(err error) {
		calls.Add(1)
		if err != nil {
			failures.Add(1)
		}
	}))
	before := h.Table()
	if err := h.Reload(p); err == nil {
		t.Fatalf("expected reload error")
	}
	if h.Table() != before {
		t.Fatalf("table must not change on a failed reload")
	}

	if err := os.WriteFile(p, []byte(overrideYAML), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := h.Reload(p); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if h.Table() == before {
		t.Fatalf("table should have been swapped")
	}
	if calls.Load() != 2 || failures.Load() != 1 {
		t.Fatalf("hook calls=%d failures=%d", calls.Load(), failures.Load())
	}
}

func TestHolder_WatchPicksUpWrites(t *testing.T) {
	dir := t.TempDir()
	p := filepath.Join(dir, "patterns.yaml")
	if err := os.WriteFile(p, []byte("version: 1\ndomains:\n  - tag: first\n    keywords: [one]\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	reloaded := make(chan error, 4)
	h := NewHolder(mustTable(t), OnReload(func(err error) { reloaded <- err }))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := h.Watch(ctx, p, 20*time.Millisecond); err != nil {
		t.Fatalf("watch: %v", err)
	}

	if err := os.WriteFile(p, []byte(overrideYAML), 0o600); err != nil {
		t.Fatal(err)
	}

	testkit.Eventually(t, 5*time.Second, 10*time.Millisecond, func() bool {
		select {
		case <-reloaded:
		default:
		}
		tags := h.Table().Tags()
		return len(tags) == 1 && tags[0] == "shipping"
	}, "watcher never swapped in the shipping table")
}

func TestHolder_WatchMissingDir(t *testing.T) {
	h := NewHolder(mustTable(t))
	err := h.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "p.yaml"), 0)
	if err == nil {
		t.Fatalf("expected error watching a missing directory")
	}
}
