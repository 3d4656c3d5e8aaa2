package metrics

import (
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"draftdesk/internal/platform/testkit"

	prom "github.com/prometheus/client_golang/prometheus"
)

func TestRecorder_Gather(t *testing.T) {
	reg := prom.NewRegistry()
	r := New(reg)
	r.IncDetect("payouts")
	r.IncDetect("")
	r.ObserveRender(2*time.Millisecond, 1024)
	r.ClipboardWrite("copy-url", "ok")
	r.IncDraftChunk()
	r.IncDraftStream("done")
	r.SetListeners(3)
	r.PatternReload(nil)
	r.PatternReload(errors.New("bad"))
	r.ObserveQuery("select", 3*time.Millisecond, nil)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	names := map[string]bool{}
	for _, mf := range mfs {
		names[mf.GetName()] = true
	}
	for _, want := range []string{
		"draftdesk_detect_total",
		"draftdesk_render_duration_seconds",
		"draftdesk_render_bytes",
		"draftdesk_clipboard_writes_total",
		"draftdesk_draft_chunks_total",
		"draftdesk_draft_streams_total",
		"draftdesk_station_listeners",
		"draftdesk_pattern_reloads_total",
		"draftdesk_pg_query_duration_seconds",
	} {
		if !names[want] {
			t.Fatalf("missing %s in %v", want, names)
		}
	}
}

func TestRecorder_NilSafe(t *testing.T) {
	var r *Recorder
	testkit.MustNotPanic(t, func() {
		r.IncDetect("x")
		r.ObserveRender(time.Millisecond, 1)
		r.ClipboardWrite("a", "b")
		r.IncDraftChunk()
		r.IncDraftStream("done")
		r.SetListeners(1)
		r.PatternReload(nil)
		r.ObserveQuery("insert", time.Millisecond, errors.New("x"))
	})
}

func TestHTTPHandler(t *testing.T) {
	reg := prom.NewRegistry()
	New(reg).IncDetect("tax")

	rr := httptest.NewRecorder()
	HTTPHandler(reg).ServeHTTP(rr, httptest.NewRequest("GET", "/metrics", nil))
	body, _ := io.ReadAll(rr.Body)
	if !strings.Contains(string(body), `draftdesk_detect_total{tag="tax"} 1`) {
		t.Fatalf("unexpected scrape:\n%s", body)
	}
}
