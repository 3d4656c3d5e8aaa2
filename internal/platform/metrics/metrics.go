// Package metrics is the Prometheus recorder shared by the API services.
// Every method is safe on a nil *Recorder so callers never guard.
package metrics

import (
	"net/http"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "draftdesk"

// Recorder holds the draftdesk collectors
type Recorder struct {
	detect         *prom.CounterVec
	renderDuration prom.Histogram
	renderBytes    prom.Histogram
	clipboard      *prom.CounterVec
	draftChunks    prom.Counter
	draftStreams   *prom.CounterVec
	listeners      prom.Gauge
	reloads        *prom.CounterVec
	queries        *prom.HistogramVec
}

// New builds the collectors and registers them on reg, a nil reg gets a fresh registry
func New(reg *prom.Registry) *Recorder {
	if reg == nil {
		reg = prom.NewRegistry()
	}
	r := &Recorder{
		detect: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "detect_total",
			Help:      "Context detections by resulting tag",
		}, []string{"tag"}),
		renderDuration: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_duration_seconds",
			Help:      "Time spent rendering one markdown snapshot",
			Buckets:   []float64{.0001, .0005, .001, .0025, .005, .01, .025, .05, .1},
		}),
		renderBytes: prom.NewHistogram(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "render_bytes",
			Help:      "Size of rendered HTML fragments",
			Buckets:   prom.ExponentialBuckets(256, 4, 8),
		}),
		clipboard: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "clipboard_writes_total",
			Help:      "Copy button clicks by action and result",
		}, []string{"action", "result"}),
		draftChunks: prom.NewCounter(prom.CounterOpts{
			Namespace: namespace,
			Name:      "draft_chunks_total",
			Help:      "Streamed draft frames sent to clients",
		}),
		draftStreams: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "draft_streams_total",
			Help:      "Draft streams by outcome",
		}, []string{"outcome"}),
		listeners: prom.NewGauge(prom.GaugeOpts{
			Namespace: namespace,
			Name:      "station_listeners",
			Help:      "Connected station websocket clients",
		}),
		reloads: prom.NewCounterVec(prom.CounterOpts{
			Namespace: namespace,
			Name:      "pattern_reloads_total",
			Help:      "Pattern table reload attempts by result",
		}, []string{"result"}),
		queries: prom.NewHistogramVec(prom.HistogramOpts{
			Namespace: namespace,
			Name:      "pg_query_duration_seconds",
			Help:      "Postgres query latency by leading verb and result",
			Buckets:   prom.DefBuckets,
		}, []string{"verb", "result"}),
	}
	reg.MustRegister(r.detect, r.renderDuration, r.renderBytes, r.clipboard,
		r.draftChunks, r.draftStreams, r.listeners, r.reloads, r.queries)
	return r
}

// IncDetect counts one detection, the empty tag is recorded as "none"
func (r *Recorder) IncDetect(tag string) {
	if r == nil {
		return
	}
	if tag == "" {
		tag = "none"
	}
	r.detect.WithLabelValues(tag).Inc()
}

// ObserveRender records one render call
func (r *Recorder) ObserveRender(d time.Duration, size int) {
	if r == nil {
		return
	}
	r.renderDuration.Observe(d.Seconds())
	r.renderBytes.Observe(float64(size))
}

// ClipboardWrite counts one copy click
func (r *Recorder) ClipboardWrite(action, result string) {
	if r == nil {
		return
	}
	r.clipboard.WithLabelValues(action, result).Inc()
}

// IncDraftChunk counts one streamed frame
func (r *Recorder) IncDraftChunk() {
	if r == nil {
		return
	}
	r.draftChunks.Inc()
}

// IncDraftStream counts a finished stream, outcome is done, error or canceled
func (r *Recorder) IncDraftStream(outcome string) {
	if r == nil {
		return
	}
	r.draftStreams.WithLabelValues(outcome).Inc()
}

// SetListeners publishes the station listener count
func (r *Recorder) SetListeners(n int) {
	if r == nil {
		return
	}
	r.listeners.Set(float64(n))
}

// PatternReload counts a reload attempt
func (r *Recorder) PatternReload(err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.reloads.WithLabelValues(result).Inc()
}

// ObserveQuery records one postgres round trip
func (r *Recorder) ObserveQuery(verb string, d time.Duration, err error) {
	if r == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	r.queries.WithLabelValues(verb, result).Observe(d.Seconds())
}

// HTTPHandler serves the metrics of reg
func HTTPHandler(reg *prom.Registry) http.Handler {
	if reg == nil {
		return promhttp.Handler()
	}
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{EnableOpenMetrics: true})
}
