// Package metrics holds the prometheus instruments of the translation
// pipeline.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics is a set of instruments registered on one registry.
type Metrics struct {
	registry *prometheus.Registry

	EventsTranslated *prometheus.CounterVec
	EventsFailed     *prometheus.CounterVec
	FluxUnsupported  prometheus.Counter
	Divergences      *prometheus.CounterVec
	TranslateSeconds prometheus.Histogram
	SaveSeconds      prometheus.Histogram
}

// New registers the instruments on a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)
	return &Metrics{
		registry: reg,
		EventsTranslated: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evgb_events_translated_total",
			Help: "Events translated to truth records, by interaction mode",
		}, []string{"mode"}),
		EventsFailed: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evgb_events_failed_total",
			Help: "Events that could not be decoded or saved",
		}, []string{"stage"}),
		FluxUnsupported: f.NewCounter(prometheus.CounterOpts{
			Name: "evgb_flux_unsupported_total",
			Help: "Events whose flux driver had no translation",
		}),
		Divergences: f.NewCounterVec(prometheus.CounterOpts{
			Name: "evgb_roundtrip_divergences_total",
			Help: "Round-trip divergences found, by type",
		}, []string{"type"}),
		TranslateSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "evgb_translate_duration_seconds",
			Help:    "Duration of one event translation",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01},
		}),
		SaveSeconds: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "evgb_save_duration_seconds",
			Help:    "Duration of saving one event to the sinks",
			Buckets: prometheus.DefBuckets,
		}),
	}
}

// Registry returns the registry the instruments live on.
func (m *Metrics) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// ObserveSince records the time elapsed since start on h.
func ObserveSince(h prometheus.Observer, start time.Time) {
	h.Observe(time.Since(start).Seconds())
}
