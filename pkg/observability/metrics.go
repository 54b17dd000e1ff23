package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/arbor/pkg/domain"
)

// Metrics holds the Prometheus collectors for an outline engine.
type Metrics struct {
	flattens        prometheus.Counter
	flattenDuration prometheus.Histogram
	entries         prometheus.Gauge
	maxDepth        prometheus.Gauge
	searches        *prometheus.CounterVec
	scrollSteps     prometheus.Counter
	sessionsActive  prometheus.Gauge
}

// NewMetrics creates the collector set and registers it with reg.
// Pass prometheus.DefaultRegisterer to expose the metrics through the
// global registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		flattens: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_flatten_total",
			Help: "Total number of flatten passes (loads and reloads).",
		}),
		flattenDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name: "arbor_flatten_duration_seconds",
			Help: "Time spent flattening the source tree.",
		}),
		entries: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_outline_entries",
			Help: "Number of entries in the current outline.",
		}),
		maxDepth: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_outline_max_depth",
			Help: "Deepest nesting level in the current outline.",
		}),
		searches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "arbor_search_total",
			Help: "Total number of searches, by whether they matched.",
		}, []string{"matched"}),
		scrollSteps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "arbor_scroll_steps_total",
			Help: "Total number of inertia scroll steps applied.",
		}),
		sessionsActive: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "arbor_sessions_active",
			Help: "Number of browsing sessions currently open.",
		}),
	}
	reg.MustRegister(m.flattens, m.flattenDuration, m.entries, m.maxDepth,
		m.searches, m.scrollSteps, m.sessionsActive)
	return m
}

// SessionOpened records one more active browsing session.
func (m *Metrics) SessionOpened() {
	m.sessionsActive.Inc()
}

// SessionClosed records one session going away.
func (m *Metrics) SessionClosed() {
	m.sessionsActive.Dec()
}

// Hooks returns lifecycle hooks that feed the collectors. Merge them with
// any application hooks before handing them to the engine.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnReload: func(_ context.Context, e *domain.OutlineEvent) {
			m.flattens.Inc()
			m.flattenDuration.Observe(e.Elapsed.Seconds())
			m.entries.Set(float64(e.Entries))
			m.maxDepth.Set(float64(e.MaxDepth))
		},
		OnSearch: func(_ context.Context, e *domain.SearchEvent) {
			matched := "false"
			if e.Matches > 0 {
				matched = "true"
			}
			m.searches.WithLabelValues(matched).Inc()
		},
		OnStep: func(_ context.Context, _ *domain.StepEvent) {
			m.scrollSteps.Inc()
		},
	}
}
