package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// metrics holds the server's Prometheus instruments.
type metrics struct {
	sessionsActive prometheus.Gauge
	eventsTotal    *prometheus.CounterVec
	patchesTotal   prometheus.Counter
	flushDuration  prometheus.Histogram
	renderErrors   prometheus.Counter
}

func newMetrics(reg prometheus.Registerer) *metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &metrics{
		sessionsActive: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: "veld",
			Name:      "sessions_active",
			Help:      "Number of live sessions currently attached.",
		}),
		eventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "veld",
			Name:      "events_total",
			Help:      "Client events dispatched, by event name.",
		}, []string{"event"}),
		patchesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "veld",
			Name:      "patches_total",
			Help:      "Host mutations streamed to clients.",
		}),
		flushDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "veld",
			Name:      "flush_duration_seconds",
			Help:      "Duration of event dispatch plus flush.",
			Buckets:   prometheus.DefBuckets,
		}),
		renderErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "veld",
			Name:      "render_errors_total",
			Help:      "Unhandled render errors that tore down a session.",
		}),
	}
}
