package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "landing"

var (
	// PagesCreated counts generated pages per theme.
	PagesCreated = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "pages_created_total",
		Help:      "Number of landing pages written to disk.",
	}, []string{"theme"})

	// PageErrors counts failed page operations by operation name.
	PageErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "page_errors_total",
		Help:      "Number of failed page operations.",
	}, []string{"op"})

	// RenderSeconds observes template rendering latency.
	RenderSeconds = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "page_render_seconds",
		Help:      "Time spent rendering a landing page.",
		Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
	})
)

// Handler exposes the default registry in the Prometheus text format.
func Handler() http.Handler {
	return promhttp.Handler()
}
