package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(nil, registry)

var (
	// Latency buckets in milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000,
	}

	VerdictTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_verdicts_total",
			Help: "Moderation verdicts by resulting action",
		},
		[]string{"action"},
	)

	ModerationLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "sentinel_moderation_latency_ms",
			Help:    "End-to-end moderation pipeline latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"outcome"},
	)

	// BlacklistDegradations counts silent no-match fallbacks taken when
	// the dictionary store or a persisted pattern fails. The matcher
	// deliberately degrades instead of blocking moderation, so this is
	// the only visible trace of that trade-off.
	BlacklistDegradations = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_blacklist_degradations_total",
			Help: "Blacklist checks that degraded to no-match on failure",
		},
		[]string{"reason"},
	)

	ClassifierFailures = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_classifier_failures_total",
			Help: "Classifier calls that degraded to empty scores",
		},
	)

	EventPublishFailures = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "sentinel_event_publish_failures_total",
			Help: "Domain events that could not be published",
		},
		[]string{"event_type"},
	)

	BansSwept = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "sentinel_bans_swept_total",
			Help: "Expired temporary bans lifted by the periodic sweep",
		},
	)
)

// Handler exposes the private registry for the metrics listener.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}
