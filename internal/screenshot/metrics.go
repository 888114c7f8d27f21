package screenshot

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeOK      = "ok"
	outcomeInvalid = "invalid"
	outcomeError   = "error"
)

// Metrics are the capture collectors
type Metrics struct {
	captures *prometheus.CounterVec
	duration *prometheus.HistogramVec
	size     prometheus.Histogram
	inFlight prometheus.Gauge
}

// NewMetrics creates the capture collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		captures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "mockshot_captures_total",
			Help: "Tracks screenshot captures by platform and outcome.",
		}, []string{"platform", "outcome"}),

		duration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "mockshot_capture_duration_seconds",
			Help:    "Tracks how long captures take.",
			Buckets: []float64{0.25, 0.5, 1, 2, 4, 8, 15, 30},
		}, []string{"platform"}),

		size: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "mockshot_capture_bytes",
			Help:    "Tracks the size of produced PNGs.",
			Buckets: prometheus.ExponentialBuckets(16*1024, 2, 8),
		}),

		inFlight: factory.NewGauge(prometheus.GaugeOpts{
			Name: "mockshot_captures_in_flight",
			Help: "Number of captures holding a browser.",
		}),
	}
}

func (m *Metrics) observe(platform, outcome string, d time.Duration, bytes int) {
	m.captures.WithLabelValues(platform, outcome).Inc()
	if outcome == outcomeInvalid {
		return
	}
	m.duration.WithLabelValues(platform).Observe(d.Seconds())
	if bytes > 0 {
		m.size.Observe(float64(bytes))
	}
}
