package rpc

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	outcomeSuccess   = "success"
	outcomeHostError = "host_error"
	outcomeTransport = "transport_error"
)

// Metrics holds the Prometheus collectors of a Client. A nil *Metrics
// records nothing.
type Metrics struct {
	RoundTrips        *prometheus.CounterVec
	RoundTripDuration *prometheus.HistogramVec
}

// NewMetrics registers the collectors with registry, or with the default
// registerer when registry is nil.
func NewMetrics(registry prometheus.Registerer) *Metrics {
	if registry == nil {
		registry = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registry)

	return &Metrics{
		RoundTrips: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "safe_apps_host_round_trips_total",
			Help: "The total number of host round trips by method and outcome",
		}, []string{"method", "outcome"}),
		RoundTripDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "safe_apps_host_round_trip_duration_seconds",
			Help:    "Duration of host round trips",
			Buckets: prometheus.DefBuckets,
		}, []string{"method"}),
	}
}

func (m *Metrics) observe(method Method, err error, elapsed time.Duration) {
	if m == nil {
		return
	}

	outcome := outcomeSuccess
	var hostErr *HostError
	if errors.As(err, &hostErr) {
		outcome = outcomeHostError
	} else if err != nil {
		outcome = outcomeTransport
	}

	m.RoundTrips.WithLabelValues(method.String(), outcome).Inc()
	m.RoundTripDuration.WithLabelValues(method.String()).Observe(elapsed.Seconds())
}
