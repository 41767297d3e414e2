package executor

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	opInit = "init"
	opSend = "send"
	opRecv = "recv"
)

// Metrics holds Prometheus metrics for executor transfers.
type Metrics struct {
	bytesTotal      *prometheus.CounterVec
	errorsTotal     *prometheus.CounterVec
	transferSeconds *prometheus.HistogramVec
}

// NewMetrics creates the executor metrics and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		bytesTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpsse_bytes_total",
				Help: "Total number of bytes sent to or received from the device",
			},
			[]string{"direction"},
		),

		errorsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "mpsse_errors_total",
				Help: "Total number of failed executor operations",
			},
			[]string{"operation"},
		),

		transferSeconds: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "mpsse_operation_duration_seconds",
				Help:    "Executor operation duration in seconds",
				Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
			[]string{"operation"},
		),
	}
}

// observe records one executor operation. n is the number of bytes moved.
func (m *Metrics) observe(op string, n int, start time.Time, err error) {
	if m == nil {
		return
	}

	m.transferSeconds.WithLabelValues(op).Observe(time.Since(start).Seconds())

	switch op {
	case opSend:
		m.bytesTotal.WithLabelValues("tx").Add(float64(n))
	case opRecv:
		m.bytesTotal.WithLabelValues("rx").Add(float64(n))
	}

	if err != nil {
		m.errorsTotal.WithLabelValues(op).Inc()
	}
}
