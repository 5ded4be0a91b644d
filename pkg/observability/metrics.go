package observability

import (
	"errors"
	"net/http"
	"time"

	"github.com/aretw0/kwargs/pkg/value"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels.
const (
	ResultOK                 = "ok"
	ResultUnsupportedType    = "unsupported_type"
	ResultUnsupportedKeyType = "unsupported_key_type"
	ResultRecursionLimit     = "recursion_limit"
	ResultNotFound           = "not_found"
	ResultError              = "error"
)

// Metrics records conversion and storage activity.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry    *prometheus.Registry
	conversions *prometheus.CounterVec
	duration    *prometheus.HistogramVec
	storeOps    *prometheus.CounterVec
}

// New creates the collectors and registers them on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		conversions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kwargs_conversions_total",
				Help: "Total number of conversions by operation and result",
			},
			[]string{"op", "result"},
		),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "kwargs_conversion_duration_seconds",
				Help:    "Duration of conversions",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"op"},
		),
		storeOps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "kwargs_store_operations_total",
				Help: "Total number of dict store operations by operation and result",
			},
			[]string{"op", "result"},
		),
	}
	m.registry.MustRegister(m.conversions, m.duration, m.storeOps)
	return m
}

// Registry returns the underlying registry.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// ObserveConversion records one conversion that started at start.
func (m *Metrics) ObserveConversion(op string, start time.Time, err error) {
	if m == nil {
		return
	}
	m.conversions.WithLabelValues(op, Result(err)).Inc()
	m.duration.WithLabelValues(op).Observe(time.Since(start).Seconds())
}

// ObserveStore records one store operation.
func (m *Metrics) ObserveStore(op string, err error) {
	if m == nil {
		return
	}
	m.storeOps.WithLabelValues(op, Result(err)).Inc()
}

// Conversions returns the counter for op and result. Mostly useful in tests.
func (m *Metrics) Conversions(op, result string) prometheus.Counter {
	return m.conversions.WithLabelValues(op, result)
}

// StoreOps returns the store counter for op and result.
func (m *Metrics) StoreOps(op, result string) prometheus.Counter {
	return m.storeOps.WithLabelValues(op, result)
}

// Result classifies err into a low-cardinality label value.
func Result(err error) string {
	switch {
	case err == nil:
		return ResultOK
	case errors.Is(err, value.ErrUnsupportedKeyType):
		return ResultUnsupportedKeyType
	case errors.Is(err, value.ErrUnsupportedType):
		return ResultUnsupportedType
	case errors.Is(err, value.ErrRecursionLimitExceeded):
		return ResultRecursionLimit
	case errors.Is(err, value.ErrNotFound):
		return ResultNotFound
	default:
		return ResultError
	}
}
