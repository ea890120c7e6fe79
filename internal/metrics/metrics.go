// Package metrics exposes Prometheus metrics for mesh measurements.
package metrics

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/philipparndt/stlmeasure/pkg/analysis"
	"github.com/philipparndt/stlmeasure/pkg/source"
	"github.com/philipparndt/stlmeasure/pkg/stl"
)

// Error kinds used as the "kind" label
const (
	KindParse          = "parse"
	KindEmptyMesh      = "empty_mesh"
	KindZeroVolume     = "zero_volume"
	KindNonFinite      = "non_finite"
	KindInvalidDensity = "invalid_density"
	KindTooLarge       = "too_large"
	KindOther          = "other"
)

// Collector holds the measurement metrics on a private registry
type Collector struct {
	registry *prometheus.Registry

	Measurements *prometheus.CounterVec
	Errors       *prometheus.CounterVec
	Duration     prometheus.Histogram
	Triangles    prometheus.Histogram
}

// NewCollector creates and registers all metrics under namespace
func NewCollector(namespace string) *Collector {
	registry := prometheus.NewRegistry()

	c := &Collector{
		registry: registry,
		Measurements: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "measurements_total",
				Help:      "Total number of meshes measured",
			},
			[]string{"format", "watertight"},
		),
		Errors: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Name:      "measurement_errors_total",
				Help:      "Total number of failed measurements by kind",
			},
			[]string{"kind"},
		),
		Duration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "measurement_duration_seconds",
				Help:      "Time spent parsing and measuring one mesh",
				Buckets:   prometheus.DefBuckets,
			},
		),
		Triangles: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Name:      "mesh_triangles",
				Help:      "Triangle count of measured meshes",
				Buckets:   prometheus.ExponentialBuckets(12, 4, 10),
			},
		),
	}

	registry.MustRegister(
		c.Measurements,
		c.Errors,
		c.Duration,
		c.Triangles,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return c
}

// Handler serves the registry in the Prometheus exposition format
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveResult records a successful measurement
func (c *Collector) ObserveResult(result *analysis.Result, elapsed time.Duration) {
	c.Measurements.WithLabelValues(result.Format.String(), strconv.FormatBool(result.IsWatertight)).Inc()
	c.Duration.Observe(elapsed.Seconds())
	c.Triangles.Observe(float64(result.Triangles))
}

// ObserveError records a failed measurement
func (c *Collector) ObserveError(err error) {
	c.Errors.WithLabelValues(ErrorKind(err)).Inc()
}

// ErrorKind classifies a measurement error for labels and responses
func ErrorKind(err error) string {
	var perr *stl.ParseError
	switch {
	case errors.As(err, &perr):
		return KindParse
	case errors.Is(err, analysis.ErrEmptyMesh):
		return KindEmptyMesh
	case errors.Is(err, analysis.ErrZeroVolume):
		return KindZeroVolume
	case errors.Is(err, analysis.ErrNonFiniteMesh):
		return KindNonFinite
	case errors.Is(err, analysis.ErrInvalidDensity):
		return KindInvalidDensity
	case errors.Is(err, source.ErrTooLarge):
		return KindTooLarge
	default:
		return KindOther
	}
}
