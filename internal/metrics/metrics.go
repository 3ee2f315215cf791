package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CycleCollector exposes Prometheus metrics for processing cycles.
type CycleCollector struct {
	registry      *prometheus.Registry
	cycleTotal    *prometheus.CounterVec
	cycleDuration *prometheus.HistogramVec
	eventCount    prometheus.Gauge
	errorCount    prometheus.Gauge
}

// NewCycleCollector constructs a collector with default histograms/counters.
func NewCycleCollector() (*CycleCollector, error) {
	registry := prometheus.NewRegistry()

	cycleTotal := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "twickenham",
		Subsystem: "service",
		Name:      "cycles_total",
		Help:      "Total number of processing cycles by trigger and outcome.",
	}, []string{"trigger", "outcome"})

	cycleDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "twickenham",
		Subsystem: "service",
		Name:      "cycle_duration_seconds",
		Help:      "Latency distribution for processing cycles.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"trigger"})

	eventCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "twickenham",
		Subsystem: "service",
		Name:      "events",
		Help:      "Number of upcoming events after the latest cycle.",
	})

	errorCount := prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "twickenham",
		Subsystem: "service",
		Name:      "errors",
		Help:      "Number of aggregated processing errors after the latest cycle.",
	})

	for _, c := range []prometheus.Collector{cycleTotal, cycleDuration, eventCount, errorCount} {
		if err := registry.Register(c); err != nil {
			return nil, err
		}
	}

	return &CycleCollector{
		registry:      registry,
		cycleTotal:    cycleTotal,
		cycleDuration: cycleDuration,
		eventCount:    eventCount,
		errorCount:    errorCount,
	}, nil
}

// Handler returns an HTTP handler for exposing Prometheus metrics.
func (c *CycleCollector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// ObserveCycle records one finished cycle.
func (c *CycleCollector) ObserveCycle(trigger, outcome string, duration time.Duration) {
	c.cycleTotal.WithLabelValues(trigger, outcome).Inc()
	c.cycleDuration.WithLabelValues(trigger).Observe(duration.Seconds())
}

// SetCounts updates the post-cycle event and error gauges.
func (c *CycleCollector) SetCounts(events, errors int) {
	c.eventCount.Set(float64(events))
	c.errorCount.Set(float64(errors))
}
