package logger

import (
	"context"
	"fmt"
	"regexp"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/push"
)

const namespace = "soxbot"

var invalidMetricChars = regexp.MustCompile(`[^a-zA-Z0-9_]`)

// Metrics collects counters, gauges and timings for a single run in a
// Prometheus registry. Collectors are registered on first use, so metric
// names like "posts.sent" become "soxbot_posts_sent_total" without a
// declaration step. All operations are thread-safe.
type Metrics struct {
	mu       sync.Mutex
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	timings  map[string]prometheus.Summary
}

var defaultMetrics *Metrics

func init() {
	defaultMetrics = NewMetrics()
}

// NewMetrics creates a metrics tracker with an empty registry
func NewMetrics() *Metrics {
	return &Metrics{
		registry: prometheus.NewRegistry(),
		counters: make(map[string]prometheus.Counter),
		gauges:   make(map[string]prometheus.Gauge),
		timings:  make(map[string]prometheus.Summary),
	}
}

func metricName(name string) string {
	return namespace + "_" + invalidMetricChars.ReplaceAllString(name, "_")
}

// IncrCounter increments a counter by 1
func (m *Metrics) IncrCounter(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.counters[name]
	if !ok {
		c = prometheus.NewCounter(prometheus.CounterOpts{
			Name: metricName(name) + "_total",
			Help: "Count of " + name,
		})
		m.registry.MustRegister(c)
		m.counters[name] = c
	}
	c.Inc()
}

// SetGauge sets a gauge, overwriting any previous value
func (m *Metrics) SetGauge(name string, value float64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	g, ok := m.gauges[name]
	if !ok {
		g = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: metricName(name),
			Help: "Current value of " + name,
		})
		m.registry.MustRegister(g)
		m.gauges[name] = g
	}
	g.Set(value)
}

// RecordTiming observes a duration in seconds
func (m *Metrics) RecordTiming(name string, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	s, ok := m.timings[name]
	if !ok {
		s = prometheus.NewSummary(prometheus.SummaryOpts{
			Name: metricName(name) + "_seconds",
			Help: "Duration of " + name,
		})
		m.registry.MustRegister(s)
		m.timings[name] = s
	}
	s.Observe(duration.Seconds())
}

// Push sends the collected metrics to a Prometheus Pushgateway under job,
// replacing the job's previous values
func (m *Metrics) Push(ctx context.Context, gatewayURL, job string) error {
	if err := push.New(gatewayURL, job).Gatherer(m.registry).PushContext(ctx); err != nil {
		return fmt.Errorf("pushing metrics to %s: %w", gatewayURL, err)
	}
	return nil
}

// Package-level metrics functions using the default metrics tracker

// IncrCounter increments a counter on the default metrics tracker.
func IncrCounter(name string) {
	defaultMetrics.IncrCounter(name)
}

// SetGauge sets a gauge on the default metrics tracker.
func SetGauge(name string, value float64) {
	defaultMetrics.SetGauge(name, value)
}

// RecordTiming records a timing on the default metrics tracker.
func RecordTiming(name string, duration time.Duration) {
	defaultMetrics.RecordTiming(name, duration)
}

// PushMetrics pushes the default tracker's metrics to a Pushgateway.
func PushMetrics(ctx context.Context, gatewayURL, job string) error {
	return defaultMetrics.Push(ctx, gatewayURL, job)
}
