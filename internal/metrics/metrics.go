// Package metrics holds the Prometheus instrumentation of a report run.
// A run is short-lived, so the registry is exported as a node_exporter
// textfile rather than served over HTTP.
package metrics

import (
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds all Prometheus metrics for the reporter.
type Metrics struct {
	Registry *prometheus.Registry

	AcquireAttempts    *prometheus.CounterVec   // labels: outcome
	Symbols            *prometheus.CounterVec   // labels: result=ok|dropped
	FetchDuration      *prometheus.HistogramVec // labels: kind=snapshot|history
	UnavailableMetrics *prometheus.CounterVec   // labels: metric
	LastRun            prometheus.Gauge
	RunDuration        prometheus.Gauge
}

// New registers and returns all metrics on a fresh registry.
func New() *Metrics {
	m := &Metrics{
		Registry: prometheus.NewRegistry(),
		AcquireAttempts: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickerreport_acquire_attempts_total",
			Help: "Acquisition attempts by outcome",
		}, []string{"outcome"}),
		Symbols: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickerreport_symbols_total",
			Help: "Symbols processed by result",
		}, []string{"result"}),
		FetchDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "tickerreport_fetch_duration_seconds",
			Help:    "Provider request latency",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"kind"}),
		UnavailableMetrics: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "tickerreport_unavailable_indicators_total",
			Help: "Indicators that could not be computed, by indicator",
		}, []string{"metric"}),
		LastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickerreport_last_run_timestamp_seconds",
			Help: "Unix time of the last completed run",
		}),
		RunDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "tickerreport_run_duration_seconds",
			Help: "Wall time of the last completed run",
		}),
	}
	m.Registry.MustRegister(
		m.AcquireAttempts,
		m.Symbols,
		m.FetchDuration,
		m.UnavailableMetrics,
		m.LastRun,
		m.RunDuration,
	)
	return m
}

// ObserveAttempt counts one acquisition attempt. Safe on a nil receiver.
func (m *Metrics) ObserveAttempt(outcome string) {
	if m == nil {
		return
	}
	m.AcquireAttempts.WithLabelValues(outcome).Inc()
}

// ObserveSymbol counts a symbol as kept or dropped.
func (m *Metrics) ObserveSymbol(ok bool) {
	if m == nil {
		return
	}
	result := "ok"
	if !ok {
		result = "dropped"
	}
	m.Symbols.WithLabelValues(result).Inc()
}

// ObserveFetch records the latency of one provider request.
func (m *Metrics) ObserveFetch(kind string, d time.Duration) {
	if m == nil {
		return
	}
	m.FetchDuration.WithLabelValues(kind).Observe(d.Seconds())
}

// ObserveUnavailable counts an indicator left without a value.
func (m *Metrics) ObserveUnavailable(metric string) {
	if m == nil {
		return
	}
	m.UnavailableMetrics.WithLabelValues(metric).Inc()
}

// ObserveRun stamps the end of a run.
func (m *Metrics) ObserveRun(started, finished time.Time) {
	if m == nil {
		return
	}
	m.LastRun.Set(float64(finished.Unix()))
	m.RunDuration.Set(finished.Sub(started).Seconds())
}

// WriteTextfile dumps the registry in text exposition format for the
// node_exporter textfile collector.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	if err := prometheus.WriteToTextfile(path, m.Registry); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
