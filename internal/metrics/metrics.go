// Package metrics exposes the process's Prometheus instruments: one
// counter per dispatched chat command and per probe outcome, plus a
// probe latency histogram.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics owns the registry and the instruments registered on it.
// A nil *Metrics is valid and records nothing, so components can take
// it as an optional dependency.
type Metrics struct {
	registry *prometheus.Registry

	CommandsTotal *prometheus.CounterVec
	ProbesTotal   *prometheus.CounterVec
	ProbeDuration *prometheus.HistogramVec
}

// New builds the registry with all instruments and the default Go and
// process collectors registered.
func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,

		CommandsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nodewatch_commands_total",
			Help: "Chat commands dispatched, by command label",
		}, []string{"command"}),

		ProbesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "nodewatch_probes_total",
			Help: "Node probes issued, by outcome",
		}, []string{"outcome"}),

		ProbeDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "nodewatch_probe_duration_seconds",
			Help:    "Probe round-trip time in seconds",
			Buckets: prometheus.ExponentialBuckets(0.001, 2, 12),
		}, []string{"outcome"}),
	}

	registry.MustRegister(
		m.CommandsTotal,
		m.ProbesTotal,
		m.ProbeDuration,
	)
	registry.MustRegister(prometheus.NewGoCollector())
	registry.MustRegister(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))

	return m
}

// IncCommand counts one dispatched command.
func (m *Metrics) IncCommand(command string) {
	if m == nil {
		return
	}
	m.CommandsTotal.WithLabelValues(command).Inc()
}

// ObserveProbe counts one finished probe and records its round trip.
func (m *Metrics) ObserveProbe(outcome string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.ProbesTotal.WithLabelValues(outcome).Inc()
	m.ProbeDuration.WithLabelValues(outcome).Observe(elapsed.Seconds())
}

// Handler serves the exposition endpoint for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
