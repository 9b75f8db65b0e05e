// Package metrics exposes Prometheus counters for hosted games.
package metrics

import (
	"net/http"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "heist"

// clearBuckets cover the 60 second level clock.
var clearBuckets = []float64{5, 10, 15, 20, 30, 40, 50, 60}

// Metrics holds the game collectors. A nil *Metrics records nothing.
type Metrics struct {
	gatherer prometheus.Gatherer

	activeSessions prometheus.Gauge
	sessions       prometheus.Counter
	outcomes       *prometheus.CounterVec
	clearSeconds   *prometheus.HistogramVec
	events         *prometheus.CounterVec
	configReloads  *prometheus.CounterVec
}

// New registers the collectors on a fresh registry.
func New() *Metrics {
	return NewWithRegistry(prometheus.NewRegistry())
}

// NewWithRegistry registers the collectors on reg.
func NewWithRegistry(reg *prometheus.Registry) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		gatherer: reg,

		// Labels: none
		activeSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "ssh",
			Name:      "active_sessions",
			Help:      "SSH sessions currently connected",
		}),

		sessions: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "ssh",
			Name:      "sessions_total",
			Help:      "SSH sessions accepted",
		}),

		// Labels: level, outcome (won, timed_out)
		outcomes: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "level",
			Name:      "outcomes_total",
			Help:      "Finished level attempts by outcome",
		}, []string{"level", "outcome"}),

		// Labels: level
		clearSeconds: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "level",
			Name:      "clear_seconds",
			Help:      "Seconds taken to crack a level",
			Buckets:   clearBuckets,
		}, []string{"level"}),

		// Labels: kind (event kind), severity
		events: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "session",
			Name:      "events_total",
			Help:      "Game events emitted by sessions",
		}, []string{"kind", "severity"}),

		// Labels: status (ok, error)
		configReloads: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "config",
			Name:      "reloads_total",
			Help:      "Gameplay config reloads by status",
		}, []string{"status"}),
	}
}

// SessionStarted records a new SSH connection.
func (m *Metrics) SessionStarted() {
	if m == nil {
		return
	}
	m.sessions.Inc()
	m.activeSessions.Inc()
}

// SessionEnded records a closed SSH connection.
func (m *Metrics) SessionEnded() {
	if m == nil {
		return
	}
	m.activeSessions.Dec()
}

// ObserveOutcome records a finished level. Clear times are only observed
// for wins.
func (m *Metrics) ObserveOutcome(level int, outcome string, secs int) {
	if m == nil {
		return
	}
	lvl := strconv.Itoa(level)
	m.outcomes.WithLabelValues(lvl, outcome).Inc()
	if outcome == "won" {
		m.clearSeconds.WithLabelValues(lvl).Observe(float64(secs))
	}
}

// ObserveEvent counts one game event.
func (m *Metrics) ObserveEvent(kind, severity string) {
	if m == nil {
		return
	}
	m.events.WithLabelValues(kind, severity).Inc()
}

// ConfigReloaded counts a config reload attempt.
func (m *Metrics) ConfigReloaded(err error) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.configReloads.WithLabelValues(status).Inc()
}

// Handler serves the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}
