package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"sentry-bot/internal/domain/entity"
	"sentry-bot/internal/domain/port"
)

// Metrics метрики рабочего цикла в собственном реестре Prometheus
type Metrics struct {
	registry *prometheus.Registry

	cycles          *prometheus.CounterVec
	cycleDuration   *prometheus.HistogramVec
	transitions     *prometheus.CounterVec
	captureFailures prometheus.Counter
	persons         prometheus.Counter
	alert           prometheus.Gauge
	running         prometheus.Gauge
}

// New создаёт метрики и регистрирует их
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		cycles: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentry_cycles_total",
			Help: "Total controller cycles by mode",
		}, []string{"mode"}),
		cycleDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "sentry_cycle_duration_seconds",
			Help:    "Time spent in one controller cycle, sleep excluded",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"mode"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "sentry_mode_transitions_total",
			Help: "Mode transitions",
		}, []string{"from", "to"}),
		captureFailures: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentry_capture_failures_total",
			Help: "Capture failures that stopped the watch",
		}),
		persons: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sentry_person_boxes_total",
			Help: "Person boxes returned by the detector",
		}),
		alert: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentry_alert",
			Help: "1 while a person is considered present",
		}),
		running: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sentry_running",
			Help: "1 while the watch cycle is running",
		}),
	}

	m.registry.MustRegister(
		m.cycles,
		m.cycleDuration,
		m.transitions,
		m.captureFailures,
		m.persons,
		m.alert,
		m.running,
		collectors.NewGoCollector(),
	)

	return m
}

func (m *Metrics) ObserveCycle(mode entity.Mode, d time.Duration) {
	m.cycles.WithLabelValues(string(mode)).Inc()
	m.cycleDuration.WithLabelValues(string(mode)).Observe(d.Seconds())
}

func (m *Metrics) ObserveTransition(from, to entity.Mode) {
	m.transitions.WithLabelValues(string(from), string(to)).Inc()
}

func (m *Metrics) ObserveCaptureFailure() {
	m.captureFailures.Inc()
}

func (m *Metrics) ObserveDetections(count int) {
	m.persons.Add(float64(count))
}

func (m *Metrics) SetAlert(alert bool) {
	m.alert.Set(boolToFloat(alert))
}

func (m *Metrics) SetRunning(running bool) {
	m.running.Set(boolToFloat(running))
}

// Handler отдаёт метрики в формате Prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func boolToFloat(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

var _ port.Metrics = (*Metrics)(nil)
