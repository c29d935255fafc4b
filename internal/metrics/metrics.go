package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "daylight"

// Service exposes engine activity as Prometheus metrics.
// It satisfies the alarm, countdown and stopwatch recorders.
type Service struct {
	registry *prometheus.Registry

	// Counters
	alarmsArmed       prometheus.Counter
	alarmsTriggered   prometheus.Counter
	alarmStops        *prometheus.CounterVec
	countdownsStarted prometheus.Counter
	countdownsDone    prometheus.Counter
	stopwatchStarts   prometheus.Counter
	stopwatchLaps     prometheus.Counter
	rpcRequests       *prometheus.CounterVec

	// Gauges
	alarmPlaying prometheus.Gauge
}

// New creates the metrics on a dedicated registry together with the Go and process collectors.
func New() *Service {
	m := &Service{
		registry: prometheus.NewRegistry(),

		alarmsArmed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_armed_total",
			Help:      "Total number of times the alarm was armed",
		}),

		alarmsTriggered: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarms_triggered_total",
			Help:      "Total number of times the alarm fired",
		}),

		alarmStops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "alarm_stops_total",
			Help:      "Total number of alarm playbacks ended, by reason",
		}, []string{"reason"}), // manual, timeout, teardown

		countdownsStarted: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "countdowns_started_total",
			Help:      "Total number of countdown starts",
		}),

		countdownsDone: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "countdowns_finished_total",
			Help:      "Total number of countdowns that reached zero",
		}),

		stopwatchStarts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stopwatch_starts_total",
			Help:      "Total number of stopwatch starts",
		}),

		stopwatchLaps: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "stopwatch_laps_total",
			Help:      "Total number of recorded laps",
		}),

		rpcRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "rpc_requests_total",
			Help:      "Total number of control API calls, by method and status code",
		}, []string{"method", "code"}),

		alarmPlaying: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "alarm_playing",
			Help:      "1 while the alarm sound is playing",
		}),
	}

	m.registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.alarmsArmed,
		m.alarmsTriggered,
		m.alarmStops,
		m.countdownsStarted,
		m.countdownsDone,
		m.stopwatchStarts,
		m.stopwatchLaps,
		m.rpcRequests,
		m.alarmPlaying,
	)

	return m
}

// Registry returns the registry holding every metric.
func (m *Service) Registry() *prometheus.Registry {
	return m.registry
}

// Handler returns the HTTP handler serving the registry.
func (m *Service) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// AlarmArmed counts an arm operation.
func (m *Service) AlarmArmed() {
	m.alarmsArmed.Inc()
}

// AlarmTriggered counts a fired alarm and marks playback active.
func (m *Service) AlarmTriggered() {
	m.alarmsTriggered.Inc()
	m.alarmPlaying.Set(1)
}

// AlarmStopped counts the end of playback.
func (m *Service) AlarmStopped(reason string) {
	m.alarmStops.WithLabelValues(reason).Inc()
	m.alarmPlaying.Set(0)
}

// CountdownStarted counts a countdown start.
func (m *Service) CountdownStarted() {
	m.countdownsStarted.Inc()
}

// CountdownFinished counts a countdown reaching zero.
func (m *Service) CountdownFinished() {
	m.countdownsDone.Inc()
}

// StopwatchStarted counts a stopwatch start.
func (m *Service) StopwatchStarted() {
	m.stopwatchStarts.Inc()
}

// StopwatchLapped counts a recorded lap.
func (m *Service) StopwatchLapped() {
	m.stopwatchLaps.Inc()
}

// RPCHandled counts a control API call.
func (m *Service) RPCHandled(method, code string) {
	m.rpcRequests.WithLabelValues(method, code).Inc()
}
