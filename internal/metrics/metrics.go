package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Poll outcomes used as the "outcome" label.
const (
	OutcomePublished    = "published"
	OutcomeFetchFailed  = "fetch_failed"
	OutcomeDecodeFailed = "decode_failed"
)

// Metrics represents the collection of all Prometheus metrics
type Metrics struct {
	Registry *prometheus.Registry

	// Meater Cloud API traffic
	APIRequestsTotal   *prometheus.CounterVec
	APIRequestDuration *prometheus.HistogramVec

	// Poll loop
	PollsTotal        *prometheus.CounterVec
	LastPublishTime   prometheus.Gauge
	InternalTempF     prometheus.Gauge
	AmbientTempF      prometheus.Gauge
	TargetTempF       prometheus.Gauge
	InternalTempBand  prometheus.Gauge
	HistoryWrites     *prometheus.CounterVec
	NotificationsSent *prometheus.CounterVec
}

// NewMetrics creates all collectors on a private registry.
func NewMetrics() *Metrics {
	m := &Metrics{Registry: prometheus.NewRegistry()}

	m.APIRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meater_api_requests_total",
			Help: "Total number of requests sent to the Meater Cloud API",
		},
		[]string{"code", "method"},
	)

	m.APIRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meater_api_request_duration_seconds",
			Help:    "Duration of Meater Cloud API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method"},
	)

	m.PollsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meater_polls_total",
			Help: "Poll cycles by outcome",
		},
		[]string{"outcome"},
	)

	m.LastPublishTime = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meater_last_publish_timestamp_seconds",
			Help: "Unix time of the last published reading",
		},
	)

	m.InternalTempF = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meater_internal_temperature_fahrenheit",
			Help: "Last internal probe temperature",
		},
	)

	m.AmbientTempF = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meater_ambient_temperature_fahrenheit",
			Help: "Last ambient probe temperature",
		},
	)

	m.TargetTempF = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meater_target_temperature_fahrenheit",
			Help: "Target temperature of the active cook (0 when idle)",
		},
	)

	m.InternalTempBand = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "meater_internal_temperature_band",
			Help: "Colour band of the internal temperature (0-6)",
		},
	)

	m.HistoryWrites = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meater_history_writes_total",
			Help: "Readings written to the history store",
		},
		[]string{"result"},
	)

	m.NotificationsSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meater_notifications_total",
			Help: "Cook notifications sent",
		},
		[]string{"result"},
	)

	m.Registry.MustRegister(
		m.APIRequestsTotal,
		m.APIRequestDuration,
		m.PollsTotal,
		m.LastPublishTime,
		m.InternalTempF,
		m.AmbientTempF,
		m.TargetTempF,
		m.InternalTempBand,
		m.HistoryWrites,
		m.NotificationsSent,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	return m
}

// InstrumentTransport wraps an HTTP client transport so every API call is
// counted and timed.
func (m *Metrics) InstrumentTransport(next http.RoundTripper) http.RoundTripper {
	if next == nil {
		next = http.DefaultTransport
	}
	return promhttp.InstrumentRoundTripperCounter(m.APIRequestsTotal,
		promhttp.InstrumentRoundTripperDuration(m.APIRequestDuration, next),
	)
}

// ObservePoll records the outcome of one poll cycle.
func (m *Metrics) ObservePoll(outcome string) {
	m.PollsTotal.WithLabelValues(outcome).Inc()
}

// ObserveReading records the temperatures of a published reading.
func (m *Metrics) ObserveReading(internalF, ambientF, targetF float64, band int, at time.Time) {
	m.InternalTempF.Set(internalF)
	m.AmbientTempF.Set(ambientF)
	m.TargetTempF.Set(targetF)
	m.InternalTempBand.Set(float64(band))
	m.LastPublishTime.Set(float64(at.Unix()))
}

// ObserveResult increments a result-labelled counter with "ok" or "error".
func ObserveResult(c *prometheus.CounterVec, err error) {
	if c == nil {
		return
	}
	if err != nil {
		c.WithLabelValues("error").Inc()
		return
	}
	c.WithLabelValues("ok").Inc()
}

// Handler returns the Prometheus HTTP handler for this registry.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{})
}
