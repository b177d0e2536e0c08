// Package metrics exposes Prometheus collectors for evaluation scoring,
// recognition selection, the outbox pipeline and HTTP traffic.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Result labels used by the evaluation counter.
const (
	ResultCreated    = "created"
	ResultDuplicate  = "duplicate"
	ResultRejected   = "rejected"
	ResultIncomplete = "incomplete"
	ResultConflict   = "conflict"
)

// Manager owns a registry and the collectors registered on it.
type Manager struct {
	namespace        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	evaluationsSubmitted  *prometheus.CounterVec
	recognitionRecomputes *prometheus.CounterVec
	winnersSelected       *prometheus.CounterVec
	outboxPublished       prometheus.Counter
	outboxFailed          prometheus.Counter
	notificationsSent     prometheus.Counter
	rubricCriteriaMissing prometheus.Gauge
	httpRequests          *prometheus.CounterVec
	httpRequestDuration   *prometheus.HistogramVec
}

var defaultManager = NewManager() //nolint:gochecknoglobals // process-wide collectors

// NewManager creates a Manager with its own registry unless WithRegistry is given.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "hlr",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initialize()
	return m
}

func (m *Manager) initialize() {
	auto := promauto.With(m.registry)

	m.evaluationsSubmitted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "evaluation",
		Name:      "submitted_total",
		Help:      "Evaluation submissions by outcome",
	}, []string{"framework", "result"})

	m.recognitionRecomputes = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "recognition",
		Name:      "recomputations_total",
		Help:      "Winner recomputations by period kind",
	}, []string{"kind"})

	m.winnersSelected = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "recognition",
		Name:      "winners_selected_total",
		Help:      "Winner snapshots written by framework",
	}, []string{"framework"})

	m.outboxPublished = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "outbox",
		Name:      "published_total",
		Help:      "Outbox events published to Kafka",
	})

	m.outboxFailed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "outbox",
		Name:      "failed_total",
		Help:      "Outbox events that failed to publish",
	})

	m.notificationsSent = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "notification",
		Name:      "sent_total",
		Help:      "Recognition emails delivered",
	})

	m.rubricCriteriaMissing = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: "rubric",
		Name:      "criteria_missing",
		Help:      "Position x pillar x level combinations without criteria text",
	})

	m.httpRequests = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests by route, method and status",
	}, []string{"route", "method", "status"})

	m.httpRequestDuration = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency",
		Buckets:   m.histogramBuckets,
	}, []string{"route", "method"})
}

// Registry returns the underlying registry.
func (m *Manager) Registry() *prometheus.Registry { return m.registry }

// Handler serves the registry in the Prometheus text format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

func (m *Manager) RecordEvaluation(framework, result string) {
	m.evaluationsSubmitted.WithLabelValues(framework, result).Inc()
}

func (m *Manager) RecordRecompute(kind string) {
	m.recognitionRecomputes.WithLabelValues(kind).Inc()
}

func (m *Manager) RecordWinner(framework string) {
	m.winnersSelected.WithLabelValues(framework).Inc()
}

func (m *Manager) RecordOutboxPublished() { m.outboxPublished.Inc() }

func (m *Manager) RecordOutboxFailed() { m.outboxFailed.Inc() }

func (m *Manager) RecordNotificationSent() { m.notificationsSent.Inc() }

func (m *Manager) SetRubricCriteriaMissing(n int) { m.rubricCriteriaMissing.Set(float64(n)) }

func (m *Manager) RecordHTTPRequest(route, method string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(route, method, strconv.Itoa(status)).Inc()
	m.httpRequestDuration.WithLabelValues(route, method).Observe(elapsed.Seconds())
}

// Default returns the process-wide manager.
func Default() *Manager { return defaultManager }
