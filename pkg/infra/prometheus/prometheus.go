package prometheus

import (
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var registry = prometheus.NewRegistry()

var registerer = prometheus.WrapRegistererWith(prometheus.Labels{"service": "teachme"}, registry)

var (
	// milliseconds
	latencyBuckets = []float64{
		5, 10, 25,
		50, 100, 250,
		500, 1000, 2500,
		5000, 10000,
	}

	HTTPRequestTotal = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "teachme_http_requests_total",
			Help: "Total number of HTTP requests processed",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestLatency = promauto.With(registerer).NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "teachme_http_latency_ms",
			Help:    "HTTP request latency in milliseconds",
			Buckets: latencyBuckets,
		},
		[]string{"method", "route"},
	)

	SessionsCreated = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "teachme_sessions_created_total",
			Help: "Sessions created from accepted offers",
		},
	)

	ReadySignals = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "teachme_ready_signals_total",
			Help: "Readiness signals by role",
		},
		[]string{"role"},
	)

	SessionsActivated = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "teachme_sessions_activated_total",
			Help: "Sessions whose chat became active",
		},
	)

	MessagesAppended = promauto.With(registerer).NewCounter(
		prometheus.CounterOpts{
			Name: "teachme_messages_appended_total",
			Help: "Messages persisted",
		},
	)

	RelayDeliveries = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "teachme_relay_deliveries_total",
			Help: "Relay deliveries by result (delivered, dropped, remote_failed)",
		},
		[]string{"result"},
	)

	RelayConnections = promauto.With(registerer).NewGauge(
		prometheus.GaugeOpts{
			Name: "teachme_relay_connections",
			Help: "Open relay websocket connections",
		},
	)

	TelemetryExports = promauto.With(registerer).NewCounterVec(
		prometheus.CounterOpts{
			Name: "teachme_lifecycle_exports_total",
			Help: "Lifecycle events handed to the exporter by result",
		},
		[]string{"result"},
	)
)

const (
	DeliveryDelivered    = "delivered"
	DeliveryDropped      = "dropped"
	DeliveryRemoteFailed = "remote_failed"
)

type MetricsConfig struct {
	EnableLatency bool
	EnableRelay   bool
}

var (
	Config   MetricsConfig
	initOnce sync.Once
)

func Initialize(cfg MetricsConfig) {
	Config = cfg
	initOnce.Do(func() {
		registry.MustRegister(
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
			collectors.NewGoCollector(),
		)
		prometheus.DefaultRegisterer = registry
		prometheus.DefaultGatherer = registry
	})
}

// Handler exposes the private registry.
func Handler() http.Handler {
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func Gatherer() prometheus.Gatherer {
	return registry
}
