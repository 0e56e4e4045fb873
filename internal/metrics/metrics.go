package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "storefront"

// Metrics — счётчики витрины и HTTP-слоя в собственном реестре.
type Metrics struct {
	registry *prometheus.Registry

	sessionsStarted prometheus.Counter
	sessionsEvicted prometheus.Counter
	activeSessions  prometheus.Gauge
	cartItems       *prometheus.CounterVec
	catalogLoads    *prometheus.CounterVec
	catalogImported prometheus.Counter

	httpRequests *prometheus.CounterVec
	httpDuration *prometheus.HistogramVec
}

func New() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,
		sessionsStarted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_started_total",
			Help:      "Total number of storefront sessions started",
		}),
		sessionsEvicted: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "sessions_evicted_total",
			Help:      "Total number of idle sessions evicted",
		}),
		activeSessions: factory.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "sessions_active",
			Help:      "Number of live sessions",
		}),
		cartItems: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_items_added_total",
			Help:      "Total number of items added to carts",
		}, []string{"currency"}),
		catalogLoads: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_loads_total",
			Help:      "Catalog loads by source",
		}, []string{"source"}),
		catalogImported: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "catalog_imported_products_total",
			Help:      "Products inserted or updated by catalog import",
		}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		httpDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_ms",
			Help:    "Duration of HTTP requests in ms",
			Buckets: []float64{5, 10, 25, 50, 100, 200, 400, 800, 1600},
		}, []string{"method", "path"}),
	}
}

func (m *Metrics) SessionStarted() {
	m.sessionsStarted.Inc()
	m.activeSessions.Inc()
}

func (m *Metrics) SessionsEvicted(n int) {
	m.sessionsEvicted.Add(float64(n))
	m.activeSessions.Sub(float64(n))
}

func (m *Metrics) CartItemAdded(currency string) {
	m.cartItems.WithLabelValues(currency).Inc()
}

func (m *Metrics) CatalogLoaded(source string) {
	m.catalogLoads.WithLabelValues(source).Inc()
}

func (m *Metrics) CatalogImported(n int) {
	m.catalogImported.Add(float64(n))
}

// ObserveHTTP учитывает один обработанный HTTP-запрос.
func (m *Metrics) ObserveHTTP(method, path string, status int, duration time.Duration) {
	m.httpRequests.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, path).Observe(float64(duration.Milliseconds()))
}

// Handler отдаёт метрики в формате Prometheus.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

var _ usecase.MetricsInfra = (*Metrics)(nil)
