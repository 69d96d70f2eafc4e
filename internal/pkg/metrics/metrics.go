package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "http_requests_total",
			Help:      "Count of HTTP requests by method, route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "rental",
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by method and route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	bookingCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "booking_created_total",
			Help:      "Count of bookings created.",
		},
	)

	bookingTransitions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "rental",
			Name:      "booking_transition_total",
			Help:      "Count of booking status transitions by target status.",
		},
		[]string{"status"},
	)
)

// Register регистрирует метрики в глобальном реестре (идемпотентно)
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, httpDuration, bookingCreated, bookingTransitions)
	})
}

// ObserveHTTPRequest учитывает обработанный HTTP запрос
func ObserveHTTPRequest(method, route, status string, seconds float64) {
	httpRequests.WithLabelValues(method, route, status).Inc()
	httpDuration.WithLabelValues(method, route).Observe(seconds)
}

// IncBookingCreated учитывает созданное бронирование
func IncBookingCreated() {
	bookingCreated.Inc()
}

// IncBookingTransition учитывает переход бронирования в новый статус
func IncBookingTransition(status string) {
	bookingTransitions.WithLabelValues(status).Inc()
}
