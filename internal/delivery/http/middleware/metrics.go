package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/frontandrew/rental/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
)

// MetricsMiddleware собирает метрики HTTP запросов.
// Метка route использует шаблон chi (например /api/v1/bookings/{id}/status),
// а не сырой путь, чтобы не раздувать кардинальность.
func MetricsMiddleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			rw := &responseWriter{
				ResponseWriter: w,
				statusCode:     http.StatusOK,
			}

			next.ServeHTTP(rw, r)

			route := chi.RouteContext(r.Context()).RoutePattern()
			if route == "" {
				route = "unknown"
			}

			metrics.ObserveHTTPRequest(r.Method, route, strconv.Itoa(rw.statusCode), time.Since(start).Seconds())
		})
	}
}
