package http

import (
	"net/http"

	"github.com/frontandrew/rental/internal/delivery/http/middleware"
	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/config"
	"github.com/frontandrew/rental/internal/pkg/jwt"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Router содержит все зависимости для HTTP роутера
type Router struct {
	authHandler    *AuthHandler
	vehicleHandler *VehicleHandler
	bookingHandler *BookingHandler
	userHandler    *UserHandler
	tokenService   *jwt.TokenService
	config         *config.Config
	logger         logger.Logger
}

// NewRouter создает новый HTTP router
func NewRouter(
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	bookingHandler *BookingHandler,
	userHandler *UserHandler,
	tokenService *jwt.TokenService,
	config *config.Config,
	logger logger.Logger,
) *Router {
	return &Router{
		authHandler:    authHandler,
		vehicleHandler: vehicleHandler,
		bookingHandler: bookingHandler,
		userHandler:    userHandler,
		tokenService:   tokenService,
		config:         config,
		logger:         logger,
	}
}

// Setup настраивает все маршруты
func (rt *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Глобальные middleware
	r.Use(chiMiddleware.RequestID)
	r.Use(middleware.RecoveryMiddleware(rt.logger))
	r.Use(middleware.LoggingMiddleware(rt.logger))
	r.Use(middleware.MetricsMiddleware())
	r.Use(middleware.CORSMiddleware(middleware.CORSConfig{
		AllowedOrigins: rt.config.CORS.AllowedOrigins,
		AllowedMethods: rt.config.CORS.AllowedMethods,
		AllowedHeaders: rt.config.CORS.AllowedHeaders,
	}))

	// Health check endpoint (публичный)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{
			"status": "healthy",
		})
	})

	// Prometheus метрики
	r.Handle("/metrics", promhttp.Handler())

	// API v1 routes
	r.Route("/api/v1", func(r chi.Router) {
		// Public routes (без аутентификации)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", rt.authHandler.Register)
			r.Post("/login", rt.authHandler.Login)
			r.Post("/refresh", rt.authHandler.RefreshToken)
		})

		// Каталог автомобилей открыт без аутентификации
		r.Get("/vehicles", rt.vehicleHandler.ListVehicles)
		r.Get("/vehicles/{id}", rt.vehicleHandler.GetVehicleByID)

		// Protected routes (требуют аутентификации)
		r.Group(func(r chi.Router) {
			r.Use(middleware.AuthMiddleware(rt.tokenService))

			// Current user endpoints
			r.Get("/auth/me", rt.authHandler.GetMe)
			r.Post("/auth/logout", rt.authHandler.Logout)

			// Booking endpoints
			r.Route("/bookings", func(r chi.Router) {
				r.Post("/", rt.bookingHandler.CreateBooking)
				r.Get("/", rt.bookingHandler.ListBookings)
				r.Get("/{id}", rt.bookingHandler.GetBookingByID)
				r.Put("/{id}/status", rt.bookingHandler.UpdateStatus)
			})

			// Fleet management (только администратор)
			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(domain.RoleAdmin))
				r.Post("/vehicles", rt.vehicleHandler.CreateVehicle)
				r.Put("/vehicles/{id}", rt.vehicleHandler.UpdateVehicle)
				r.Delete("/vehicles/{id}", rt.vehicleHandler.DeleteVehicle)
			})

			// User management endpoints
			r.Route("/users", func(r chi.Router) {
				r.Put("/{id}", rt.userHandler.UpdateUser)

				// Admin only endpoints
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireRole(domain.RoleAdmin))
					r.Get("/", rt.userHandler.ListUsers)
					r.Get("/{id}", rt.userHandler.GetUserByID)
					r.Delete("/{id}", rt.userHandler.DeleteUser)
				})
			})
		})
	})

	return r
}
