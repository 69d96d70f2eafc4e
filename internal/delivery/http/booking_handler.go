package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/rental/internal/delivery/http/middleware"
	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/usecase/booking"
	"github.com/google/uuid"
)

// BookingService определяет интерфейс для сервиса бронирований
type BookingService interface {
	CreateBooking(ctx context.Context, actor domain.Actor, req *booking.CreateBookingRequest) (*domain.Booking, error)
	UpdateStatus(ctx context.Context, actor domain.Actor, bookingID uuid.UUID, target domain.BookingStatus) (*domain.Booking, error)
	GetBookingByID(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*domain.Booking, error)
	ListBookings(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Booking, error)
}

// UpdateBookingStatusRequest - запрос на смену статуса бронирования
type UpdateBookingStatusRequest struct {
	Status domain.BookingStatus `json:"status" validate:"required"`
}

// BookingHandler обрабатывает запросы бронирований
type BookingHandler struct {
	bookingService BookingService
	logger         logger.Logger
}

// NewBookingHandler создает новый handler
func NewBookingHandler(bookingService BookingService, logger logger.Logger) *BookingHandler {
	return &BookingHandler{
		bookingService: bookingService,
		logger:         logger,
	}
}

// CreateBooking создает бронирование для текущего пользователя
// POST /api/v1/bookings
func (h *BookingHandler) CreateBooking(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	var req booking.CreateBookingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.bookingService.CreateBooking(r.Context(), actor, &req)
	if err != nil {
		switch err {
		case domain.ErrVehicleNotFound:
			respondError(w, http.StatusNotFound, "Vehicle not found")
		case domain.ErrVehicleUnavailable:
			respondError(w, http.StatusBadRequest, "Vehicle is not available for booking")
		case domain.ErrInvalidDateRange:
			respondError(w, http.StatusBadRequest, "Invalid rental date range")
		default:
			h.logger.Error("Failed to create booking", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create booking")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    b,
	})
}

// ListBookings возвращает бронирования: клиенту - свои, администратору - все
// GET /api/v1/bookings
func (h *BookingHandler) ListBookings(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	limit, offset := getPagination(r)

	bookings, err := h.bookingService.ListBookings(r.Context(), actor, limit, offset)
	if err != nil {
		h.logger.Error("Failed to list bookings", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get bookings")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    bookings,
	})
}

// GetBookingByID возвращает бронирование по ID
// GET /api/v1/bookings/{id}
func (h *BookingHandler) GetBookingByID(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	b, err := h.bookingService.GetBookingByID(r.Context(), actor, bookingID)
	if err != nil {
		switch err {
		case domain.ErrBookingNotFound:
			respondError(w, http.StatusNotFound, "Booking not found")
		case domain.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access denied")
		default:
			h.logger.Error("Failed to get booking", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to get booking")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    b,
	})
}

// UpdateStatus переводит бронирование в cancelled или returned
// PUT /api/v1/bookings/{id}/status
func (h *BookingHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	bookingID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid booking ID")
		return
	}

	var req UpdateBookingStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	b, err := h.bookingService.UpdateStatus(r.Context(), actor, bookingID, req.Status)
	if err != nil {
		switch err {
		case domain.ErrBookingNotFound:
			respondError(w, http.StatusNotFound, "Booking not found")
		case domain.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access denied")
		case domain.ErrInvalidBookingStatus:
			respondError(w, http.StatusBadRequest, "Invalid target status")
		case domain.ErrBookingNotActive:
			respondError(w, http.StatusConflict, "Booking is not active")
		case domain.ErrCancellationWindowClosed:
			respondError(w, http.StatusBadRequest, "Cancellation window is closed")
		default:
			h.logger.Error("Failed to update booking status", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update booking status")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    b,
	})
}
