package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/usecase/vehicle"
	"github.com/google/uuid"
)

// VehicleService определяет интерфейс для сервиса автопарка
type VehicleService interface {
	CreateVehicle(ctx context.Context, req *vehicle.CreateVehicleRequest) (*domain.Vehicle, error)
	GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)
	ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error)
	UpdateVehicle(ctx context.Context, id uuid.UUID, req *vehicle.UpdateVehicleRequest) (*domain.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uuid.UUID) error
}

// VehicleHandler обрабатывает запросы каталога и автопарка
type VehicleHandler struct {
	vehicleService VehicleService
	logger         logger.Logger
}

// NewVehicleHandler создает новый handler
func NewVehicleHandler(vehicleService VehicleService, logger logger.Logger) *VehicleHandler {
	return &VehicleHandler{
		vehicleService: vehicleService,
		logger:         logger,
	}
}

// ListVehicles возвращает каталог автомобилей
// GET /api/v1/vehicles
func (h *VehicleHandler) ListVehicles(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPagination(r)

	vehicles, err := h.vehicleService.ListVehicles(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list vehicles", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get vehicles")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    vehicles,
	})
}

// GetVehicleByID возвращает автомобиль по ID
// GET /api/v1/vehicles/{id}
func (h *VehicleHandler) GetVehicleByID(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	v, err := h.vehicleService.GetVehicleByID(r.Context(), vehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			respondError(w, http.StatusNotFound, "Vehicle not found")
			return
		}
		h.logger.Error("Failed to get vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get vehicle")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

// CreateVehicle добавляет автомобиль в автопарк (только администратор)
// POST /api/v1/vehicles
func (h *VehicleHandler) CreateVehicle(w http.ResponseWriter, r *http.Request) {
	var req vehicle.CreateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.vehicleService.CreateVehicle(r.Context(), &req)
	if err != nil {
		switch err {
		case domain.ErrVehicleAlreadyExists:
			respondError(w, http.StatusConflict, "Vehicle already exists")
		case domain.ErrInvalidVehicleData, domain.ErrInvalidVehicleType, domain.ErrInvalidRegistrationNumber:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to create vehicle", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to create vehicle")
		}
		return
	}

	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

// UpdateVehicle обновляет карточку автомобиля (только администратор)
// PUT /api/v1/vehicles/{id}
func (h *VehicleHandler) UpdateVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	var req vehicle.UpdateVehicleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	v, err := h.vehicleService.UpdateVehicle(r.Context(), vehicleID, &req)
	if err != nil {
		switch err {
		case domain.ErrVehicleNotFound:
			respondError(w, http.StatusNotFound, "Vehicle not found")
		case domain.ErrInvalidVehicleData, domain.ErrInvalidVehicleType, domain.ErrInvalidRegistrationNumber:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update vehicle", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update vehicle")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    v,
	})
}

// DeleteVehicle удаляет автомобиль из автопарка (только администратор)
// DELETE /api/v1/vehicles/{id}
func (h *VehicleHandler) DeleteVehicle(w http.ResponseWriter, r *http.Request) {
	vehicleID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.DeleteVehicle(r.Context(), vehicleID); err != nil {
		switch err {
		case domain.ErrVehicleNotFound:
			respondError(w, http.StatusNotFound, "Vehicle not found")
		case domain.ErrVehicleUnavailable:
			respondError(w, http.StatusConflict, "Cannot delete booked vehicle")
		default:
			h.logger.Error("Failed to delete vehicle", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to delete vehicle")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "Vehicle deleted",
	})
}
