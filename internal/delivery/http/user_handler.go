package http

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/frontandrew/rental/internal/delivery/http/middleware"
	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/usecase/user"
	"github.com/google/uuid"
)

// UserService определяет интерфейс для сервиса пользователей
type UserService interface {
	GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor domain.Actor, id uuid.UUID, req *user.UpdateUserRequest) (*domain.User, error)
	DeleteUser(ctx context.Context, actor domain.Actor, id uuid.UUID) error
}

// UserHandler обрабатывает запросы управления пользователями
type UserHandler struct {
	userService UserService
	logger      logger.Logger
}

// NewUserHandler создает новый handler
func NewUserHandler(userService UserService, logger logger.Logger) *UserHandler {
	return &UserHandler{
		userService: userService,
		logger:      logger,
	}
}

// ListUsers возвращает список пользователей (только администратор)
// GET /api/v1/users
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	limit, offset := getPagination(r)

	users, err := h.userService.ListUsers(r.Context(), limit, offset)
	if err != nil {
		h.logger.Error("Failed to list users", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get users")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    users,
	})
}

// GetUserByID возвращает пользователя по ID (только администратор)
// GET /api/v1/users/{id}
func (h *UserHandler) GetUserByID(w http.ResponseWriter, r *http.Request) {
	userID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	u, err := h.userService.GetUserByID(r.Context(), userID)
	if err != nil {
		if err == domain.ErrUserNotFound {
			respondError(w, http.StatusNotFound, "User not found")
			return
		}
		h.logger.Error("Failed to get user", map[string]interface{}{
			"error": err.Error(),
		})
		respondError(w, http.StatusInternalServerError, "Failed to get user")
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    u,
	})
}

// UpdateUser обновляет профиль пользователя
// PUT /api/v1/users/{id}
func (h *UserHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	var req user.UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	u, err := h.userService.UpdateUser(r.Context(), actor, userID, &req)
	if err != nil {
		switch err {
		case domain.ErrUserNotFound:
			respondError(w, http.StatusNotFound, "User not found")
		case domain.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access denied")
		case domain.ErrInvalidRole, domain.ErrInvalidUserData, domain.ErrInvalidEmail:
			respondError(w, http.StatusBadRequest, err.Error())
		default:
			h.logger.Error("Failed to update user", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to update user")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"data":    u,
	})
}

// DeleteUser деактивирует пользователя (только администратор)
// DELETE /api/v1/users/{id}
func (h *UserHandler) DeleteUser(w http.ResponseWriter, r *http.Request) {
	actor, ok := middleware.GetActor(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "Unauthorized")
		return
	}

	userID, err := getUUIDParam(r, "id")
	if err != nil {
		respondError(w, http.StatusBadRequest, "Invalid user ID")
		return
	}

	if err := h.userService.DeleteUser(r.Context(), actor, userID); err != nil {
		switch err {
		case domain.ErrUserNotFound:
			respondError(w, http.StatusNotFound, "User not found")
		case domain.ErrForbidden:
			respondError(w, http.StatusForbidden, "Access denied")
		default:
			h.logger.Error("Failed to delete user", map[string]interface{}{
				"error": err.Error(),
			})
			respondError(w, http.StatusInternalServerError, "Failed to delete user")
		}
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"success": true,
		"message": "User deactivated",
	})
}
