package user

import (
	"context"
	"fmt"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// UpdateUserRequest - запрос на обновление профиля пользователя
type UpdateUserRequest struct {
	Name  *string          `json:"name,omitempty"`
	Phone *string          `json:"phone,omitempty"`
	Role  *domain.UserRole `json:"role,omitempty"`
}

// Service содержит бизнес-логику работы с пользователями
type Service struct {
	userRepo repository.UserRepository
	logger   logger.Logger
}

// NewService создает новый экземпляр UserService
func NewService(userRepo repository.UserRepository, logger logger.Logger) *Service {
	return &Service{
		userRepo: userRepo,
		logger:   logger,
	}
}

// GetUserByID возвращает пользователя по ID
func (s *Service) GetUserByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// ListUsers возвращает список пользователей (только для администратора)
func (s *Service) ListUsers(ctx context.Context, limit, offset int) ([]*domain.User, error) {
	return s.userRepo.List(ctx, limit, offset)
}

// UpdateUser обновляет профиль пользователя.
// Пользователь редактирует свой профиль, администратор - любой.
// Сменить роль может только администратор.
func (s *Service) UpdateUser(ctx context.Context, actor domain.Actor, id uuid.UUID, req *UpdateUserRequest) (*domain.User, error) {
	if !domain.IsAdmin(actor) && actor.ID != id {
		return nil, domain.ErrForbidden
	}

	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		// Клиент не может повысить себя до администратора
		if !domain.IsAdmin(actor) {
			return nil, domain.ErrForbidden
		}
		user.Role = *req.Role
	}

	// Валидируем данные
	if err := user.Validate(); err != nil {
		return nil, err
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		s.logger.Error("Failed to update user", map[string]interface{}{
			"user_id": id,
			"error":   err.Error(),
		})
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	s.logger.Info("User updated", map[string]interface{}{
		"user_id": user.ID,
	})

	return user, nil
}

// DeleteUser деактивирует пользователя (мягкое удаление, только для администратора)
func (s *Service) DeleteUser(ctx context.Context, actor domain.Actor, id uuid.UUID) error {
	if !domain.IsAdmin(actor) {
		return domain.ErrForbidden
	}

	if err := s.userRepo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("User deactivated", map[string]interface{}{
		"user_id": id,
	})

	return nil
}
