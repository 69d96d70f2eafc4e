package repository

import (
	"context"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/google/uuid"
)

// UserRepository определяет методы для работы с пользователями
type UserRepository interface {
	// Create создает нового пользователя
	Create(ctx context.Context, user *domain.User) error

	// GetByID возвращает пользователя по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail возвращает пользователя по email
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// Update обновляет данные пользователя
	Update(ctx context.Context, user *domain.User) error

	// Delete удаляет пользователя (мягкое удаление - is_active = false)
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает список пользователей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.User, error)

	// UpdateLastLogin обновляет время последнего входа
	UpdateLastLogin(ctx context.Context, id uuid.UUID) error
}

// VehicleRepository определяет методы для работы с автопарком
type VehicleRepository interface {
	// Create добавляет автомобиль в автопарк
	Create(ctx context.Context, vehicle *domain.Vehicle) error

	// GetByID возвращает автомобиль по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error)

	// GetByRegistrationNumber возвращает автомобиль по госномеру
	GetByRegistrationNumber(ctx context.Context, number string) (*domain.Vehicle, error)

	// Update обновляет данные автомобиля
	Update(ctx context.Context, vehicle *domain.Vehicle) error

	// UpdateAvailability меняет статус доступности автомобиля
	// КЛЮЧЕВОЙ МЕТОД для переходов бронирований
	UpdateAvailability(ctx context.Context, id uuid.UUID, status domain.AvailabilityStatus) error

	// Delete удаляет автомобиль из автопарка
	Delete(ctx context.Context, id uuid.UUID) error

	// List возвращает каталог автомобилей с пагинацией
	List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error)
}

// BookingFilter - необязательные условия выборки бронирований
type BookingFilter struct {
	CustomerID *uuid.UUID
	VehicleID  *uuid.UUID
	Status     *domain.BookingStatus
}

// BookingRepository определяет методы для работы с бронированиями
type BookingRepository interface {
	// Create создает новое бронирование
	Create(ctx context.Context, booking *domain.Booking) error

	// GetByID возвращает бронирование по ID
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error)

	// UpdateStatus переводит бронирование в новый статус
	UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error

	// List возвращает бронирования по фильтру с пагинацией
	List(ctx context.Context, filter BookingFilter, limit, offset int) ([]*domain.Booking, error)
}

// RefreshTokenRepository определяет методы для работы с refresh токенами
type RefreshTokenRepository interface {
	// Create сохраняет новый refresh token
	Create(ctx context.Context, token *domain.RefreshToken) error

	// GetByTokenHash возвращает refresh token по хешу
	GetByTokenHash(ctx context.Context, tokenHash string) (*domain.RefreshToken, error)

	// Revoke отзывает refresh token
	Revoke(ctx context.Context, tokenHash string) error

	// RevokeAllUserTokens отзывает все токены пользователя
	RevokeAllUserTokens(ctx context.Context, userID uuid.UUID) error

	// DeleteExpired удаляет истекшие токены
	DeleteExpired(ctx context.Context) error
}

// TxManager выполняет функцию в границах одной единицы работы.
// Переходы бронирований пишут две строки (booking + vehicle); менеджер
// дает шов для атомарности, не меняя саму бизнес-логику.
type TxManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// nopTxManager выполняет функцию без транзакции: каждый запрос
// уходит в пул отдельно. Используется в unit-тестах движка правил.
type nopTxManager struct{}

// NewNopTxManager создает TxManager без транзакционной обертки
func NewNopTxManager() TxManager {
	return nopTxManager{}
}

func (nopTxManager) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}
