package domain

import (
	"time"

	"github.com/google/uuid"
)

// UserRole представляет роль пользователя в системе
type UserRole string

const (
	RoleAdmin    UserRole = "admin"    // Администратор автопарка
	RoleCustomer UserRole = "customer" // Клиент (арендатор)
)

// User - пользователь сервиса аренды
// Клиент создает бронирования, администратор управляет автопарком
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Email        string     `json:"email"`
	PasswordHash string     `json:"-"` // Никогда не возвращаем в JSON
	Phone        string     `json:"phone,omitempty"`
	Role         UserRole   `json:"role"`
	IsActive     bool       `json:"is_active"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// IsAdmin проверяет, является ли пользователь администратором
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// Validate проверяет корректность данных пользователя
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrInvalidEmail
	}
	if u.Name == "" {
		return ErrInvalidUserData
	}
	if u.Role != RoleAdmin && u.Role != RoleCustomer {
		return ErrInvalidRole
	}
	return nil
}
