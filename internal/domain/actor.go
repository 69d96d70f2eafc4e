package domain

import "github.com/google/uuid"

// Actor - аутентифицированный инициатор запроса.
// Правила переходов работают с чистыми предикатами над актором,
// без обращения к хранилищу пользователей.
type Actor struct {
	ID   uuid.UUID
	Role UserRole
}

// IsAdmin проверяет, обладает ли актор правами администратора
func IsAdmin(a Actor) bool {
	return a.Role == RoleAdmin
}

// IsOwner проверяет, принадлежит ли бронирование актору
func IsOwner(a Actor, b *Booking) bool {
	return a.ID == b.CustomerID
}
