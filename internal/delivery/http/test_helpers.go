package http

import (
	"context"
	"testing"

	"github.com/frontandrew/rental/internal/delivery/http/middleware"
	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/jwt"
	"github.com/google/uuid"
)

// CreateTestUser создает тестового пользователя
func CreateTestUser(id uuid.UUID, email string, role domain.UserRole) *domain.User {
	return &domain.User{
		ID:       id,
		Name:     "Test User",
		Email:    email,
		Phone:    "+7 999 999 99 99",
		Role:     role,
		IsActive: true,
	}
}

// CreateTestVehicle создает тестовый автомобиль
func CreateTestVehicle(id uuid.UUID, dailyRentPrice int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 id,
		Name:               "Toyota Camry 2024",
		Type:               domain.VehicleTypeCar,
		RegistrationNumber: "ABC-1234",
		DailyRentPrice:     dailyRentPrice,
		AvailabilityStatus: domain.VehicleAvailable,
	}
}

// CreateAuthContext создает контекст с claims аутентифицированного пользователя
func CreateAuthContext(t *testing.T, userID uuid.UUID, email string, role domain.UserRole) context.Context {
	t.Helper()

	claims := &jwt.Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
	}

	return context.WithValue(context.Background(), middleware.UserClaimsKey, claims)
}

// AssertSuccess проверяет успешный ответ API
func AssertSuccess(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || !success {
		t.Errorf("Expected success=true, got %v", response)
	}
}

// AssertError проверяет ошибочный ответ API
func AssertError(t *testing.T, response map[string]interface{}) {
	t.Helper()
	success, ok := response["success"].(bool)
	if !ok || success {
		t.Errorf("Expected success=false, got %v", response)
	}
}
