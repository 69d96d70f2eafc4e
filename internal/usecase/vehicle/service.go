package vehicle

import (
	"context"
	"fmt"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// CreateVehicleRequest - запрос на добавление автомобиля в автопарк
type CreateVehicleRequest struct {
	Name               string             `json:"name" validate:"required"`
	Type               domain.VehicleType `json:"type" validate:"required"`
	RegistrationNumber string             `json:"registration_number" validate:"required"`
	ImageURL           string             `json:"image_url,omitempty"`
	DailyRentPrice     int64              `json:"daily_rent_price" validate:"required,gt=0"`
}

// UpdateVehicleRequest - запрос на обновление карточки автомобиля.
// Статус доступности через этот запрос не меняется: им управляет
// жизненный цикл бронирований.
type UpdateVehicleRequest struct {
	Name           *string             `json:"name,omitempty"`
	Type           *domain.VehicleType `json:"type,omitempty"`
	ImageURL       *string             `json:"image_url,omitempty"`
	DailyRentPrice *int64              `json:"daily_rent_price,omitempty"`
}

// Service содержит бизнес-логику управления автопарком
type Service struct {
	vehicleRepo repository.VehicleRepository
	logger      logger.Logger
}

// NewService создает новый экземпляр VehicleService
func NewService(vehicleRepo repository.VehicleRepository, logger logger.Logger) *Service {
	return &Service{
		vehicleRepo: vehicleRepo,
		logger:      logger,
	}
}

// CreateVehicle добавляет новый автомобиль в автопарк.
// Только для администратора (проверка роли выполняется на уровне delivery).
func (s *Service) CreateVehicle(ctx context.Context, req *CreateVehicleRequest) (*domain.Vehicle, error) {
	s.logger.Info("Creating new vehicle", map[string]interface{}{
		"name":                req.Name,
		"registration_number": req.RegistrationNumber,
	})

	regNumber := domain.NormalizeRegistrationNumber(req.RegistrationNumber)

	// Проверяем, что автомобиль с таким госномером еще не зарегистрирован
	existingVehicle, err := s.vehicleRepo.GetByRegistrationNumber(ctx, regNumber)
	if err != nil && err != domain.ErrVehicleNotFound {
		return nil, fmt.Errorf("failed to check existing vehicle: %w", err)
	}

	if existingVehicle != nil {
		s.logger.Warn("Vehicle already exists", map[string]interface{}{
			"registration_number": regNumber,
		})
		return nil, domain.ErrVehicleAlreadyExists
	}

	// Новый автомобиль сразу доступен для аренды
	vehicle := &domain.Vehicle{
		Name:               req.Name,
		Type:               req.Type,
		RegistrationNumber: regNumber,
		ImageURL:           req.ImageURL,
		DailyRentPrice:     req.DailyRentPrice,
		AvailabilityStatus: domain.VehicleAvailable,
	}

	// Валидируем данные
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	// Сохраняем в БД
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		s.logger.Error("Failed to create vehicle", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	s.logger.Info("Vehicle created successfully", map[string]interface{}{
		"vehicle_id": vehicle.ID,
	})

	return vehicle, nil
}

// GetVehicleByID возвращает автомобиль по ID
func (s *Service) GetVehicleByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	return s.vehicleRepo.GetByID(ctx, id)
}

// ListVehicles возвращает каталог автомобилей
func (s *Service) ListVehicles(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	return s.vehicleRepo.List(ctx, limit, offset)
}

// UpdateVehicle обновляет карточку автомобиля
func (s *Service) UpdateVehicle(ctx context.Context, id uuid.UUID, req *UpdateVehicleRequest) (*domain.Vehicle, error) {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		vehicle.Name = *req.Name
	}
	if req.Type != nil {
		vehicle.Type = *req.Type
	}
	if req.ImageURL != nil {
		vehicle.ImageURL = *req.ImageURL
	}
	if req.DailyRentPrice != nil {
		vehicle.DailyRentPrice = *req.DailyRentPrice
	}

	// Валидируем данные
	if err := vehicle.Validate(); err != nil {
		return nil, err
	}

	if err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		s.logger.Error("Failed to update vehicle", map[string]interface{}{
			"vehicle_id": id,
			"error":      err.Error(),
		})
		return nil, err
	}

	return vehicle, nil
}

// DeleteVehicle удаляет автомобиль из автопарка.
// Забронированный автомобиль удалить нельзя.
func (s *Service) DeleteVehicle(ctx context.Context, id uuid.UUID) error {
	vehicle, err := s.vehicleRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !vehicle.IsAvailable() {
		s.logger.Warn("Cannot delete booked vehicle", map[string]interface{}{
			"vehicle_id": id,
		})
		return domain.ErrVehicleUnavailable
	}

	return s.vehicleRepo.Delete(ctx, id)
}
