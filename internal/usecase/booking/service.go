package booking

import (
	"context"
	"fmt"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/pkg/metrics"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

// CreateBookingRequest - запрос на создание бронирования.
// Даты приходят валидированными на уровне delivery (start <= end),
// customer id берется из токена актора.
type CreateBookingRequest struct {
	VehicleID     uuid.UUID `json:"vehicle_id" validate:"required"`
	RentStartDate time.Time `json:"rent_start_date" validate:"required"`
	RentEndDate   time.Time `json:"rent_end_date" validate:"required"`
}

// TimeProvider отдает текущее время (подменяется в тестах)
type TimeProvider interface {
	Now() time.Time
}

// RealTimeProvider - системные часы
type RealTimeProvider struct{}

func (RealTimeProvider) Now() time.Time { return time.Now() }

// Service содержит бизнес-логику бронирований: расчет стоимости,
// создание и переходы статусов с побочным эффектом на доступность автомобиля
type Service struct {
	bookingRepo  repository.BookingRepository
	vehicleRepo  repository.VehicleRepository
	txManager    repository.TxManager
	timeProvider TimeProvider
	logger       logger.Logger
}

// NewService создает новый экземпляр BookingService
func NewService(
	bookingRepo repository.BookingRepository,
	vehicleRepo repository.VehicleRepository,
	txManager repository.TxManager,
	logger logger.Logger,
) *Service {
	return &Service{
		bookingRepo:  bookingRepo,
		vehicleRepo:  vehicleRepo,
		txManager:    txManager,
		timeProvider: RealTimeProvider{},
		logger:       logger,
	}
}

// WithTimeProvider подменяет источник времени (для тестов окна отмены)
func (s *Service) WithTimeProvider(tp TimeProvider) *Service {
	s.timeProvider = tp
	return s
}

// PriceBooking возвращает полную стоимость аренды автомобиля за диапазон дат
func (s *Service) PriceBooking(vehicle *domain.Vehicle, start, end time.Time) int64 {
	return domain.RentalPrice(vehicle.DailyRentPrice, start, end)
}

// CreateBooking создает бронирование для актора.
// Автомобиль должен быть в статусе available; проверка пересечений дат с другими
// бронированиями не выполняется - модель хранит единственный флаг доступности.
func (s *Service) CreateBooking(ctx context.Context, actor domain.Actor, req *CreateBookingRequest) (*domain.Booking, error) {
	s.logger.Info("Creating booking", map[string]interface{}{
		"customer_id": actor.ID,
		"vehicle_id":  req.VehicleID,
	})

	if req.RentEndDate.Before(req.RentStartDate) {
		return nil, domain.ErrInvalidDateRange
	}

	vehicle, err := s.vehicleRepo.GetByID(ctx, req.VehicleID)
	if err != nil {
		if err == domain.ErrVehicleNotFound {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("failed to get vehicle: %w", err)
	}

	if !vehicle.IsAvailable() {
		s.logger.Warn("Vehicle is not available for booking", map[string]interface{}{
			"vehicle_id": vehicle.ID,
			"status":     vehicle.AvailabilityStatus,
		})
		return nil, domain.ErrVehicleUnavailable
	}

	booking := &domain.Booking{
		CustomerID:    actor.ID,
		VehicleID:     vehicle.ID,
		RentStartDate: req.RentStartDate,
		RentEndDate:   req.RentEndDate,
		TotalPrice:    s.PriceBooking(vehicle, req.RentStartDate, req.RentEndDate),
		Status:        domain.BookingActive,
	}

	// Бронирование и статус автомобиля пишутся в границах одной единицы работы
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.Create(txCtx, booking); err != nil {
			return fmt.Errorf("failed to create booking: %w", err)
		}
		if err := s.vehicleRepo.UpdateAvailability(txCtx, vehicle.ID, domain.VehicleBooked); err != nil {
			return fmt.Errorf("failed to mark vehicle as booked: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to create booking", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, err
	}

	metrics.IncBookingCreated()

	s.logger.Info("Booking created successfully", map[string]interface{}{
		"booking_id":  booking.ID,
		"total_price": booking.TotalPrice,
	})

	return booking, nil
}

// UpdateStatus переводит бронирование в статус cancelled или returned.
// Правила:
//   - актор должен быть администратором или владельцем бронирования;
//   - returned доступен только администратору;
//   - владелец может отменить бронирование строго до даты начала аренды,
//     администратор - в любой момент;
//   - из терминальных статусов переходов нет.
//
// Побочный эффект успешного перехода: автомобиль снова available.
func (s *Service) UpdateStatus(ctx context.Context, actor domain.Actor, bookingID uuid.UUID, target domain.BookingStatus) (*domain.Booking, error) {
	if target != domain.BookingCancelled && target != domain.BookingReturned {
		return nil, domain.ErrInvalidBookingStatus
	}

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if err == domain.ErrBookingNotFound {
			return nil, domain.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	// Чужое бронирование недоступно до какой-либо логики статусов
	if !domain.IsAdmin(actor) && !domain.IsOwner(actor, booking) {
		return nil, domain.ErrForbidden
	}

	if !domain.CanTransition(booking.Status, target) {
		s.logger.Warn("Rejected transition of non-active booking", map[string]interface{}{
			"booking_id": booking.ID,
			"from":       booking.Status,
			"to":         target,
		})
		return nil, domain.ErrBookingNotActive
	}

	switch target {
	case domain.BookingReturned:
		// Прием возврата - операция администратора
		if !domain.IsAdmin(actor) {
			return nil, domain.ErrForbidden
		}
	case domain.BookingCancelled:
		if !domain.IsAdmin(actor) && !domain.CancellationWindowOpen(booking, s.timeProvider.Now()) {
			s.logger.Warn("Cancellation window closed", map[string]interface{}{
				"booking_id":      booking.ID,
				"rent_start_date": booking.RentStartDate,
			})
			return nil, domain.ErrCancellationWindowClosed
		}
	}

	// Статус бронирования и освобождение автомобиля - одна единица работы
	err = s.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := s.bookingRepo.UpdateStatus(txCtx, booking.ID, target); err != nil {
			return fmt.Errorf("failed to update booking status: %w", err)
		}
		if err := s.vehicleRepo.UpdateAvailability(txCtx, booking.VehicleID, domain.VehicleAvailable); err != nil {
			return fmt.Errorf("failed to release vehicle: %w", err)
		}
		return nil
	})
	if err != nil {
		s.logger.Error("Failed to update booking status", map[string]interface{}{
			"booking_id": booking.ID,
			"error":      err.Error(),
		})
		return nil, err
	}

	metrics.IncBookingTransition(string(target))

	s.logger.Info("Booking status updated", map[string]interface{}{
		"booking_id": booking.ID,
		"status":     target,
	})

	booking.Status = target
	return booking, nil
}

// GetBookingByID возвращает бронирование по ID.
// Клиент видит только свои бронирования, администратор - любые.
func (s *Service) GetBookingByID(ctx context.Context, actor domain.Actor, bookingID uuid.UUID) (*domain.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		return nil, err
	}

	if !domain.IsAdmin(actor) && !domain.IsOwner(actor, booking) {
		return nil, domain.ErrForbidden
	}

	return booking, nil
}

// ListBookings возвращает бронирования: администратору - все, клиенту - только свои
func (s *Service) ListBookings(ctx context.Context, actor domain.Actor, limit, offset int) ([]*domain.Booking, error) {
	filter := repository.BookingFilter{}
	if !domain.IsAdmin(actor) {
		customerID := actor.ID
		filter.CustomerID = &customerID
	}

	return s.bookingRepo.List(ctx, filter, limit, offset)
}
