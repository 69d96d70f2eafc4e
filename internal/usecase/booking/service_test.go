package booking

import (
	"context"
	"testing"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/logger"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBookingRepository - мок репозитория бронирований
type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*domain.Booking, error) {
	args := m.Called(ctx, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Booking), args.Error(1)
}

// MockVehicleRepository - мок репозитория автопарка
type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Vehicle, error) {
	args := m.Called(ctx, number)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	args := m.Called(ctx, vehicle)
	return args.Error(0)
}

func (m *MockVehicleRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, status domain.AvailabilityStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockVehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockVehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Vehicle), args.Error(1)
}

// fixedTimeProvider - фиксированные часы для тестов окна отмены
type fixedTimeProvider struct {
	now time.Time
}

func (f fixedTimeProvider) Now() time.Time { return f.now }

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func newTestService(bookingRepo *MockBookingRepository, vehicleRepo *MockVehicleRepository, now time.Time) *Service {
	// NopTxManager: записи выполняются без транзакционной обертки
	svc := NewService(bookingRepo, vehicleRepo, repository.NewNopTxManager(), logger.NewNoop())
	return svc.WithTimeProvider(fixedTimeProvider{now: now})
}

func availableVehicle(id uuid.UUID, dailyPrice int64) *domain.Vehicle {
	return &domain.Vehicle{
		ID:                 id,
		Name:               "Toyota Camry 2024",
		Type:               domain.VehicleTypeCar,
		RegistrationNumber: "ABC-1234",
		DailyRentPrice:     dailyPrice,
		AvailabilityStatus: domain.VehicleAvailable,
	}
}

func activeBooking(id, customerID, vehicleID uuid.UUID, start, end time.Time) *domain.Booking {
	return &domain.Booking{
		ID:            id,
		CustomerID:    customerID,
		VehicleID:     vehicleID,
		RentStartDate: start,
		RentEndDate:   end,
		Status:        domain.BookingActive,
	}
}

// TestService_CreateBooking тестирует создание бронирования
func TestService_CreateBooking(t *testing.T) {
	customerID := uuid.New()
	vehicleID := uuid.New()
	customer := domain.Actor{ID: customerID, Role: domain.RoleCustomer}

	t.Run("успешное создание: $50 в сутки за 3 дня = $150", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(availableVehicle(vehicleID, 50), nil)
		bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		vehicleRepo.On("UpdateAvailability", mock.Anything, vehicleID, domain.VehicleBooked).Return(nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2023, 12, 1))

		booking, err := svc.CreateBooking(context.Background(), customer, &CreateBookingRequest{
			VehicleID:     vehicleID,
			RentStartDate: date(2024, 1, 1),
			RentEndDate:   date(2024, 1, 3),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(150), booking.TotalPrice)
		assert.Equal(t, domain.BookingActive, booking.Status)
		assert.Equal(t, customerID, booking.CustomerID)
		assert.Equal(t, vehicleID, booking.VehicleID)

		bookingRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("start == end дает стоимость одного дня", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(availableVehicle(vehicleID, 45), nil)
		bookingRepo.On("Create", mock.Anything, mock.AnythingOfType("*domain.Booking")).Return(nil)
		vehicleRepo.On("UpdateAvailability", mock.Anything, vehicleID, domain.VehicleBooked).Return(nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2023, 12, 1))

		booking, err := svc.CreateBooking(context.Background(), customer, &CreateBookingRequest{
			VehicleID:     vehicleID,
			RentStartDate: date(2024, 2, 10),
			RentEndDate:   date(2024, 2, 10),
		})

		require.NoError(t, err)
		assert.Equal(t, int64(45), booking.TotalPrice)
	})

	t.Run("занятый автомобиль: отказ без мутаций", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booked := availableVehicle(vehicleID, 50)
		booked.AvailabilityStatus = domain.VehicleBooked
		vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(booked, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2023, 12, 1))

		booking, err := svc.CreateBooking(context.Background(), customer, &CreateBookingRequest{
			VehicleID:     vehicleID,
			RentStartDate: date(2024, 1, 1),
			RentEndDate:   date(2024, 1, 3),
		})

		assert.ErrorIs(t, err, domain.ErrVehicleUnavailable)
		assert.Nil(t, booking)

		// Ни бронирование, ни автомобиль не изменились
		bookingRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		vehicleRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("автомобиль не найден", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		vehicleRepo.On("GetByID", mock.Anything, vehicleID).Return(nil, domain.ErrVehicleNotFound)

		svc := newTestService(bookingRepo, vehicleRepo, date(2023, 12, 1))

		_, err := svc.CreateBooking(context.Background(), customer, &CreateBookingRequest{
			VehicleID:     vehicleID,
			RentStartDate: date(2024, 1, 1),
			RentEndDate:   date(2024, 1, 3),
		})

		assert.ErrorIs(t, err, domain.ErrVehicleNotFound)
	})

	t.Run("конец диапазона раньше начала", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		svc := newTestService(bookingRepo, vehicleRepo, date(2023, 12, 1))

		_, err := svc.CreateBooking(context.Background(), customer, &CreateBookingRequest{
			VehicleID:     vehicleID,
			RentStartDate: date(2024, 1, 3),
			RentEndDate:   date(2024, 1, 1),
		})

		assert.ErrorIs(t, err, domain.ErrInvalidDateRange)
		vehicleRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

// TestService_UpdateStatus_Cancel тестирует отмену бронирования
func TestService_UpdateStatus_Cancel(t *testing.T) {
	customerID := uuid.New()
	vehicleID := uuid.New()
	bookingID := uuid.New()

	owner := domain.Actor{ID: customerID, Role: domain.RoleCustomer}
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}
	stranger := domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer}

	t.Run("владелец отменяет до начала аренды", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 10), date(2024, 7, 12))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingCancelled).Return(nil)
		vehicleRepo.On("UpdateAvailability", mock.Anything, vehicleID, domain.VehicleAvailable).Return(nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 9))

		updated, err := svc.UpdateStatus(context.Background(), owner, bookingID, domain.BookingCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, updated.Status)

		bookingRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("владелец отменяет в день начала аренды: окно закрыто", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 10), date(2024, 7, 12))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 10))

		_, err := svc.UpdateStatus(context.Background(), owner, bookingID, domain.BookingCancelled)
		assert.ErrorIs(t, err, domain.ErrCancellationWindowClosed)

		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
		vehicleRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("администратор отменяет бронирование с датами в прошлом", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 1, 1), date(2024, 1, 3))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingCancelled).Return(nil)
		vehicleRepo.On("UpdateAvailability", mock.Anything, vehicleID, domain.VehicleAvailable).Return(nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

		updated, err := svc.UpdateStatus(context.Background(), admin, bookingID, domain.BookingCancelled)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingCancelled, updated.Status)

		vehicleRepo.AssertExpectations(t)
	})

	t.Run("посторонний клиент получает Forbidden до проверки статусов", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 10), date(2024, 7, 12))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

		_, err := svc.UpdateStatus(context.Background(), stranger, bookingID, domain.BookingCancelled)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("отмена уже отмененного бронирования отклоняется", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 10), date(2024, 7, 12))
		booking.Status = domain.BookingCancelled
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

		_, err := svc.UpdateStatus(context.Background(), admin, bookingID, domain.BookingCancelled)
		assert.ErrorIs(t, err, domain.ErrBookingNotActive)

		// Побочный эффект на автомобиль не повторяется
		vehicleRepo.AssertNotCalled(t, "UpdateAvailability", mock.Anything, mock.Anything, mock.Anything)
	})
}

// TestService_UpdateStatus_Return тестирует возврат автомобиля
func TestService_UpdateStatus_Return(t *testing.T) {
	customerID := uuid.New()
	vehicleID := uuid.New()
	bookingID := uuid.New()

	owner := domain.Actor{ID: customerID, Role: domain.RoleCustomer}
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("администратор принимает возврат: автомобиль освобождается", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 1), date(2024, 7, 5))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)
		bookingRepo.On("UpdateStatus", mock.Anything, bookingID, domain.BookingReturned).Return(nil)
		vehicleRepo.On("UpdateAvailability", mock.Anything, vehicleID, domain.VehicleAvailable).Return(nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 6))

		updated, err := svc.UpdateStatus(context.Background(), admin, bookingID, domain.BookingReturned)
		require.NoError(t, err)
		assert.Equal(t, domain.BookingReturned, updated.Status)

		bookingRepo.AssertExpectations(t)
		vehicleRepo.AssertExpectations(t)
	})

	t.Run("владелец не может оформить возврат", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 1), date(2024, 7, 5))
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 6))

		_, err := svc.UpdateStatus(context.Background(), owner, bookingID, domain.BookingReturned)
		assert.ErrorIs(t, err, domain.ErrForbidden)

		bookingRepo.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("возврат по уже возвращенному бронированию отклоняется", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		booking := activeBooking(bookingID, customerID, vehicleID, date(2024, 7, 1), date(2024, 7, 5))
		booking.Status = domain.BookingReturned
		bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 6))

		_, err := svc.UpdateStatus(context.Background(), admin, bookingID, domain.BookingReturned)
		assert.ErrorIs(t, err, domain.ErrBookingNotActive)
	})

	t.Run("недопустимый целевой статус", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 6))

		_, err := svc.UpdateStatus(context.Background(), admin, bookingID, domain.BookingActive)
		assert.ErrorIs(t, err, domain.ErrInvalidBookingStatus)

		bookingRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
	})
}

// TestService_ListBookings тестирует выборку бронирований по роли актора
func TestService_ListBookings(t *testing.T) {
	customerID := uuid.New()
	customer := domain.Actor{ID: customerID, Role: domain.RoleCustomer}
	admin := domain.Actor{ID: uuid.New(), Role: domain.RoleAdmin}

	t.Run("клиент видит только свои бронирования", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		bookingRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.BookingFilter) bool {
			return f.CustomerID != nil && *f.CustomerID == customerID
		}), 20, 0).Return([]*domain.Booking{}, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

		_, err := svc.ListBookings(context.Background(), customer, 20, 0)
		require.NoError(t, err)

		bookingRepo.AssertExpectations(t)
	})

	t.Run("администратор видит все бронирования", func(t *testing.T) {
		bookingRepo := new(MockBookingRepository)
		vehicleRepo := new(MockVehicleRepository)

		bookingRepo.On("List", mock.Anything, mock.MatchedBy(func(f repository.BookingFilter) bool {
			return f.CustomerID == nil
		}), 20, 0).Return([]*domain.Booking{}, nil)

		svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

		_, err := svc.ListBookings(context.Background(), admin, 20, 0)
		require.NoError(t, err)

		bookingRepo.AssertExpectations(t)
	})
}

// TestService_GetBookingByID тестирует доступ к отдельному бронированию
func TestService_GetBookingByID(t *testing.T) {
	customerID := uuid.New()
	bookingID := uuid.New()
	booking := activeBooking(bookingID, customerID, uuid.New(), date(2024, 7, 1), date(2024, 7, 5))

	owner := domain.Actor{ID: customerID, Role: domain.RoleCustomer}
	stranger := domain.Actor{ID: uuid.New(), Role: domain.RoleCustomer}

	bookingRepo := new(MockBookingRepository)
	vehicleRepo := new(MockVehicleRepository)
	bookingRepo.On("GetByID", mock.Anything, bookingID).Return(booking, nil)

	svc := newTestService(bookingRepo, vehicleRepo, date(2024, 7, 1))

	got, err := svc.GetBookingByID(context.Background(), owner, bookingID)
	require.NoError(t, err)
	assert.Equal(t, bookingID, got.ID)

	_, err = svc.GetBookingByID(context.Background(), stranger, bookingID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
