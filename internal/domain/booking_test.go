package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

// TestRentalDays тестирует расчет количества оплачиваемых дней
func TestRentalDays(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		days  int64
	}{
		{
			name:  "start == end дает один день",
			start: date(2024, 1, 1),
			end:   date(2024, 1, 1),
			days:  1,
		},
		{
			name:  "диапазон включителен с обеих сторон",
			start: date(2024, 1, 1),
			end:   date(2024, 1, 3),
			days:  3,
		},
		{
			name:  "неделя",
			start: date(2024, 3, 10),
			end:   date(2024, 3, 16),
			days:  7,
		},
		{
			name:  "переход через границу месяца",
			start: date(2024, 1, 30),
			end:   date(2024, 2, 2),
			days:  4,
		},
		{
			name:  "время суток не влияет на количество дней",
			start: time.Date(2024, 1, 1, 23, 30, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 3, 0, 15, 0, 0, time.UTC),
			days:  3,
		},
		{
			name:  "разные смещения таймзон не съедают день",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 3, 0, 0, 0, 0, time.FixedZone("", 5*3600)),
			days:  3,
		},
		{
			name:  "смещение в другую сторону тоже игнорируется",
			start: time.Date(2024, 1, 1, 22, 0, 0, 0, time.FixedZone("", -7*3600)),
			end:   time.Date(2024, 1, 3, 1, 0, 0, 0, time.UTC),
			days:  3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.days, RentalDays(tt.start, tt.end))
		})
	}
}

// TestRentalPrice тестирует расчет полной стоимости аренды
func TestRentalPrice(t *testing.T) {
	// Сценарий из каталога: $50 в сутки, 2024-01-01 - 2024-01-03 -> 3 дня, $150
	assert.Equal(t, int64(150), RentalPrice(50, date(2024, 1, 1), date(2024, 1, 3)))

	// Один день стоит ровно суточную цену
	assert.Equal(t, int64(45), RentalPrice(45, date(2024, 5, 7), date(2024, 5, 7)))

	// total == days * dailyRentPrice
	start, end := date(2024, 6, 1), date(2024, 6, 14)
	assert.Equal(t, RentalDays(start, end)*99, RentalPrice(99, start, end))
}

// TestCanTransition тестирует машину состояний бронирования
func TestCanTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    BookingStatus
		to      BookingStatus
		allowed bool
	}{
		{"active -> returned", BookingActive, BookingReturned, true},
		{"active -> cancelled", BookingActive, BookingCancelled, true},
		{"returned - терминальный статус", BookingReturned, BookingCancelled, false},
		{"cancelled - терминальный статус", BookingCancelled, BookingReturned, false},
		{"повторный возврат запрещен", BookingReturned, BookingReturned, false},
		{"повторная отмена запрещена", BookingCancelled, BookingCancelled, false},
		{"нет перехода обратно в active", BookingReturned, BookingActive, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.allowed, CanTransition(tt.from, tt.to))
		})
	}
}

// TestCancellationWindowOpen тестирует окно самостоятельной отмены
func TestCancellationWindowOpen(t *testing.T) {
	booking := &Booking{RentStartDate: date(2024, 7, 10)}

	tests := []struct {
		name  string
		today time.Time
		open  bool
	}{
		{"за день до начала аренды", date(2024, 7, 9), true},
		{"задолго до начала аренды", date(2024, 6, 1), true},
		{"в день начала аренды", date(2024, 7, 10), false},
		{"после начала аренды", date(2024, 7, 11), false},
		{"время суток не учитывается", time.Date(2024, 7, 10, 0, 0, 1, 0, time.UTC), false},
		{"накануне поздно вечером", time.Date(2024, 7, 9, 23, 59, 59, 0, time.UTC), true},
		{"смещение таймзоны не открывает окно", time.Date(2024, 7, 10, 2, 0, 0, 0, time.FixedZone("", 5*3600)), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.open, CancellationWindowOpen(booking, tt.today))
		})
	}
}

// TestActorPredicates тестирует предикаты авторизации
func TestActorPredicates(t *testing.T) {
	customerID := uuid.New()
	booking := &Booking{CustomerID: customerID}

	admin := Actor{ID: uuid.New(), Role: RoleAdmin}
	owner := Actor{ID: customerID, Role: RoleCustomer}
	stranger := Actor{ID: uuid.New(), Role: RoleCustomer}

	assert.True(t, IsAdmin(admin))
	assert.False(t, IsAdmin(owner))

	assert.True(t, IsOwner(owner, booking))
	assert.False(t, IsOwner(stranger, booking))
	assert.False(t, IsOwner(admin, booking))
}

// TestVehicleIsAvailable тестирует флаг доступности автомобиля
func TestVehicleIsAvailable(t *testing.T) {
	v := &Vehicle{AvailabilityStatus: VehicleAvailable}
	assert.True(t, v.IsAvailable())

	v.AvailabilityStatus = VehicleBooked
	assert.False(t, v.IsAvailable())
}

// TestVehicleValidate тестирует валидацию данных автомобиля
func TestVehicleValidate(t *testing.T) {
	valid := func() *Vehicle {
		return &Vehicle{
			Name:               "Toyota Camry 2024",
			Type:               VehicleTypeCar,
			RegistrationNumber: "ABC-1234",
			DailyRentPrice:     50,
			AvailabilityStatus: VehicleAvailable,
		}
	}

	v := valid()
	assert.NoError(t, v.Validate())
	assert.Equal(t, "ABC-1234", v.RegistrationNumber)

	v = valid()
	v.RegistrationNumber = "a b c 1"
	assert.NoError(t, v.Validate())
	assert.Equal(t, "ABC1", v.RegistrationNumber, "номер нормализуется")

	v = valid()
	v.DailyRentPrice = 0
	assert.ErrorIs(t, v.Validate(), ErrInvalidVehicleData)

	v = valid()
	v.Type = "plane"
	assert.ErrorIs(t, v.Validate(), ErrInvalidVehicleType)

	v = valid()
	v.RegistrationNumber = "A1"
	assert.ErrorIs(t, v.Validate(), ErrInvalidRegistrationNumber)
}
