package domain

import (
	"time"

	"github.com/google/uuid"
)

// BookingStatus - статус бронирования (хранится как строка)
type BookingStatus string

const (
	// Строковые литералы - контракт хранения, менять нельзя
	BookingActive    BookingStatus = "active"    // Действующее бронирование, удерживает автомобиль
	BookingCancelled BookingStatus = "cancelled" // Отменено (терминальный статус)
	BookingReturned  BookingStatus = "returned"  // Автомобиль возвращен (терминальный статус)
)

// Booking - бронирование автомобиля на диапазон дат (включительно с обеих сторон)
// Создается только в статусе active; после отмены или возврата неизменяемо
type Booking struct {
	ID            uuid.UUID     `json:"id"`
	CustomerID    uuid.UUID     `json:"customer_id"`
	VehicleID     uuid.UUID     `json:"vehicle_id"`
	RentStartDate time.Time     `json:"rent_start_date"`
	RentEndDate   time.Time     `json:"rent_end_date"`
	TotalPrice    int64         `json:"total_price"` // Вычисляется при создании, в минимальных единицах валюты
	Status        BookingStatus `json:"status"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// allowedTransitions описывает машину состояний бронирования.
// Терминальные статусы не имеют исходящих переходов.
var allowedTransitions = map[BookingStatus][]BookingStatus{
	BookingActive:    {BookingReturned, BookingCancelled},
	BookingReturned:  {},
	BookingCancelled: {},
}

// CanTransition проверяет, допустим ли переход from -> to по машине состояний
func CanTransition(from, to BookingStatus) bool {
	for _, s := range allowedTransitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// IsActive проверяет, действует ли бронирование
func (b *Booking) IsActive() bool {
	return b.Status == BookingActive
}

// IsTerminal проверяет, находится ли бронирование в терминальном статусе
func (b *Booking) IsTerminal() bool {
	return b.Status == BookingCancelled || b.Status == BookingReturned
}

// truncateToDate приводит момент времени к его календарной дате в UTC.
// Входные даты приходят как timestamp с произвольным смещением; обе стороны
// сравнения нормализуются в общую шкалу, иначе разница смещений съедает
// часть суток и теряется оплачиваемый день.
func truncateToDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RentalDays возвращает количество оплачиваемых дней аренды.
// Диапазон включительный с обеих сторон: start == end дает 1 день.
func RentalDays(start, end time.Time) int64 {
	s := truncateToDate(start)
	e := truncateToDate(end)
	return int64(e.Sub(s).Hours()/24) + 1
}

// RentalPrice вычисляет полную стоимость аренды за диапазон дат
func RentalPrice(dailyRentPrice int64, start, end time.Time) int64 {
	return RentalDays(start, end) * dailyRentPrice
}

// CancellationWindowOpen проверяет, открыто ли окно самостоятельной отмены.
// Клиент может отменить бронирование строго до даты начала аренды;
// время суток не учитывается, сравниваются календарные даты.
func CancellationWindowOpen(b *Booking, today time.Time) bool {
	return truncateToDate(today).Before(truncateToDate(b.RentStartDate))
}
