package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// VehicleType представляет тип транспортного средства в каталоге
type VehicleType string

const (
	VehicleTypeCar  VehicleType = "car"
	VehicleTypeBike VehicleType = "bike"
	VehicleTypeVan  VehicleType = "van"
	VehicleTypeSUV  VehicleType = "suv"
)

// AvailabilityStatus - статус доступности автомобиля
// Единственный флаг на автомобиль: интервальный календарь занятости не ведется,
// поэтому автомобиль не может иметь два активных бронирования одновременно
type AvailabilityStatus string

const (
	// Строковые литералы - контракт хранения, менять нельзя
	VehicleAvailable AvailabilityStatus = "available"
	VehicleBooked    AvailabilityStatus = "booked"
)

// Vehicle - автомобиль автопарка, доступный для аренды
type Vehicle struct {
	ID                 uuid.UUID          `json:"id"`
	Name               string             `json:"name"`
	Type               VehicleType        `json:"type"`
	RegistrationNumber string             `json:"registration_number"` // Госномер (уникальный)
	ImageURL           string             `json:"image_url,omitempty"`
	DailyRentPrice     int64              `json:"daily_rent_price"` // Цена за сутки в минимальных единицах валюты
	AvailabilityStatus AvailabilityStatus `json:"availability_status"`
	CreatedAt          time.Time          `json:"created_at"`
	UpdatedAt          time.Time          `json:"updated_at"`
}

// NormalizeRegistrationNumber нормализует госномер (убирает пробелы, приводит к верхнему регистру)
func NormalizeRegistrationNumber(number string) string {
	return strings.ToUpper(strings.ReplaceAll(number, " ", ""))
}

// IsAvailable проверяет, свободен ли автомобиль для нового бронирования
func (v *Vehicle) IsAvailable() bool {
	return v.AvailabilityStatus == VehicleAvailable
}

// Validate проверяет корректность данных автомобиля
func (v *Vehicle) Validate() error {
	if v.Name == "" {
		return ErrInvalidVehicleData
	}
	if v.Type != VehicleTypeCar && v.Type != VehicleTypeBike && v.Type != VehicleTypeVan && v.Type != VehicleTypeSUV {
		return ErrInvalidVehicleType
	}

	// Нормализуем номер
	v.RegistrationNumber = NormalizeRegistrationNumber(v.RegistrationNumber)
	if len(v.RegistrationNumber) < 4 || len(v.RegistrationNumber) > 20 {
		return ErrInvalidRegistrationNumber
	}

	if v.DailyRentPrice <= 0 {
		return ErrInvalidVehicleData
	}
	if v.AvailabilityStatus != VehicleAvailable && v.AvailabilityStatus != VehicleBooked {
		return ErrInvalidVehicleData
	}
	return nil
}
