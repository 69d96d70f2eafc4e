package domain

import "errors"

// Доменные ошибки - используются во всех слоях приложения

// User errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidEmail       = errors.New("invalid email")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrInvalidUserData    = errors.New("invalid user data")
	ErrInvalidRole        = errors.New("invalid user role")
	ErrUserInactive       = errors.New("user is inactive")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// Vehicle errors
var (
	ErrVehicleNotFound           = errors.New("vehicle not found")
	ErrVehicleAlreadyExists      = errors.New("vehicle already exists")
	ErrInvalidRegistrationNumber = errors.New("invalid registration number")
	ErrInvalidVehicleType        = errors.New("invalid vehicle type")
	ErrInvalidVehicleData        = errors.New("invalid vehicle data")
	ErrVehicleUnavailable        = errors.New("vehicle is not available")
)

// Booking errors
var (
	ErrBookingNotFound          = errors.New("booking not found")
	ErrInvalidBookingData       = errors.New("invalid booking data")
	ErrInvalidDateRange         = errors.New("invalid rent date range")
	ErrInvalidBookingStatus     = errors.New("invalid booking status")
	ErrBookingNotActive         = errors.New("booking is not active")
	ErrCancellationWindowClosed = errors.New("booking can only be cancelled before the rent start date")
)

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrTokenExpired = errors.New("token expired")
	ErrInvalidToken = errors.New("invalid token")
)

// General errors
var (
	ErrInternal = errors.New("internal server error")
	ErrNotFound = errors.New("not found")
)
