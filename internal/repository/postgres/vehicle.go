package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type vehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) repository.VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		INSERT INTO vehicles (id, name, type, registration_number, image_url, daily_rent_price, availability_status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	vehicle.ID = uuid.New()
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	// Нормализуем номер перед сохранением
	vehicle.RegistrationNumber = domain.NormalizeRegistrationNumber(vehicle.RegistrationNumber)

	_, err := queryEngine(ctx, r.db).Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.RegistrationNumber,
		vehicle.ImageURL,
		vehicle.DailyRentPrice,
		vehicle.AvailabilityStatus,
		vehicle.CreatedAt,
		vehicle.UpdatedAt,
	)

	if err != nil {
		// Нарушение уникальности госномера
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrVehicleAlreadyExists
		}
		return err
	}

	return nil
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, registration_number, image_url, daily_rent_price, availability_status, created_at, updated_at
		FROM vehicles
		WHERE id = $1
	`

	vehicle := &domain.Vehicle{}
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Type,
		&vehicle.RegistrationNumber,
		&vehicle.ImageURL,
		&vehicle.DailyRentPrice,
		&vehicle.AvailabilityStatus,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, registration_number, image_url, daily_rent_price, availability_status, created_at, updated_at
		FROM vehicles
		WHERE registration_number = $1
	`

	// Нормализуем номер перед поиском
	normalized := domain.NormalizeRegistrationNumber(number)

	vehicle := &domain.Vehicle{}
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, normalized).Scan(
		&vehicle.ID,
		&vehicle.Name,
		&vehicle.Type,
		&vehicle.RegistrationNumber,
		&vehicle.ImageURL,
		&vehicle.DailyRentPrice,
		&vehicle.AvailabilityStatus,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrVehicleNotFound
		}
		return nil, err
	}

	return vehicle, nil
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	query := `
		UPDATE vehicles
		SET name = $2, type = $3, registration_number = $4, image_url = $5, daily_rent_price = $6, availability_status = $7, updated_at = $8
		WHERE id = $1
	`

	vehicle.UpdatedAt = time.Now()
	vehicle.RegistrationNumber = domain.NormalizeRegistrationNumber(vehicle.RegistrationNumber)

	result, err := queryEngine(ctx, r.db).Exec(ctx, query,
		vehicle.ID,
		vehicle.Name,
		vehicle.Type,
		vehicle.RegistrationNumber,
		vehicle.ImageURL,
		vehicle.DailyRentPrice,
		vehicle.AvailabilityStatus,
		vehicle.UpdatedAt,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrVehicleAlreadyExists
		}
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, status domain.AvailabilityStatus) error {
	query := `
		UPDATE vehicles
		SET availability_status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := queryEngine(ctx, r.db).Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `
		DELETE FROM vehicles
		WHERE id = $1
	`

	result, err := queryEngine(ctx, r.db).Exec(ctx, query, id)
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrVehicleNotFound
	}

	return nil
}

func (r *vehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	query := `
		SELECT id, name, type, registration_number, image_url, daily_rent_price, availability_status, created_at, updated_at
		FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := queryEngine(ctx, r.db).Query(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var vehicles []*domain.Vehicle
	for rows.Next() {
		vehicle := &domain.Vehicle{}
		err := rows.Scan(
			&vehicle.ID,
			&vehicle.Name,
			&vehicle.Type,
			&vehicle.RegistrationNumber,
			&vehicle.ImageURL,
			&vehicle.DailyRentPrice,
			&vehicle.AvailabilityStatus,
			&vehicle.CreatedAt,
			&vehicle.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		vehicles = append(vehicles, vehicle)
	}

	return vehicles, nil
}
