package postgres

import (
	"context"
	"errors"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// psql - построитель запросов с PostgreSQL плейсхолдерами
var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

type bookingRepository struct {
	db *pgxpool.Pool
}

func NewBookingRepository(db *pgxpool.Pool) repository.BookingRepository {
	return &bookingRepository{db: db}
}

func (r *bookingRepository) Create(ctx context.Context, booking *domain.Booking) error {
	query := `
		INSERT INTO bookings (id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	booking.ID = uuid.New()
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = time.Now()

	_, err := queryEngine(ctx, r.db).Exec(ctx, query,
		booking.ID,
		booking.CustomerID,
		booking.VehicleID,
		booking.RentStartDate,
		booking.RentEndDate,
		booking.TotalPrice,
		booking.Status,
		booking.CreatedAt,
		booking.UpdatedAt,
	)

	return err
}

func (r *bookingRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	query := `
		SELECT id, customer_id, vehicle_id, rent_start_date, rent_end_date, total_price, status, created_at, updated_at
		FROM bookings
		WHERE id = $1
	`

	booking := &domain.Booking{}
	err := queryEngine(ctx, r.db).QueryRow(ctx, query, id).Scan(
		&booking.ID,
		&booking.CustomerID,
		&booking.VehicleID,
		&booking.RentStartDate,
		&booking.RentEndDate,
		&booking.TotalPrice,
		&booking.Status,
		&booking.CreatedAt,
		&booking.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, err
	}

	return booking, nil
}

func (r *bookingRepository) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	query := `
		UPDATE bookings
		SET status = $2, updated_at = $3
		WHERE id = $1
	`

	result, err := queryEngine(ctx, r.db).Exec(ctx, query, id, status, time.Now())
	if err != nil {
		return err
	}

	if result.RowsAffected() == 0 {
		return domain.ErrBookingNotFound
	}

	return nil
}

func (r *bookingRepository) List(ctx context.Context, filter repository.BookingFilter, limit, offset int) ([]*domain.Booking, error) {
	// Фильтр собирается динамически, поэтому squirrel вместо сырого SQL
	builder := psql.
		Select("id", "customer_id", "vehicle_id", "rent_start_date", "rent_end_date", "total_price", "status", "created_at", "updated_at").
		From("bookings").
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	if filter.CustomerID != nil {
		builder = builder.Where(sq.Eq{"customer_id": *filter.CustomerID})
	}
	if filter.VehicleID != nil {
		builder = builder.Where(sq.Eq{"vehicle_id": *filter.VehicleID})
	}
	if filter.Status != nil {
		builder = builder.Where(sq.Eq{"status": *filter.Status})
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := queryEngine(ctx, r.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bookings []*domain.Booking
	for rows.Next() {
		booking := &domain.Booking{}
		err := rows.Scan(
			&booking.ID,
			&booking.CustomerID,
			&booking.VehicleID,
			&booking.RentStartDate,
			&booking.RentEndDate,
			&booking.TotalPrice,
			&booking.Status,
			&booking.CreatedAt,
			&booking.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, booking)
	}

	return bookings, nil
}
