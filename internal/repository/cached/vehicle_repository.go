package cached

import (
	"context"
	"encoding/json"
	"time"

	"github.com/frontandrew/rental/internal/domain"
	"github.com/frontandrew/rental/internal/pkg/redis"
	"github.com/frontandrew/rental/internal/repository"
	"github.com/google/uuid"
)

const (
	vehicleCachePrefix = "vehicle:"
	vehicleCacheTTL    = 5 * time.Minute
)

// VehicleRepository добавляет кэширование карточек автомобилей к vehicle repository.
// Статус доступности меняется при каждом переходе бронирования, поэтому любая
// мутация инвалидирует кэш для этого автомобиля.
type VehicleRepository struct {
	repo  repository.VehicleRepository
	cache *redis.Client
}

// NewVehicleRepository создает новый кэшируемый vehicle repository
func NewVehicleRepository(repo repository.VehicleRepository, cache *redis.Client) *VehicleRepository {
	return &VehicleRepository{
		repo:  repo,
		cache: cache,
	}
}

// GetByID возвращает автомобиль по ID (с кэшированием)
func (r *VehicleRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Vehicle, error) {
	cacheKey := vehicleCachePrefix + id.String()

	// 1. Проверяем кэш
	if cached, err := r.cache.Get(ctx, cacheKey); err == nil {
		vehicle := &domain.Vehicle{}
		if err := json.Unmarshal([]byte(cached), vehicle); err == nil {
			return vehicle, nil
		}
		// Битая запись в кэше - убираем и идем в БД
		_ = r.cache.Del(ctx, cacheKey)
	}

	// 2. Cache miss - идем в БД
	vehicle, err := r.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// 3. Сохраняем результат в кэш (ошибку записи игнорируем, не критично)
	if data, err := json.Marshal(vehicle); err == nil {
		_ = r.cache.Set(ctx, cacheKey, string(data), vehicleCacheTTL)
	}

	return vehicle, nil
}

// Create добавляет автомобиль в автопарк
func (r *VehicleRepository) Create(ctx context.Context, vehicle *domain.Vehicle) error {
	return r.repo.Create(ctx, vehicle)
}

// GetByRegistrationNumber возвращает автомобиль по госномеру (без кэширования)
func (r *VehicleRepository) GetByRegistrationNumber(ctx context.Context, number string) (*domain.Vehicle, error) {
	return r.repo.GetByRegistrationNumber(ctx, number)
}

// Update обновляет автомобиль и инвалидирует кэш
func (r *VehicleRepository) Update(ctx context.Context, vehicle *domain.Vehicle) error {
	if err := r.repo.Update(ctx, vehicle); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, vehicleCachePrefix+vehicle.ID.String())
	return nil
}

// UpdateAvailability меняет статус доступности и инвалидирует кэш
func (r *VehicleRepository) UpdateAvailability(ctx context.Context, id uuid.UUID, status domain.AvailabilityStatus) error {
	if err := r.repo.UpdateAvailability(ctx, id, status); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, vehicleCachePrefix+id.String())
	return nil
}

// Delete удаляет автомобиль и инвалидирует кэш
func (r *VehicleRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.repo.Delete(ctx, id); err != nil {
		return err
	}

	_ = r.cache.Del(ctx, vehicleCachePrefix+id.String())
	return nil
}

// List возвращает каталог автомобилей (без кэширования)
func (r *VehicleRepository) List(ctx context.Context, limit, offset int) ([]*domain.Vehicle, error) {
	return r.repo.List(ctx, limit, offset)
}
