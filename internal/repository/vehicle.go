package repository

import (
	"context"
	"log/slog"

	"holonet/internal/cache"
	"holonet/internal/models"

	"gorm.io/gorm"
)

// VehicleRepository defines persistence operations for vehicles.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *models.Vehicle) error
	GetByID(ctx context.Context, id uint) (*models.Vehicle, error)
	GetByName(ctx context.Context, name string) (*models.Vehicle, error)
	List(ctx context.Context, limit, offset int) ([]models.Vehicle, error)
	Update(ctx context.Context, vehicle *models.Vehicle) error
	Delete(ctx context.Context, id uint) error
	// Pilots returns the characters associated with the vehicle.
	Pilots(ctx context.Context, vehicleID uint) ([]models.Character, error)
}

type vehicleRepository struct {
	base
	cache *cache.Cache
}

// NewVehicleRepository returns a new VehicleRepository. c may be nil.
func NewVehicleRepository(db *gorm.DB, c *cache.Cache) VehicleRepository {
	return &vehicleRepository{base: newBase(db, "vehicles"), cache: c}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *models.Vehicle) error {
	return r.observe(ctx, "Create", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Create(vehicle).Error; err != nil {
			return r.writeErr(ctx, "Create", err)
		}
		r.log.LogWrite(ctx, "Create", slog.Uint64("id", uint64(vehicle.ID)))
		return nil
	})
}

func (r *vehicleRepository) GetByID(ctx context.Context, id uint) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.observe(ctx, "GetByID", func(ctx context.Context) error {
		return r.cache.Aside(ctx, cache.VehicleKey(id), &vehicle, cache.VehicleTTL, func() error {
			if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
				return r.readErr(ctx, "GetByID", "Vehicle", id, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) GetByName(ctx context.Context, name string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	err := r.observe(ctx, "GetByName", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&vehicle).Error; err != nil {
			return r.readErr(ctx, "GetByName", "Vehicle", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &vehicle, nil
}

func (r *vehicleRepository) List(ctx context.Context, limit, offset int) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.observe(ctx, "List", func(ctx context.Context) error {
		if err := page(r.db.WithContext(ctx), "id", limit, offset).Find(&vehicles).Error; err != nil {
			return r.readErr(ctx, "List", "Vehicle", nil, err)
		}
		return nil
	})
	return vehicles, err
}

func (r *vehicleRepository) Update(ctx context.Context, vehicle *models.Vehicle) error {
	return r.observe(ctx, "Update", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Model(vehicle).Select("*").Omit("id").Updates(vehicle)
		if err := affected(result, "Vehicle", vehicle.ID); err != nil {
			return r.writeErr(ctx, "Update", err)
		}
		r.cache.Invalidate(ctx, cache.VehicleKey(vehicle.ID))
		r.log.LogWrite(ctx, "Update", slog.Uint64("id", uint64(vehicle.ID)))
		return nil
	})
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) error {
	return r.observe(ctx, "Delete", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.Vehicle{}, id)
		if err := affected(result, "Vehicle", id); err != nil {
			return r.writeErr(ctx, "Delete", err)
		}
		r.cache.Invalidate(ctx, cache.VehicleKey(id))
		r.log.LogWrite(ctx, "Delete", slog.Uint64("id", uint64(id)))
		return nil
	})
}

func (r *vehicleRepository) Pilots(ctx context.Context, vehicleID uint) ([]models.Character, error) {
	var pilots []models.Character
	err := r.observe(ctx, "Pilots", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Preload("OriginPlanet").
			Joins("JOIN character_vehicle_association ON character_vehicle_association.character_id = characters.id").
			Where("character_vehicle_association.vehicle_id = ?", vehicleID).
			Order("characters.id").
			Find(&pilots).Error
		if err != nil {
			return r.readErr(ctx, "Pilots", "Vehicle", vehicleID, err)
		}
		return nil
	})
	return pilots, err
}
