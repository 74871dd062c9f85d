package repository

import (
	"context"
	"log/slog"

	"holonet/internal/cache"
	"holonet/internal/models"

	"gorm.io/gorm"
)

// PlanetRepository defines persistence operations for planets.
type PlanetRepository interface {
	Create(ctx context.Context, planet *models.Planet) error
	GetByID(ctx context.Context, id uint) (*models.Planet, error)
	GetByName(ctx context.Context, name string) (*models.Planet, error)
	List(ctx context.Context, limit, offset int) ([]models.Planet, error)
	Update(ctx context.Context, planet *models.Planet) error
	Delete(ctx context.Context, id uint) error
	// Residents returns the characters whose origin is the planet.
	Residents(ctx context.Context, planetID uint) ([]models.Character, error)
}

type planetRepository struct {
	base
	cache *cache.Cache
}

// NewPlanetRepository returns a new PlanetRepository. c may be nil.
func NewPlanetRepository(db *gorm.DB, c *cache.Cache) PlanetRepository {
	return &planetRepository{base: newBase(db, "planets"), cache: c}
}

func (r *planetRepository) Create(ctx context.Context, planet *models.Planet) error {
	return r.observe(ctx, "Create", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Create(planet).Error; err != nil {
			return r.writeErr(ctx, "Create", err)
		}
		r.log.LogWrite(ctx, "Create", slog.Uint64("id", uint64(planet.ID)))
		return nil
	})
}

func (r *planetRepository) GetByID(ctx context.Context, id uint) (*models.Planet, error) {
	var planet models.Planet
	err := r.observe(ctx, "GetByID", func(ctx context.Context) error {
		return r.cache.Aside(ctx, cache.PlanetKey(id), &planet, cache.PlanetTTL, func() error {
			if err := r.db.WithContext(ctx).First(&planet, id).Error; err != nil {
				return r.readErr(ctx, "GetByID", "Planet", id, err)
			}
			return nil
		})
	})
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

func (r *planetRepository) GetByName(ctx context.Context, name string) (*models.Planet, error) {
	var planet models.Planet
	err := r.observe(ctx, "GetByName", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Where("name = ?", name).First(&planet).Error; err != nil {
			return r.readErr(ctx, "GetByName", "Planet", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &planet, nil
}

func (r *planetRepository) List(ctx context.Context, limit, offset int) ([]models.Planet, error) {
	var planets []models.Planet
	err := r.observe(ctx, "List", func(ctx context.Context) error {
		if err := page(r.db.WithContext(ctx), "id", limit, offset).Find(&planets).Error; err != nil {
			return r.readErr(ctx, "List", "Planet", nil, err)
		}
		return nil
	})
	return planets, err
}

func (r *planetRepository) Update(ctx context.Context, planet *models.Planet) error {
	return r.observe(ctx, "Update", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Model(planet).Select("*").Omit("id").Updates(planet)
		if err := affected(result, "Planet", planet.ID); err != nil {
			return r.writeErr(ctx, "Update", err)
		}
		r.cache.Invalidate(ctx, cache.PlanetKey(planet.ID))
		r.log.LogWrite(ctx, "Update", slog.Uint64("id", uint64(planet.ID)))
		return nil
	})
}

// Delete removes the planet. Residents keep existing with no origin, and
// favorites of the planet are removed.
func (r *planetRepository) Delete(ctx context.Context, id uint) error {
	return r.observe(ctx, "Delete", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.Planet{}, id)
		if err := affected(result, "Planet", id); err != nil {
			return r.writeErr(ctx, "Delete", err)
		}
		r.cache.Invalidate(ctx, cache.PlanetKey(id))
		r.log.LogWrite(ctx, "Delete", slog.Uint64("id", uint64(id)))
		return nil
	})
}

func (r *planetRepository) Residents(ctx context.Context, planetID uint) ([]models.Character, error) {
	var characters []models.Character
	err := r.observe(ctx, "Residents", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Preload("OriginPlanet").
			Where("origin_planet_id = ?", planetID).
			Order("id").
			Find(&characters).Error
		if err != nil {
			return r.readErr(ctx, "Residents", "Planet", planetID, err)
		}
		return nil
	})
	return characters, err
}
