package repository

import (
	"context"
	"log/slog"

	"holonet/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CharacterRepository defines persistence operations for characters and the
// pilot association between characters and vehicles.
type CharacterRepository interface {
	Create(ctx context.Context, character *models.Character) error
	GetByID(ctx context.Context, id uint) (*models.Character, error)
	GetByName(ctx context.Context, name string) (*models.Character, error)
	List(ctx context.Context, limit, offset int) ([]models.Character, error)
	Update(ctx context.Context, character *models.Character) error
	Delete(ctx context.Context, id uint) error
	AddVehicle(ctx context.Context, characterID, vehicleID uint) (bool, error)
	RemoveVehicle(ctx context.Context, characterID, vehicleID uint) error
	Vehicles(ctx context.Context, characterID uint) ([]models.Vehicle, error)
}

type characterRepository struct {
	base
	pilots base
}

// NewCharacterRepository returns a new CharacterRepository implementation.
func NewCharacterRepository(db *gorm.DB) CharacterRepository {
	return &characterRepository{
		base:   newBase(db, "characters"),
		pilots: newBase(db, models.CharacterVehicle{}.TableName()),
	}
}

// Create inserts the character. A loaded OriginPlanet only supplies its ID;
// the planet row itself is never written.
func (r *characterRepository) Create(ctx context.Context, character *models.Character) error {
	return r.observe(ctx, "Create", func(ctx context.Context) error {
		if character.OriginPlanet != nil && character.OriginPlanetID == nil {
			id := character.OriginPlanet.ID
			character.OriginPlanetID = &id
		}
		if err := r.db.WithContext(ctx).Omit(clause.Associations).Create(character).Error; err != nil {
			return r.writeErr(ctx, "Create", err)
		}
		r.log.LogWrite(ctx, "Create", slog.Uint64("id", uint64(character.ID)))
		return nil
	})
}

func (r *characterRepository) GetByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	err := r.observe(ctx, "GetByID", func(ctx context.Context) error {
		if err := r.db.WithContext(ctx).Preload("OriginPlanet").First(&character, id).Error; err != nil {
			return r.readErr(ctx, "GetByID", "Character", id, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) GetByName(ctx context.Context, name string) (*models.Character, error) {
	var character models.Character
	err := r.observe(ctx, "GetByName", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).Preload("OriginPlanet").Where("name = ?", name).First(&character).Error
		if err != nil {
			return r.readErr(ctx, "GetByName", "Character", name, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &character, nil
}

func (r *characterRepository) List(ctx context.Context, limit, offset int) ([]models.Character, error) {
	var characters []models.Character
	err := r.observe(ctx, "List", func(ctx context.Context) error {
		err := page(r.db.WithContext(ctx).Preload("OriginPlanet"), "id", limit, offset).Find(&characters).Error
		if err != nil {
			return r.readErr(ctx, "List", "Character", nil, err)
		}
		return nil
	})
	return characters, err
}

// Update writes every column, including a nil origin. OriginPlanet is ignored;
// set OriginPlanetID to move a character.
func (r *characterRepository) Update(ctx context.Context, character *models.Character) error {
	return r.observe(ctx, "Update", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Model(character).
			Select("*").Omit("id", clause.Associations).
			Updates(character)
		if err := affected(result, "Character", character.ID); err != nil {
			return r.writeErr(ctx, "Update", err)
		}
		r.log.LogWrite(ctx, "Update", slog.Uint64("id", uint64(character.ID)))
		return nil
	})
}

func (r *characterRepository) Delete(ctx context.Context, id uint) error {
	return r.observe(ctx, "Delete", func(ctx context.Context) error {
		result := r.db.WithContext(ctx).Delete(&models.Character{}, id)
		if err := affected(result, "Character", id); err != nil {
			return r.writeErr(ctx, "Delete", err)
		}
		r.log.LogWrite(ctx, "Delete", slog.Uint64("id", uint64(id)))
		return nil
	})
}

// AddVehicle links a pilot to a vehicle. Linking an existing pair is a no-op
// and reports false.
func (r *characterRepository) AddVehicle(ctx context.Context, characterID, vehicleID uint) (bool, error) {
	row := models.CharacterVehicle{CharacterID: characterID, VehicleID: vehicleID}
	return r.pilots.link(ctx, &row, slog.Uint64("character_id", uint64(characterID)), slog.Uint64("vehicle_id", uint64(vehicleID)))
}

func (r *characterRepository) RemoveVehicle(ctx context.Context, characterID, vehicleID uint) error {
	return r.pilots.unlink(ctx, &models.CharacterVehicle{CharacterID: characterID, VehicleID: vehicleID})
}

func (r *characterRepository) Vehicles(ctx context.Context, characterID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.pilots.observe(ctx, "Vehicles", func(ctx context.Context) error {
		err := r.db.WithContext(ctx).
			Joins("JOIN character_vehicle_association ON character_vehicle_association.vehicle_id = vehicles.id").
			Where("character_vehicle_association.character_id = ?", characterID).
			Order("vehicles.id").
			Find(&vehicles).Error
		if err != nil {
			return r.readErr(ctx, "Vehicles", "Character", characterID, err)
		}
		return nil
	})
	return vehicles, err
}
