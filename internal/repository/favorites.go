package repository

import (
	"context"
	"fmt"
	"log/slog"

	"holonet/internal/models"

	"gorm.io/gorm"
)

// FavoriteRepository manages the three user favorite relations. Each relation
// is one junction table read in both directions: a user's favorites, and the
// users (fans) who favorited a record.
type FavoriteRepository interface {
	AddPlanet(ctx context.Context, userID, planetID uint) (bool, error)
	RemovePlanet(ctx context.Context, userID, planetID uint) error
	Planets(ctx context.Context, userID uint) ([]models.Planet, error)
	PlanetFans(ctx context.Context, planetID uint) ([]models.User, error)

	AddCharacter(ctx context.Context, userID, characterID uint) (bool, error)
	RemoveCharacter(ctx context.Context, userID, characterID uint) error
	Characters(ctx context.Context, userID uint) ([]models.Character, error)
	CharacterFans(ctx context.Context, characterID uint) ([]models.User, error)

	AddVehicle(ctx context.Context, userID, vehicleID uint) (bool, error)
	RemoveVehicle(ctx context.Context, userID, vehicleID uint) error
	Vehicles(ctx context.Context, userID uint) ([]models.Vehicle, error)
	VehicleFans(ctx context.Context, vehicleID uint) ([]models.User, error)
}

type favoriteRepository struct {
	planets    base
	characters base
	vehicles   base
}

// NewFavoriteRepository returns a new FavoriteRepository implementation.
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{
		planets:    newBase(db, models.UserPlanetFavorite{}.TableName()),
		characters: newBase(db, models.UserCharacterFavorite{}.TableName()),
		vehicles:   newBase(db, models.UserVehicleFavorite{}.TableName()),
	}
}

func (r *favoriteRepository) AddPlanet(ctx context.Context, userID, planetID uint) (bool, error) {
	return r.planets.link(ctx, &models.UserPlanetFavorite{UserID: userID, PlanetID: planetID},
		slog.Uint64("user_id", uint64(userID)), slog.Uint64("planet_id", uint64(planetID)))
}

func (r *favoriteRepository) RemovePlanet(ctx context.Context, userID, planetID uint) error {
	return r.planets.unlink(ctx, &models.UserPlanetFavorite{UserID: userID, PlanetID: planetID})
}

func (r *favoriteRepository) Planets(ctx context.Context, userID uint) ([]models.Planet, error) {
	var planets []models.Planet
	err := r.planets.through(ctx, "Planets", &planets, "planets", "planet_id", "user_id", userID)
	return planets, err
}

func (r *favoriteRepository) PlanetFans(ctx context.Context, planetID uint) ([]models.User, error) {
	var users []models.User
	err := r.planets.through(ctx, "PlanetFans", &users, "users", "user_id", "planet_id", planetID)
	return users, err
}

func (r *favoriteRepository) AddCharacter(ctx context.Context, userID, characterID uint) (bool, error) {
	return r.characters.link(ctx, &models.UserCharacterFavorite{UserID: userID, CharacterID: characterID},
		slog.Uint64("user_id", uint64(userID)), slog.Uint64("character_id", uint64(characterID)))
}

func (r *favoriteRepository) RemoveCharacter(ctx context.Context, userID, characterID uint) error {
	return r.characters.unlink(ctx, &models.UserCharacterFavorite{UserID: userID, CharacterID: characterID})
}

func (r *favoriteRepository) Characters(ctx context.Context, userID uint) ([]models.Character, error) {
	var characters []models.Character
	err := r.characters.through(ctx, "Characters", &characters, "characters", "character_id", "user_id", userID, "OriginPlanet")
	return characters, err
}

func (r *favoriteRepository) CharacterFans(ctx context.Context, characterID uint) ([]models.User, error) {
	var users []models.User
	err := r.characters.through(ctx, "CharacterFans", &users, "users", "user_id", "character_id", characterID)
	return users, err
}

func (r *favoriteRepository) AddVehicle(ctx context.Context, userID, vehicleID uint) (bool, error) {
	return r.vehicles.link(ctx, &models.UserVehicleFavorite{UserID: userID, VehicleID: vehicleID},
		slog.Uint64("user_id", uint64(userID)), slog.Uint64("vehicle_id", uint64(vehicleID)))
}

func (r *favoriteRepository) RemoveVehicle(ctx context.Context, userID, vehicleID uint) error {
	return r.vehicles.unlink(ctx, &models.UserVehicleFavorite{UserID: userID, VehicleID: vehicleID})
}

func (r *favoriteRepository) Vehicles(ctx context.Context, userID uint) ([]models.Vehicle, error) {
	var vehicles []models.Vehicle
	err := r.vehicles.through(ctx, "Vehicles", &vehicles, "vehicles", "vehicle_id", "user_id", userID)
	return vehicles, err
}

func (r *favoriteRepository) VehicleFans(ctx context.Context, vehicleID uint) ([]models.User, error) {
	var users []models.User
	err := r.vehicles.through(ctx, "VehicleFans", &users, "users", "user_id", "vehicle_id", vehicleID)
	return users, err
}

// through loads the target rows joined to b's junction table. joinCol is the
// junction column referencing target.id; filterCol is the column matched
// against id.
func (b base) through(ctx context.Context, method string, dest interface{}, target, joinCol, filterCol string, id uint, preloads ...string) error {
	return b.observe(ctx, method, func(ctx context.Context) error {
		q := b.db.WithContext(ctx).
			Joins(fmt.Sprintf("JOIN %s ON %s.%s = %s.id", b.table, b.table, joinCol, target)).
			Where(fmt.Sprintf("%s.%s = ?", b.table, filterCol), id).
			Order(target + ".id")
		for _, p := range preloads {
			q = q.Preload(p)
		}
		if err := q.Find(dest).Error; err != nil {
			return b.readErr(ctx, method, b.table, id, err)
		}
		return nil
	})
}
