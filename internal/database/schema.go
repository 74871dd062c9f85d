package database

import (
	"context"
	"fmt"

	"holonet/internal/models"
	"holonet/internal/observability"

	"gorm.io/gorm"
)

// PersistentModels returns the authoritative set of schema-managed GORM models.
// Junction tables are listed after the entities they reference.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Planet{},
		&models.Character{},
		&models.Vehicle{},
		&models.Post{},
		&models.UserPlanetFavorite{},
		&models.UserCharacterFavorite{},
		&models.UserVehicleFavorite{},
		&models.CharacterVehicle{},
	}
}

// JunctionTables lists the association tables, keyed by their composite identity.
func JunctionTables() []string {
	return []string{
		models.UserPlanetFavorite{}.TableName(),
		models.UserCharacterFavorite{}.TableName(),
		models.UserVehicleFavorite{}.TableName(),
		models.CharacterVehicle{}.TableName(),
	}
}

// Migrate creates or updates every table, index and constraint in the schema.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(PersistentModels()...); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	observability.Logger.InfoContext(ctx, "Database schema applied")
	return nil
}

// TableNames returns every schema-managed table, children first, for truncation.
func TableNames() []string {
	names := append([]string{}, JunctionTables()...)
	return append(names, "posts", "characters", "vehicles", "planets", "users")
}
