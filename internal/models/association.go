// Package models contains data structures for the application's domain models.
package models

// Junction rows. Each pair is its own composite primary key, so a pair can
// exist at most once. Rows are removed with either side.

// UserPlanetFavorite records that a user favorited a planet.
type UserPlanetFavorite struct {
	UserID   uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	PlanetID uint `gorm:"primaryKey;autoIncrement:false;index" json:"planet_id"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Planet *Planet `gorm:"foreignKey:PlanetID;constraint:OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for GORM
func (UserPlanetFavorite) TableName() string {
	return "user_planet_favorites"
}

// UserCharacterFavorite records that a user favorited a character.
type UserCharacterFavorite struct {
	UserID      uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	CharacterID uint `gorm:"primaryKey;autoIncrement:false;index" json:"character_id"`

	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for GORM
func (UserCharacterFavorite) TableName() string {
	return "user_character_favorites"
}

// UserVehicleFavorite records that a user favorited a vehicle.
type UserVehicleFavorite struct {
	UserID    uint `gorm:"primaryKey;autoIncrement:false" json:"user_id"`
	VehicleID uint `gorm:"primaryKey;autoIncrement:false;index" json:"vehicle_id"`

	User    *User    `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;" json:"-"`
	Vehicle *Vehicle `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for GORM
func (UserVehicleFavorite) TableName() string {
	return "user_vehicle_favorites"
}

// CharacterVehicle records that a character pilots a vehicle.
type CharacterVehicle struct {
	CharacterID uint `gorm:"primaryKey;autoIncrement:false" json:"character_id"`
	VehicleID   uint `gorm:"primaryKey;autoIncrement:false;index" json:"vehicle_id"`

	Character *Character `gorm:"foreignKey:CharacterID;constraint:OnDelete:CASCADE;" json:"-"`
	Vehicle   *Vehicle   `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE;" json:"-"`
}

// TableName specifies the table name for GORM
func (CharacterVehicle) TableName() string {
	return "character_vehicle_association"
}
