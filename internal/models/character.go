// Package models contains data structures for the application's domain models.
package models

// Character is a person in the catalog with an optional home world.
type Character struct {
	ID             uint    `gorm:"primaryKey" json:"id"`
	Name           string  `gorm:"size:100;not null;uniqueIndex;check:chk_characters_name_present,name <> ''" json:"name"`
	Gender         string  `gorm:"size:20" json:"gender"`
	BirthYear      string  `gorm:"size:20" json:"birth_year"`
	OriginPlanetID *uint   `gorm:"index" json:"origin_planet_id"`
	OriginPlanet   *Planet `gorm:"foreignKey:OriginPlanetID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"origin_planet,omitempty"`
}

// Serialize returns the public projection of the character.
// origin_planet is the planet name, or nil when the character has no recorded origin.
// OriginPlanet must be loaded when OriginPlanetID is set.
func (c *Character) Serialize() map[string]any {
	var origin any
	if c.OriginPlanet != nil {
		origin = c.OriginPlanet.Name
	}
	return map[string]any{
		"id":            c.ID,
		"name":          c.Name,
		"gender":        c.Gender,
		"birth_year":    c.BirthYear,
		"origin_planet": origin,
	}
}
