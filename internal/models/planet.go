// Package models contains data structures for the application's domain models.
package models

// Planet is a world in the catalog. Free-text fields keep values such as "unknown".
type Planet struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	Name       string `gorm:"size:100;not null;uniqueIndex;check:chk_planets_name_present,name <> ''" json:"name"`
	Climate    string `gorm:"size:100" json:"climate"`
	Terrain    string `gorm:"size:100" json:"terrain"`
	Population string `gorm:"size:50" json:"population"`
}

// Serialize returns the public projection of the planet.
func (p *Planet) Serialize() map[string]any {
	return map[string]any{
		"id":         p.ID,
		"name":       p.Name,
		"climate":    p.Climate,
		"terrain":    p.Terrain,
		"population": p.Population,
	}
}
