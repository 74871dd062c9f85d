// Package models contains data structures for the application's domain models.
package models

// Vehicle is a craft in the catalog. Numeric-looking fields are stored as
// text so values like "unknown" or "n/a" survive unchanged.
type Vehicle struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	Name          string `gorm:"size:100;not null;uniqueIndex;check:chk_vehicles_name_present,name <> ''" json:"name"`
	Model         string `gorm:"size:100" json:"model"`
	Manufacturer  string `gorm:"size:100" json:"manufacturer"`
	CostInCredits string `gorm:"size:50" json:"cost_in_credits"`
	Length        string `gorm:"size:50" json:"length"`
	Crew          string `gorm:"size:50" json:"crew"`
	Passengers    string `gorm:"size:50" json:"passengers"`
	VehicleClass  string `gorm:"size:50" json:"vehicle_class"`
}

// Serialize returns the public projection of the vehicle.
func (v *Vehicle) Serialize() map[string]any {
	return map[string]any{
		"id":              v.ID,
		"name":            v.Name,
		"model":           v.Model,
		"manufacturer":    v.Manufacturer,
		"cost_in_credits": v.CostInCredits,
		"length":          v.Length,
		"crew":            v.Crew,
		"passengers":      v.Passengers,
		"vehicle_class":   v.VehicleClass,
	}
}
