package seed

import (
	_ "embed"
	"fmt"

	"holonet/internal/models"

	"gopkg.in/yaml.v3"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Catalog is the fixed reference data: planets, vehicles and the characters
// that come from and pilot them.
type Catalog struct {
	Planets    []PlanetEntry    `yaml:"planets"`
	Vehicles   []VehicleEntry   `yaml:"vehicles"`
	Characters []CharacterEntry `yaml:"characters"`
}

// PlanetEntry is one planet in the catalog.
type PlanetEntry struct {
	Name       string `yaml:"name"`
	Climate    string `yaml:"climate"`
	Terrain    string `yaml:"terrain"`
	Population string `yaml:"population"`
}

// VehicleEntry is one vehicle in the catalog.
type VehicleEntry struct {
	Name          string `yaml:"name"`
	Model         string `yaml:"model"`
	Manufacturer  string `yaml:"manufacturer"`
	CostInCredits string `yaml:"cost_in_credits"`
	Length        string `yaml:"length"`
	Crew          string `yaml:"crew"`
	Passengers    string `yaml:"passengers"`
	VehicleClass  string `yaml:"vehicle_class"`
}

// CharacterEntry is one character. Origin and Vehicles refer to catalog names.
type CharacterEntry struct {
	Name      string   `yaml:"name"`
	Gender    string   `yaml:"gender"`
	BirthYear string   `yaml:"birth_year"`
	Origin    string   `yaml:"origin"`
	Vehicles  []string `yaml:"vehicles"`
}

// DefaultCatalog returns the embedded catalog.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalog)
}

// ParseCatalog decodes a YAML catalog and checks that every origin and
// vehicle reference names an entry in the same catalog.
func ParseCatalog(data []byte) (*Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(data, &c); err != nil {
		return nil, fmt.Errorf("parse catalog: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c *Catalog) validate() error {
	planets := make(map[string]bool, len(c.Planets))
	for _, p := range c.Planets {
		if p.Name == "" {
			return fmt.Errorf("catalog: planet without a name")
		}
		planets[p.Name] = true
	}
	vehicles := make(map[string]bool, len(c.Vehicles))
	for _, v := range c.Vehicles {
		if v.Name == "" {
			return fmt.Errorf("catalog: vehicle without a name")
		}
		vehicles[v.Name] = true
	}
	for _, ch := range c.Characters {
		if ch.Name == "" {
			return fmt.Errorf("catalog: character without a name")
		}
		if ch.Origin != "" && !planets[ch.Origin] {
			return fmt.Errorf("catalog: %s: unknown origin planet %q", ch.Name, ch.Origin)
		}
		for _, v := range ch.Vehicles {
			if !vehicles[v] {
				return fmt.Errorf("catalog: %s: unknown vehicle %q", ch.Name, v)
			}
		}
	}
	return nil
}

func (p PlanetEntry) model() *models.Planet {
	return &models.Planet{Name: p.Name, Climate: p.Climate, Terrain: p.Terrain, Population: p.Population}
}

func (v VehicleEntry) model() *models.Vehicle {
	return &models.Vehicle{
		Name:          v.Name,
		Model:         v.Model,
		Manufacturer:  v.Manufacturer,
		CostInCredits: v.CostInCredits,
		Length:        v.Length,
		Crew:          v.Crew,
		Passengers:    v.Passengers,
		VehicleClass:  v.VehicleClass,
	}
}
