// Package catalog holds the static building registry: categories, footprints,
// and base environmental impact vectors. Everything else in the simulation
// resolves buildings through a Catalog value instead of a global table.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category classifies a building for zoning, scoring, and population purposes.
type Category string

const (
	CategoryResidential    Category = "residential"
	CategoryCommercial     Category = "commercial"
	CategoryIndustrial     Category = "industrial"
	CategoryInfrastructure Category = "infrastructure"
	CategoryGreenspace     Category = "greenspace"
	CategoryEntertainment  Category = "entertainment"
	CategoryAgricultural   Category = "agricultural"
	CategoryEducational    Category = "educational"
	CategoryHealthcare     Category = "healthcare"
)

// Categories lists every valid category.
var Categories = []Category{
	CategoryResidential,
	CategoryCommercial,
	CategoryIndustrial,
	CategoryInfrastructure,
	CategoryGreenspace,
	CategoryEntertainment,
	CategoryAgricultural,
	CategoryEducational,
	CategoryHealthcare,
}

// Valid reports whether c is one of the closed category set.
func (c Category) Valid() bool {
	for _, known := range Categories {
		if c == known {
			return true
		}
	}
	return false
}

// Impact is a signed environmental delta vector. Negative values are
// beneficial (a park removes emissions, a turbine offsets energy demand).
type Impact struct {
	Emissions float64 `yaml:"emissions" json:"emissions"`
	Energy    float64 `yaml:"energy" json:"energy"`
	Water     float64 `yaml:"water" json:"water"`
	Heat      float64 `yaml:"heat" json:"heat"`
	Happiness float64 `yaml:"happiness" json:"happiness"`
}

// Footprint is a building's occupied volume in grid cells.
type Footprint struct {
	Width  int `yaml:"width" json:"width"`
	Depth  int `yaml:"depth" json:"depth"`
	Height int `yaml:"height" json:"height"`
}

// Building is a catalog entry. Catalog entries are immutable; placed
// buildings are copies that may accumulate upgrade ids.
type Building struct {
	ID          string    `yaml:"id" json:"id"`
	Name        string    `yaml:"name" json:"name"`
	Description string    `yaml:"description" json:"description"`
	Category    Category  `yaml:"category" json:"category"`
	Size        Footprint `yaml:"size" json:"size"`
	Impact      Impact    `yaml:"impact" json:"impact"`
	Image       string    `yaml:"image,omitempty" json:"image,omitempty"`

	// Upgrades lists applied upgrade ids in application order. Always empty
	// on catalog entries; populated only on placed building values.
	Upgrades []string `yaml:"-" json:"upgrades,omitempty"`
}

// HasUpgrade reports whether the upgrade id is already applied.
func (b Building) HasUpgrade(id string) bool {
	for _, u := range b.Upgrades {
		if u == id {
			return true
		}
	}
	return false
}

// Catalog is an indexed set of building definitions.
type Catalog struct {
	Buildings []Building
	byID      map[string]Building
}

//go:embed buildings.yaml
var defaultBuildings []byte

// Default returns the built-in building catalog.
func Default() *Catalog {
	c, err := Parse(defaultBuildings)
	if err != nil {
		// The embedded catalog is validated by tests; a parse failure here
		// is a build defect, not a runtime condition.
		panic(fmt.Sprintf("embedded building catalog invalid: %v", err))
	}
	return c
}

// Load reads a building catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog file: %w", err)
	}
	return Parse(data)
}

// Parse builds a catalog from YAML bytes and validates every entry.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Buildings []Building `yaml:"buildings"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing catalog YAML: %w", err)
	}

	c := &Catalog{
		Buildings: doc.Buildings,
		byID:      make(map[string]Building, len(doc.Buildings)),
	}
	for _, b := range doc.Buildings {
		if err := validateBuilding(b); err != nil {
			return nil, err
		}
		if _, dup := c.byID[b.ID]; dup {
			return nil, fmt.Errorf("duplicate building id %q", b.ID)
		}
		c.byID[b.ID] = b
	}
	return c, nil
}

func validateBuilding(b Building) error {
	if b.ID == "" {
		return fmt.Errorf("building with empty id (name %q)", b.Name)
	}
	if !b.Category.Valid() {
		return fmt.Errorf("building %q: unknown category %q", b.ID, b.Category)
	}
	if b.Size.Width < 1 || b.Size.Depth < 1 || b.Size.Height < 1 {
		return fmt.Errorf("building %q: footprint dimensions must be positive, got %dx%dx%d",
			b.ID, b.Size.Width, b.Size.Depth, b.Size.Height)
	}
	return nil
}

// Get returns the building definition for id.
func (c *Catalog) Get(id string) (Building, bool) {
	b, ok := c.byID[id]
	return b, ok
}

// ByCategory returns every building in the given category, in catalog order.
func (c *Catalog) ByCategory(cat Category) []Building {
	var out []Building
	for _, b := range c.Buildings {
		if b.Category == cat {
			out = append(out, b)
		}
	}
	return out
}

// Len returns the number of catalog entries.
func (c *Catalog) Len() int { return len(c.Buildings) }
