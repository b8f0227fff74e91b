// Package upgrade implements the building upgrade system: eligibility rules,
// copy-on-write application, and multiplicative impact folding.
package upgrade

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
)

// Multipliers scale a building's base impact vector. 1.0 is identity;
// values below 1.0 reduce the corresponding metric contribution.
type Multipliers struct {
	Emissions float64 `yaml:"emissions" json:"emissions"`
	Energy    float64 `yaml:"energy" json:"energy"`
	Water     float64 `yaml:"water" json:"water"`
	Heat      float64 `yaml:"heat" json:"heat"`
	Happiness float64 `yaml:"happiness" json:"happiness"`
}

// Upgrade is a purchasable improvement applicable to placed buildings.
type Upgrade struct {
	ID          string             `yaml:"id" json:"id"`
	Name        string             `yaml:"name" json:"name"`
	Description string             `yaml:"description" json:"description"`
	Cost        float64            `yaml:"cost" json:"cost"`
	Buildings   []string           `yaml:"applicable_buildings" json:"applicable_buildings"`
	Categories  []catalog.Category `yaml:"applicable_categories" json:"applicable_categories"`
	Impact      Multipliers        `yaml:"impact" json:"impact"`
	Icon        string             `yaml:"icon,omitempty" json:"icon,omitempty"`

	// RequiresYear gates the upgrade until the given simulation year.
	// Zero means always available.
	RequiresYear int `yaml:"requires_year,omitempty" json:"requires_year,omitempty"`
}

// Catalog is an indexed set of upgrade definitions.
type Catalog struct {
	Upgrades []Upgrade
	byID     map[string]Upgrade
}

//go:embed upgrades.yaml
var defaultUpgrades []byte

// Default returns the built-in upgrade catalog.
func Default() *Catalog {
	c, err := Parse(defaultUpgrades)
	if err != nil {
		panic(fmt.Sprintf("embedded upgrade catalog invalid: %v", err))
	}
	return c
}

// Load reads an upgrade catalog from a YAML file.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading upgrade catalog: %w", err)
	}
	return Parse(data)
}

// Parse builds an upgrade catalog from YAML bytes.
func Parse(data []byte) (*Catalog, error) {
	var doc struct {
		Upgrades []Upgrade `yaml:"upgrades"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing upgrade YAML: %w", err)
	}
	c := &Catalog{
		Upgrades: doc.Upgrades,
		byID:     make(map[string]Upgrade, len(doc.Upgrades)),
	}
	for _, u := range doc.Upgrades {
		if u.ID == "" {
			return nil, fmt.Errorf("upgrade with empty id (name %q)", u.Name)
		}
		if _, dup := c.byID[u.ID]; dup {
			return nil, fmt.Errorf("duplicate upgrade id %q", u.ID)
		}
		c.byID[u.ID] = u
	}
	return c, nil
}

// Get returns the upgrade definition for id.
func (c *Catalog) Get(id string) (Upgrade, bool) {
	u, ok := c.byID[id]
	return u, ok
}

// CanUpgrade reports whether the upgrade may be applied to the building in
// the given simulation year. It is false when the building already carries
// the upgrade, when neither the category nor the explicit building
// allowlist matches, or when the year gate is not met.
func CanUpgrade(b catalog.Building, u Upgrade, currentYear int) bool {
	if b.HasUpgrade(u.ID) {
		return false
	}

	applicable := false
	for _, cat := range u.Categories {
		if cat == b.Category {
			applicable = true
			break
		}
	}
	if !applicable {
		for _, id := range u.Buildings {
			if id == b.ID {
				applicable = true
				break
			}
		}
	}
	if !applicable {
		return false
	}

	if u.RequiresYear > 0 && currentYear < u.RequiresYear {
		return false
	}
	return true
}

// Apply returns a copy of the building with the upgrade id appended. The
// input is never mutated. Callers are expected to guard with CanUpgrade;
// Apply itself does not re-check eligibility.
func Apply(b catalog.Building, upgradeID string) catalog.Building {
	out := b
	out.Upgrades = make([]string, 0, len(b.Upgrades)+1)
	out.Upgrades = append(out.Upgrades, b.Upgrades...)
	out.Upgrades = append(out.Upgrades, upgradeID)
	return out
}

// FoldImpact multiplies the building's base impact by every applied
// upgrade's multipliers, left to right over the stored list. Unknown
// upgrade ids are treated as identity so evolving catalogs never break
// metric computation.
func (c *Catalog) FoldImpact(b catalog.Building) catalog.Impact {
	impact := b.Impact
	for _, id := range b.Upgrades {
		u, ok := c.byID[id]
		if !ok {
			continue
		}
		impact.Emissions *= u.Impact.Emissions
		impact.Energy *= u.Impact.Energy
		impact.Water *= u.Impact.Water
		impact.Heat *= u.Impact.Heat
		impact.Happiness *= u.Impact.Happiness
	}
	return impact
}

// Available returns the upgrades applicable to the building this year.
func (c *Catalog) Available(b catalog.Building, currentYear int) []Upgrade {
	var out []Upgrade
	for _, u := range c.Upgrades {
		if CanUpgrade(b, u, currentYear) {
			out = append(out, u)
		}
	}
	return out
}
