// Package metrics computes the six-field environmental score vector from
// the city grid. Calculation sums signed base impacts (with upgrade
// multipliers folded in); the result is an unbounded raw snapshot that the
// modifier pipeline transforms and display consumers normalize.
package metrics

import (
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/upgrade"
)

// Metrics is the environmental score vector. Values are raw signed
// accumulations until Normalize is applied for display.
type Metrics struct {
	Emissions float64 `json:"emissions"`
	Energy    float64 `json:"energy"`
	Water     float64 `json:"water"`
	Heat      float64 `json:"heat"`
	Happiness float64 `json:"happiness"`
	Traffic   float64 `json:"traffic"`
}

// Calculator aggregates building impacts. The upgrade catalog is injected
// so impact folding never depends on a global table.
type Calculator struct {
	upgrades *upgrade.Catalog
}

// NewCalculator creates a calculator resolving upgrades against the given
// catalog. A nil catalog falls back to the default one.
func NewCalculator(upgrades *upgrade.Catalog) *Calculator {
	if upgrades == nil {
		upgrades = upgrade.Default()
	}
	return &Calculator{upgrades: upgrades}
}

// Calculate sums the impact vectors of every placed building. Upgrade
// multipliers are folded per building before summation. Traffic is not
// accumulated here; it is derived from road density downstream. Broken
// cells never abort the pass.
func (c *Calculator) Calculate(g *grid.Grid) Metrics {
	var m Metrics
	if g == nil {
		return m
	}
	for _, cell := range g.Buildings() {
		b := cell.Building
		if b == nil {
			continue
		}
		impact := c.upgrades.FoldImpact(*b)
		m.Emissions += impact.Emissions
		m.Energy += impact.Energy
		m.Water += impact.Water
		m.Heat += impact.Heat
		m.Happiness += impact.Happiness
	}
	return m
}

// Normalize clamps each field into [0, 100] for percentage display. The
// clamp is monotonic: it never reorders two snapshots.
func Normalize(m Metrics) Metrics {
	return Metrics{
		Emissions: Clamp(m.Emissions),
		Energy:    Clamp(m.Energy),
		Water:     Clamp(m.Water),
		Heat:      Clamp(m.Heat),
		Happiness: Clamp(m.Happiness),
		Traffic:   Clamp(m.Traffic),
	}
}

// Clamp bounds a single metric value to [0, 100].
func Clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
