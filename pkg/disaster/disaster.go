// Package disaster implements the natural disaster simulator: a per-year
// probabilistic state machine producing, aging, and retiring disaster
// events, plus the disaster stage of the modifier pipeline.
package disaster

import (
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/season"
)

// Type identifies a disaster kind.
type Type string

const (
	Flood    Type = "flood"
	HeatWave Type = "heat-wave"
	Storm    Type = "storm"
	Drought  Type = "drought"
	Wildfire Type = "wildfire"
)

// Modifiers multiplies every metric field while the disaster is active.
type Modifiers struct {
	Emissions float64 `json:"emissions"`
	Energy    float64 `json:"energy"`
	Water     float64 `json:"water"`
	Heat      float64 `json:"heat"`
	Happiness float64 `json:"happiness"`
	Traffic   float64 `json:"traffic"`
}

// Disaster is a time-bounded event perturbing the city's metrics.
type Disaster struct {
	Type        Type   `json:"type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`

	// Duration is the event's total length in simulated years;
	// RemainingDuration counts down to retirement.
	Duration          int `json:"duration"`
	RemainingDuration int `json:"remainingDuration"`

	Impact Modifiers `json:"impactModifiers"`

	// AffectedCategories records which building categories the event
	// notionally hits. Modifiers are applied globally regardless; the field
	// is display metadata for alerts.
	AffectedCategories []catalog.Category `json:"affectedCategories"`
}

// State is the simulator's persistent state across yearly ticks.
type State struct {
	Active           []Disaster `json:"activeDisasters"`
	History          []Disaster `json:"disasterHistory"`
	LastDisasterYear int        `json:"lastDisasterYear,omitempty"`

	// BaseChance is the fallback per-year probability when no seasonal
	// base applies.
	BaseChance float64 `json:"disasterChance"`
}

// DefaultState returns the initial simulator state.
func DefaultState() State {
	return State{BaseChance: 0.05}
}

// Rand is the injected randomness source: Float64 in [0,1) for the
// occurrence roll, Intn for candidate selection. *math/rand.Rand
// satisfies it; tests use a scripted fake.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// Probability thresholds. Emissions and heat operate on the raw
// (pre-normalization) accumulation scale.
const (
	highEmissionsThreshold = 500.0
	highHeatThreshold      = 300.0

	minChance = 0.01
	maxChance = 0.25
)

// seasonalBase is the per-season starting probability.
var seasonalBase = map[season.Season]float64{
	season.Spring: 0.05,
	season.Summer: 0.08,
	season.Fall:   0.04,
	season.Winter: 0.07,
}

// Probability computes this tick's chance of a new disaster. It starts
// from the seasonal base, rises with high emissions and with extreme heat
// in summer, falls with the grid's greenspace share, and clamps to
// [0.01, 0.25].
func Probability(g *grid.Grid, s season.Season, m metrics.Metrics, base float64) float64 {
	chance, ok := seasonalBase[s]
	if !ok {
		chance = base
	}

	if m.Emissions > highEmissionsThreshold {
		chance += 0.05
	}
	if s == season.Summer && m.Heat > highHeatThreshold {
		chance += 0.10
	}

	if g != nil {
		buildings := g.Buildings()
		if len(buildings) > 0 {
			green := 0
			for _, cell := range buildings {
				if cell.Building.Category == catalog.CategoryGreenspace {
					green++
				}
			}
			chance -= float64(green) / float64(len(buildings)) / 5
		}
	}

	if chance < minChance {
		chance = minChance
	}
	if chance > maxChance {
		chance = maxChance
	}
	return chance
}

// candidates returns the season-conditioned disaster types eligible this
// tick, falling back to the full set when no condition matches.
func candidates(s season.Season, m metrics.Metrics) []Type {
	var out []Type
	switch {
	case s == season.Summer && m.Heat > 200:
		out = []Type{HeatWave, Drought, Wildfire}
	case s == season.Spring && m.Water > 200:
		out = []Type{Flood, Storm}
	case s == season.Fall:
		out = []Type{Storm, Wildfire}
	case s == season.Winter:
		out = []Type{Storm}
	}
	if len(out) == 0 {
		out = []Type{Flood, Storm, HeatWave, Drought, Wildfire}
	}
	return out
}

// Tick advances the simulator by one simulated year: ages and retires
// active disasters, then rolls for a new one only if none remain active.
// The prior state is never mutated; a new state is returned.
func Tick(g *grid.Grid, s season.Season, m metrics.Metrics, currentYear int, prior State, rng Rand) State {
	next := State{
		Active:           make([]Disaster, 0, len(prior.Active)),
		History:          append([]Disaster(nil), prior.History...),
		LastDisasterYear: prior.LastDisasterYear,
		BaseChance:       prior.BaseChance,
	}

	// Stage 1: age, then retire anything that ran out.
	for _, d := range prior.Active {
		d.RemainingDuration--
		if d.RemainingDuration > 0 {
			next.Active = append(next.Active, d)
		}
	}

	// Stage 2: at most one disaster at a time in the default flow.
	if len(next.Active) > 0 {
		return next
	}

	chance := Probability(g, s, m, prior.BaseChance)
	if rng.Float64() >= chance {
		return next
	}

	pool := candidates(s, m)
	template := Template(pool[rng.Intn(len(pool))])
	template.RemainingDuration = template.Duration

	next.Active = append(next.Active, template)
	next.History = append(next.History, template)
	next.LastDisasterYear = currentYear
	return next
}

// Apply is the disaster stage of the modifier pipeline. Every active
// disaster's modifiers multiply all six metric fields, folded in list
// order. Returns a new snapshot; the input is never mutated.
func Apply(m metrics.Metrics, active []Disaster) metrics.Metrics {
	out := m
	for _, d := range active {
		out.Emissions *= d.Impact.Emissions
		out.Energy *= d.Impact.Energy
		out.Water *= d.Impact.Water
		out.Heat *= d.Impact.Heat
		out.Happiness *= d.Impact.Happiness
		out.Traffic *= d.Impact.Traffic
	}
	return out
}
