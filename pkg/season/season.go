// Package season defines the four-season cycle and the seasonal stage of
// the modifier pipeline.
package season

import "github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"

// Season is one of the four seasons.
type Season string

const (
	Spring Season = "spring"
	Summer Season = "summer"
	Fall   Season = "fall"
	Winter Season = "winter"
)

// Impact holds a season's multiplicative modifiers. Happiness and traffic
// are untouched by season.
type Impact struct {
	Energy    float64 `json:"energyModifier"`
	Water     float64 `json:"waterModifier"`
	Emissions float64 `json:"emissionsModifier"`
	Heat      float64 `json:"heatModifier"`
}

// Data is a season's display metadata and modifier vector.
type Data struct {
	Name        Season `json:"name"`
	DisplayName string `json:"displayName"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Impact      Impact `json:"impact"`
}

var seasons = map[Season]Data{
	Spring: {
		Name:        Spring,
		DisplayName: "Spring",
		Description: "Moderate temperatures and rainfall. Good balance for most city systems.",
		Icon:        "🌱",
		Impact:      Impact{Energy: 0.9, Water: 1.1, Emissions: 0.95, Heat: 0.7},
	},
	Summer: {
		Name:        Summer,
		DisplayName: "Summer",
		Description: "Hot temperatures increase cooling costs but improve solar efficiency.",
		Icon:        "☀️",
		Impact:      Impact{Energy: 1.3, Water: 1.5, Emissions: 1.2, Heat: 1.8},
	},
	Fall: {
		Name:        Fall,
		DisplayName: "Fall",
		Description: "Cooling temperatures reduce energy usage but fallen leaves require maintenance.",
		Icon:        "🍂",
		Impact:      Impact{Energy: 0.85, Water: 0.9, Emissions: 0.9, Heat: 0.8},
	},
	Winter: {
		Name:        Winter,
		DisplayName: "Winter",
		Description: "Cold temperatures increase heating costs but reduce water usage.",
		Icon:        "❄️",
		Impact:      Impact{Energy: 1.4, Water: 0.7, Emissions: 1.3, Heat: 0.4},
	},
}

// order fixes the cyclical season progression.
var order = []Season{Spring, Summer, Fall, Winter}

// All returns the seasons in cycle order.
func All() []Season {
	return append([]Season(nil), order...)
}

// Get returns the data for a season.
func Get(s Season) (Data, bool) {
	d, ok := seasons[s]
	return d, ok
}

// Valid reports whether s is a known season.
func (s Season) Valid() bool {
	_, ok := seasons[s]
	return ok
}

// Next returns the season following s in the cycle. Unknown seasons map
// to Spring.
func Next(s Season) Season {
	for i, cur := range order {
		if cur == s {
			return order[(i+1)%len(order)]
		}
	}
	return Spring
}

// Apply is the seasonal stage of the modifier pipeline: it multiplies
// energy, water, emissions, and heat by the season's modifiers and returns
// a new snapshot. The input is never mutated. Unknown seasons are identity.
func Apply(m metrics.Metrics, s Season) metrics.Metrics {
	d, ok := seasons[s]
	if !ok {
		return m
	}
	out := m
	out.Energy = m.Energy * d.Impact.Energy
	out.Water = m.Water * d.Impact.Water
	out.Emissions = m.Emissions * d.Impact.Emissions
	out.Heat = m.Heat * d.Impact.Heat
	return out
}
