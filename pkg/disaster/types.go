package disaster

import "github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"

// templates holds the fixed definition of each disaster type.
var templates = map[Type]Disaster{
	Flood: {
		Type:        Flood,
		Name:        "Flood",
		Description: "Rising water levels have caused flooding in low-lying areas",
		Icon:        "🌊",
		Duration:    2,
		Impact: Modifiers{
			Emissions: 0.9,
			Energy:    0.7,
			Water:     1.5,
			Heat:      0.8,
			Happiness: 0.6,
			Traffic:   0.5,
		},
		AffectedCategories: []catalog.Category{
			catalog.CategoryResidential, catalog.CategoryCommercial, catalog.CategoryIndustrial,
		},
	},
	HeatWave: {
		Type:        HeatWave,
		Name:        "Heat Wave",
		Description: "Extreme temperatures are straining energy systems and affecting residents",
		Icon:        "🔥",
		Duration:    1,
		Impact: Modifiers{
			Emissions: 1.2,
			Energy:    1.5,
			Water:     1.4,
			Heat:      2.0,
			Happiness: 0.7,
			Traffic:   0.8,
		},
		AffectedCategories: []catalog.Category{
			catalog.CategoryResidential, catalog.CategoryGreenspace, catalog.CategoryAgricultural,
		},
	},
	Storm: {
		Type:        Storm,
		Name:        "Severe Storm",
		Description: "Strong winds and rain are causing damage to infrastructure",
		Icon:        "⛈️",
		Duration:    1,
		Impact: Modifiers{
			Emissions: 0.8,
			Energy:    0.6,
			Water:     1.3,
			Heat:      0.9,
			Happiness: 0.7,
			Traffic:   0.6,
		},
		AffectedCategories: []catalog.Category{
			catalog.CategoryInfrastructure, catalog.CategoryCommercial, catalog.CategoryResidential,
		},
	},
	Drought: {
		Type:        Drought,
		Name:        "Drought",
		Description: "Water shortages are affecting agriculture and quality of life",
		Icon:        "🏜️",
		Duration:    3,
		Impact: Modifiers{
			Emissions: 1.0,
			Energy:    1.1,
			Water:     0.4,
			Heat:      1.3,
			Happiness: 0.8,
			Traffic:   1.0,
		},
		AffectedCategories: []catalog.Category{
			catalog.CategoryAgricultural, catalog.CategoryGreenspace, catalog.CategoryResidential,
		},
	},
	Wildfire: {
		Type:        Wildfire,
		Name:        "Wildfire",
		Description: "Fires are threatening areas of the city and reducing air quality",
		Icon:        "🔥",
		Duration:    2,
		Impact: Modifiers{
			Emissions: 1.5,
			Energy:    0.9,
			Water:     0.7,
			Heat:      1.4,
			Happiness: 0.5,
			Traffic:   0.7,
		},
		AffectedCategories: []catalog.Category{
			catalog.CategoryGreenspace, catalog.CategoryAgricultural, catalog.CategoryResidential,
		},
	},
}

// Template returns a fresh copy of the definition for the given type.
// RemainingDuration is zero on the returned value; the simulator sets it
// at creation.
func Template(t Type) Disaster {
	d := templates[t]
	d.AffectedCategories = append([]catalog.Category(nil), d.AffectedCategories...)
	return d
}

// Types lists every disaster type.
func Types() []Type {
	return []Type{Flood, HeatWave, Storm, Drought, Wildfire}
}
