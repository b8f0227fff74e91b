// Package achievement tracks one-way milestone unlocks over enhanced
// city metrics. An achievement that has unlocked stays unlocked even
// if the metrics later fall back below its threshold.
package achievement

import (
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/analytics"
)

// Condition reports whether an achievement's requirement is met for
// the given snapshot.
type Condition func(analytics.Enhanced) bool

// Achievement is a named milestone with its unlock state.
type Achievement struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Unlocked    bool   `json:"unlocked"`

	condition Condition
}

// Definitions returns the full achievement list, all locked. Callers
// get a fresh slice each time.
func Definitions() []Achievement {
	return []Achievement{
		{
			ID:          "green-thumbs",
			Name:        "Green Thumbs",
			Description: "Place 5 or more parks in your city",
			Icon:        "🌳",
			condition:   func(e analytics.Enhanced) bool { return e.ParkCount >= 5 },
		},
		{
			ID:          "renewable-future",
			Name:        "Renewable Future",
			Description: "Generate more than 50% of your energy from renewable sources",
			Icon:        "☀️",
			condition:   func(e analytics.Enhanced) bool { return e.RenewableEnergyPercentage >= 50 },
		},
		{
			ID:          "water-saver",
			Name:        "Water Guardian",
			Description: "Reduce water consumption by 30% through efficient buildings",
			Icon:        "💧",
			condition:   func(e analytics.Enhanced) bool { return e.WaterEfficiency >= 30 },
		},
		{
			ID:          "carbon-neutral",
			Name:        "Carbon Neutral",
			Description: "Achieve net-zero carbon emissions in your city",
			Icon:        "🌱",
			condition:   func(e analytics.Enhanced) bool { return e.Emissions <= 0 },
		},
		{
			ID:          "happy-citizens",
			Name:        "Happy Citizens",
			Description: "Reach a happiness score of 80 or higher",
			Icon:        "😊",
			condition:   func(e analytics.Enhanced) bool { return e.Happiness >= 80 },
		},
		{
			ID:          "master-planner",
			Name:        "Master Planner",
			Description: "Build a city with a sustainability score of 90 or higher",
			Icon:        "🏆",
			condition:   func(e analytics.Enhanced) bool { return e.SustainabilityScore >= 90 },
		},
		{
			ID:          "eco-architect",
			Name:        "Eco Architect",
			Description: "Place at least 15 different types of buildings",
			Icon:        "🏢",
			condition:   func(e analytics.Enhanced) bool { return e.UniqueBuildingTypes >= 15 },
		},
		{
			ID:          "traffic-manager",
			Name:        "Traffic Manager",
			Description: "Keep traffic congestion below 20 despite having a large population",
			Icon:        "🚦",
			condition:   func(e analytics.Enhanced) bool { return e.Traffic <= 20 && e.Population >= 1000 },
		},
		{
			ID:          "green-grid",
			Name:        "Green Grid",
			Description: "Place at least 10 solar panels in your city",
			Icon:        "🔋",
			condition:   func(e analytics.Enhanced) bool { return e.SolarPanelCount >= 10 },
		},
		{
			ID:          "clean-air-initiative",
			Name:        "Clean Air Initiative",
			Description: "Reduce emissions by 50% from your initial city design",
			Icon:        "💨",
			condition:   func(e analytics.Enhanced) bool { return e.EmissionsReduction >= 50 },
		},
		{
			ID:          "urban-planner",
			Name:        "Urban Planner",
			Description: "Create a city with at least 100 buildings",
			Icon:        "🏙️",
			condition:   func(e analytics.Enhanced) bool { return e.TotalBuildingCount >= 100 },
		},
		{
			ID:          "balance-master",
			Name:        "Balance Master",
			Description: "Maintain equal distribution of residential, commercial, and industrial zones",
			Icon:        "⚖️",
			condition:   func(e analytics.Enhanced) bool { return e.ZoneBalanceScore >= 80 },
		},
		{
			ID:          "disaster-survivor",
			Name:        "Disaster Survivor",
			Description: "Successfully recover from 3 or more natural disasters",
			Icon:        "🌪️",
			condition:   func(e analytics.Enhanced) bool { return e.DisastersSurvived >= 3 },
		},
		{
			ID:          "road-network",
			Name:        "Road Network",
			Description: "Build a comprehensive road network with at least 20 road segments",
			Icon:        "🛣️",
			condition:   func(e analytics.Enhanced) bool { return e.RoadSegments >= 20 },
		},
		{
			ID:          "economic-marvel",
			Name:        "Economic Marvel",
			Description: "Achieve an economic strength score above 90",
			Icon:        "💰",
			condition:   func(e analytics.Enhanced) bool { return e.Economy >= 90 },
		},
		{
			ID:          "futuristic-city",
			Name:        "Futuristic City",
			Description: "Implement at least 5 advanced technology buildings",
			Icon:        "🔬",
			condition:   func(e analytics.Enhanced) bool { return e.AdvancedTechBuildingCount >= 5 },
		},
	}
}

// Check evaluates every achievement against the snapshot and returns
// the updated list. Already unlocked achievements stay unlocked
// regardless of the snapshot. A condition that panics counts as not
// met for this pass; the remaining achievements are still evaluated.
func Check(current []Achievement, e analytics.Enhanced) []Achievement {
	unlocked := make(map[string]bool, len(current))
	for _, a := range current {
		if a.Unlocked {
			unlocked[a.ID] = true
		}
	}

	defs := Definitions()
	for i := range defs {
		defs[i].Unlocked = unlocked[defs[i].ID] || evaluate(defs[i].condition, e)
	}
	return defs
}

func evaluate(c Condition, e analytics.Enhanced) (met bool) {
	if c == nil {
		return false
	}
	defer func() {
		if r := recover(); r != nil {
			met = false
		}
	}()
	return c(e)
}

// NewlyUnlocked returns the achievements unlocked in cur that were
// not unlocked in prev, in definition order.
func NewlyUnlocked(prev, cur []Achievement) []Achievement {
	was := make(map[string]bool, len(prev))
	for _, a := range prev {
		was[a.ID] = a.Unlocked
	}

	var fresh []Achievement
	for _, a := range cur {
		if a.Unlocked && !was[a.ID] {
			fresh = append(fresh, a)
		}
	}
	return fresh
}
