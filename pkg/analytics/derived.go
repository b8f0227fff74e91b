// Package analytics computes secondary indicators from the grid and the
// post-pipeline metrics snapshot: zone balance, traffic level, renewable
// share, service scores, and the sustainability score. Every function here
// is a deterministic pure function of its inputs.
package analytics

import (
	"math"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
)

// Canonical zone balance targets as shares of zoned (R+C+I) buildings.
const (
	TargetResidentialShare = 0.50
	TargetCommercialShare  = 0.30
	TargetIndustrialShare  = 0.20
)

// Scoring constants.
const (
	emissionsBaseline = 100.0 // assumed new-city emissions level

	educationBase      = 20.0
	educationPerSchool = 15.0
	healthcareBase     = 15.0
	healthcarePerSite  = 20.0

	waterEfficiencyPerPlant = 10.0

	economyPerCommercial = 5.0
	economyPerIndustrial = 7.0
)

// Enhance computes the full derived snapshot. m is the post-pipeline
// metrics vector; disastersSurvived counts disasters that have run their
// course.
// The total population stays pinned to 0 in this build.
func Enhance(g *grid.Grid, m metrics.Metrics, disastersSurvived int) Enhanced {
	c := TakeCensus(g)

	out := Enhanced{
		Metrics:                   m,
		ParkCount:                 c.Parks,
		SolarPanelCount:           c.SolarPanels,
		RoadSegments:              c.Roads,
		AdvancedTechBuildingCount: c.AdvancedTech,
		TotalBuildingCount:        c.Total,
		UniqueBuildingTypes:       c.UniqueTypes,
		RenewableEnergyPercentage: RenewablePercentage(c),
		WaterEfficiency:           WaterEfficiency(c),
		SustainabilityScore:       SustainabilityScore(m),
		ZoneBalanceScore:          ZoneBalance(c.Residential, c.Commercial, c.Industrial),
		EmissionsReduction:        EmissionsReduction(m.Emissions),
		EducationScore:            EducationScore(c),
		HealthcareScore:           HealthcareScore(c),
		Economy:                   EconomyScore(c),
		DisastersSurvived:         disastersSurvived,
	}
	out.Traffic = TrafficLevel(g)
	return out
}

// ZoneBalance scores how close the residential/commercial/industrial mix
// is to the 50/30/20 target split. 100 is a perfect match; an empty zoned
// mix scores 0.
func ZoneBalance(residential, commercial, industrial int) float64 {
	total := residential + commercial + industrial
	if total == 0 {
		return 0
	}

	rDev := math.Abs(float64(residential)/float64(total) - TargetResidentialShare)
	cDev := math.Abs(float64(commercial)/float64(total) - TargetCommercialShare)
	iDev := math.Abs(float64(industrial)/float64(total) - TargetIndustrialShare)

	return metrics.Clamp(100 - (rDev+cDev+iDev)*100)
}

// TrafficLevel maps the road-to-building ratio onto a congestion score via
// a decreasing step function. No buildings means no traffic; buildings
// with no roads at all means gridlock.
func TrafficLevel(g *grid.Grid) float64 {
	c := TakeCensus(g)
	buildings := c.Total - c.Roads
	if buildings <= 0 {
		return 0
	}
	if c.Roads == 0 {
		return 100
	}

	ratio := float64(c.Roads) / float64(buildings)
	switch {
	case ratio < 0.1:
		return 95
	case ratio < 0.2:
		return 80
	case ratio < 0.3:
		return 60
	case ratio < 0.4:
		return 40
	case ratio < 0.5:
		return 20
	case ratio < 0.6:
		return 10
	default:
		return 15
	}
}

// RenewablePercentage is the renewable share of all energy-producing
// buildings, or 0 when the city has none.
func RenewablePercentage(c Census) float64 {
	total := c.Renewable + c.Fossil
	if total == 0 {
		return 0
	}
	return float64(c.Renewable) / float64(total) * 100
}

// WaterEfficiency credits 10 points per water treatment plant, capped
// at 100.
func WaterEfficiency(c Census) float64 {
	return math.Min(100, float64(c.WaterPlants)*waterEfficiencyPerPlant)
}

// EducationScore is a base offset plus a fixed bonus per school,
// university, or library, capped at 100.
func EducationScore(c Census) float64 {
	return math.Min(100, educationBase+float64(c.Education)*educationPerSchool)
}

// HealthcareScore is a base offset plus a fixed bonus per hospital or
// clinic, capped at 100.
func HealthcareScore(c Census) float64 {
	return math.Min(100, healthcareBase+float64(c.Healthcare)*healthcarePerSite)
}

// EmissionsReduction is the percentage drop of current emissions from the
// assumed 100-point baseline, clamped to [0, 100].
func EmissionsReduction(emissions float64) float64 {
	return metrics.Clamp((emissionsBaseline - emissions) / emissionsBaseline * 100)
}

// EconomyScore weights commercial and industrial activity, capped at 100.
func EconomyScore(c Census) float64 {
	return math.Min(100, float64(c.Commercial)*economyPerCommercial+float64(c.Industrial)*economyPerIndustrial)
}

// SustainabilityScore condenses emissions and heat into a single headline
// number in [0, 100].
func SustainabilityScore(m metrics.Metrics) float64 {
	return 100 - math.Min(100, m.Emissions/2+m.Heat*10)
}
