package analytics

import "github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"

// Enhanced is the derived-metrics snapshot computed from the grid and the
// post-pipeline metrics. It is the input to achievement evaluation and the
// metrics display.
type Enhanced struct {
	metrics.Metrics

	ParkCount                 int     `json:"park_count"`
	SolarPanelCount           int     `json:"solar_panel_count"`
	RoadSegments              int     `json:"road_segments"`
	AdvancedTechBuildingCount int     `json:"advanced_tech_building_count"`
	TotalBuildingCount        int     `json:"total_building_count"`
	UniqueBuildingTypes       int     `json:"unique_building_types"`
	RenewableEnergyPercentage float64 `json:"renewable_energy_percentage"`
	WaterEfficiency           float64 `json:"water_efficiency"`
	SustainabilityScore       float64 `json:"sustainability_score"`
	ZoneBalanceScore          float64 `json:"zone_balance_score"`
	EmissionsReduction        float64 `json:"emissions_reduction"`
	EducationScore            float64 `json:"education_score"`
	HealthcareScore           float64 `json:"healthcare_score"`
	Economy                   float64 `json:"economy"`
	DisastersSurvived         int     `json:"disasters_survived"`
	Population                int     `json:"population"`
}

// Census counts the grid contents relevant to scoring.
type Census struct {
	Residential  int
	Commercial   int
	Industrial   int
	Parks        int
	Roads        int
	SolarPanels  int
	AdvancedTech int
	Renewable    int
	Fossil       int
	WaterPlants  int
	Education    int
	Healthcare   int
	Total        int
	UniqueTypes  int
}
