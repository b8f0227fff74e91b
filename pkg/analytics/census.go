package analytics

import (
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
)

// Building id sets the derived metrics key off.
var (
	renewableIDs = map[string]bool{
		"solar-panel": true, "wind-turbine": true, "hydro-power": true,
	}
	fossilIDs = map[string]bool{
		"power-plant": true, "geothermal-plant": true,
	}
	roadIDs = map[string]bool{
		"road": true, "highway": true,
	}
	advancedTechIDs = map[string]bool{
		"smart-grid": true, "research-center": true, "eco-highrise": true,
	}
	educationIDs = map[string]bool{
		"school": true, "university": true, "library": true,
	}
	healthcareIDs = map[string]bool{
		"hospital": true, "clinic": true,
	}
)

// TakeCensus walks the grid once and tallies everything the derived
// metrics need. Cells without a resolvable building are skipped.
func TakeCensus(g *grid.Grid) Census {
	var c Census
	if g == nil {
		return c
	}
	types := make(map[string]bool)
	for _, cell := range g.Buildings() {
		b := cell.Building
		if b == nil {
			continue
		}
		c.Total++
		types[b.ID] = true

		switch b.Category {
		case catalog.CategoryResidential:
			c.Residential++
		case catalog.CategoryCommercial:
			c.Commercial++
		case catalog.CategoryIndustrial:
			c.Industrial++
		case catalog.CategoryGreenspace:
			c.Parks++
		}

		if renewableIDs[b.ID] {
			c.Renewable++
		}
		if fossilIDs[b.ID] {
			c.Fossil++
		}
		if roadIDs[b.ID] {
			c.Roads++
		}
		if advancedTechIDs[b.ID] {
			c.AdvancedTech++
		}
		if educationIDs[b.ID] {
			c.Education++
		}
		if healthcareIDs[b.ID] {
			c.Healthcare++
		}
		if b.ID == "solar-panel" {
			c.SolarPanels++
		}
		if b.ID == "water-treatment" {
			c.WaterPlants++
		}
	}
	c.UniqueTypes = len(types)
	return c
}
