// Package cost tallies what a city has spent on building upgrades.
package cost

import (
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/upgrade"
)

// Line is the spend on one upgrade type across the whole city.
type Line struct {
	UpgradeID string  `json:"upgrade_id"`
	Name      string  `json:"name"`
	Installs  int     `json:"installs"`
	UnitCost  float64 `json:"unit_cost"`
	Total     float64 `json:"total"`
}

// Report is the complete upgrade spend output.
type Report struct {
	Lines []Line  `json:"lines"`
	Total float64 `json:"total"`

	// Installed counts every upgrade installation, including any
	// whose id is no longer in the catalog.
	Installed int `json:"installed"`
}

// Estimate walks the grid and prices every installed upgrade against
// the catalog. Upgrades missing from the catalog count as installed
// but contribute no cost.
func Estimate(g *grid.Grid, upgrades *upgrade.Catalog) *Report {
	if upgrades == nil {
		upgrades = upgrade.Default()
	}

	installs := map[string]int{}
	total := 0
	if g != nil {
		for _, cell := range g.Buildings() {
			for _, id := range cell.Building.Upgrades {
				installs[id]++
				total++
			}
		}
	}

	r := &Report{Installed: total}
	for _, u := range upgrades.Upgrades {
		n := installs[u.ID]
		if n == 0 {
			continue
		}
		line := Line{
			UpgradeID: u.ID,
			Name:      u.Name,
			Installs:  n,
			UnitCost:  u.Cost,
			Total:     u.Cost * float64(n),
		}
		r.Lines = append(r.Lines, line)
		r.Total += line.Total
	}
	return r
}
