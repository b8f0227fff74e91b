// Package population distributes a city's head count across zones and
// derives commuting and congestion figures from the layout.
package population

import (
	"math"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
)

const (
	jobsPerCommercialCell = 15
	jobsPerIndustrialCell = 8

	// Share of residents that hold a job inside the city.
	workingShare = 0.6

	// Each road segment shaves 5% off the commuter congestion figure,
	// up to an 80% reduction.
	roadReduction    = 0.05
	maxRoadReduction = 0.8
)

// Distribution splits the total population across zone types.
type Distribution struct {
	Residential int `json:"residential"`
	Commercial  int `json:"commercial"`
	Industrial  int `json:"industrial"`
	Parks       int `json:"parks"`
	Other       int `json:"other"`
}

// State is the population snapshot derived from a grid layout.
type State struct {
	Total        int          `json:"total"`
	Distribution Distribution `json:"distribution"`
	Density      float64      `json:"density"`
	Commuters    int          `json:"commuters"`
	Traffic      float64      `json:"traffic"`
}

// DefaultState is the empty-city snapshot.
func DefaultState() State {
	return State{}
}

// zoneCells tallies occupied footprint cells per category. Multi-cell
// buildings count once per cell they cover.
type zoneCells struct {
	residential int
	commercial  int
	industrial  int
	parks       int
	other       int
	roads       int
}

func countZones(g *grid.Grid) zoneCells {
	var z zoneCells
	if g == nil {
		return z
	}
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			anchor := g.AnchorOf(x, y)
			if anchor == nil {
				continue
			}
			b := anchor.Building
			switch b.Category {
			case catalog.CategoryResidential:
				z.residential++
			case catalog.CategoryCommercial:
				z.commercial++
			case catalog.CategoryIndustrial:
				z.industrial++
			case catalog.CategoryGreenspace:
				z.parks++
			default:
				z.other++
			}
			if b.ID == "road" {
				z.roads++
			}
		}
	}
	return z
}

// Distribute spreads total people across the grid's zones and derives
// density, commuter count, and the commuter congestion level.
func Distribute(g *grid.Grid, total int) State {
	z := countZones(g)

	residential := 0.0
	if z.residential > 0 {
		residential = math.Min(1.0, float64(z.residential)*0.05) * float64(total)
	}

	jobs := float64(z.commercial*jobsPerCommercialCell + z.industrial*jobsPerIndustrialCell)
	working := residential * workingShare
	commuters := math.Max(0, jobs-working)

	trafficBase := commuters / math.Max(1, float64(total)+commuters) * 100
	reduction := math.Min(maxRoadReduction, float64(z.roads)*roadReduction)
	traffic := math.Min(100, math.Max(0, trafficBase*(1-reduction)))

	dist := Distribution{
		Residential: int(math.Round(residential)),
		Other:       int(math.Round(float64(total) * 0.05)),
	}
	if z.commercial > 0 {
		dist.Commercial = int(math.Round(float64(total) * 0.3))
	}
	if z.industrial > 0 {
		dist.Industrial = int(math.Round(float64(total) * 0.15))
	}
	if z.parks > 0 {
		dist.Parks = int(math.Round(float64(total) * 0.1))
	}

	cells := 1
	if g != nil {
		cells = g.Size * g.Size
	}

	return State{
		Total:        total,
		Distribution: dist,
		Density:      float64(total) / math.Max(1, float64(cells)),
		Commuters:    int(math.Round(commuters)),
		Traffic:      math.Round(traffic),
	}
}
