package grid

import "github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"

// Template is a predefined starter layout.
type Template struct {
	ID          string
	Name        string
	Description string
	placements  []placement
}

type placement struct {
	buildingID string
	x, y       int
}

// Templates returns the built-in starter layouts.
func Templates() []Template {
	return []Template{
		{
			ID:          "starter-village",
			Name:        "Starter Village",
			Description: "A small residential cluster with basic services",
			placements: []placement{
				{"residential-house", 4, 4}, {"residential-house", 4, 6},
				{"residential-house", 6, 4}, {"residential-house", 6, 6},
				{"retail-store", 8, 5}, {"school", 2, 5},
				{"park", 5, 5},
				{"road", 3, 5}, {"road", 5, 3}, {"road", 5, 7}, {"road", 7, 5},
				{"solar-panel", 2, 2},
			},
		},
		{
			ID:          "green-town",
			Name:        "Green Town",
			Description: "A balanced town leaning on renewable energy",
			placements: []placement{
				{"green-apartment", 5, 5}, {"green-apartment", 5, 7},
				{"eco-highrise", 7, 5},
				{"retail-store", 9, 5}, {"office-building", 9, 7},
				{"warehouse", 12, 5},
				{"wind-turbine", 2, 2}, {"wind-turbine", 2, 4},
				{"solar-panel", 2, 6}, {"solar-panel", 2, 8},
				{"water-treatment", 14, 2},
				{"park", 6, 6}, {"community-garden", 8, 8},
				{"road", 4, 5}, {"road", 4, 6}, {"road", 4, 7},
				{"road", 6, 4}, {"road", 8, 4}, {"road", 10, 6},
				{"clinic", 11, 8}, {"library", 3, 9},
			},
		},
	}
}

// Build materializes the template into a fresh grid. Placements that no
// longer resolve in the catalog or collide are skipped rather than failing
// the whole template.
func (t Template) Build(c *catalog.Catalog) *Grid {
	g := New()
	for _, p := range t.placements {
		b, ok := c.Get(p.buildingID)
		if !ok {
			continue
		}
		_ = g.Place(b, p.x, p.y)
	}
	return g
}
