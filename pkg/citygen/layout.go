// Package citygen turns a text prompt into a starter city layout by
// calling a generative model and folding its response onto a grid.
package citygen

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/validation"
)

// GridSize is the edge length of a generated layout.
const GridSize = 10

// Placement is one generated building position.
type Placement struct {
	Type string `json:"type"`
	X    int    `json:"x"`
	Y    int    `json:"y"`
}

// allowedTypes is the vocabulary offered to the model. Responses may
// still name anything, so parsing checks against the catalog too.
var allowedTypes = []string{
	"residential-house",
	"apartment-building",
	"green-apartment",
	"retail-store",
	"office-building",
	"park",
	"community-garden",
	"road",
	"solar-panel",
	"wind-turbine",
}

var fenceRe = regexp.MustCompile("```(?:json)?\n?|\n?```")

// ParseLayout decodes a model response into placements. A response
// whose top level is not a JSON array is a hard error. Individual bad
// entries become findings on the report and are dropped, so one
// malformed placement does not discard the rest of the layout.
func ParseLayout(text string, c *catalog.Catalog) ([]Placement, *validation.Report, error) {
	report := validation.NewReport()
	clean := strings.TrimSpace(fenceRe.ReplaceAllString(text, ""))

	var raw []json.RawMessage
	if err := json.Unmarshal([]byte(clean), &raw); err != nil {
		return nil, nil, fmt.Errorf("layout must be a JSON array: %w", err)
	}

	placements := make([]Placement, 0, len(raw))
	covered := make(map[[2]int]bool)
	for i, entry := range raw {
		path := fmt.Sprintf("layout[%d]", i)

		var p Placement
		if err := json.Unmarshal(entry, &p); err != nil || p.Type == "" {
			report.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("entry %d is not a valid placement", i),
				Path:        path,
				ActualValue: string(entry),
				Expected:    `{"type": ..., "x": ..., "y": ...}`,
			})
			continue
		}
		if p.X < 0 || p.X >= GridSize || p.Y < 0 || p.Y >= GridSize {
			report.AddError(validation.Result{
				Level:       validation.LevelLayout,
				Message:     fmt.Sprintf("entry %d (%s) is out of bounds at (%d,%d)", i, p.Type, p.X, p.Y),
				Path:        path,
				ActualValue: fmt.Sprintf("(%d,%d)", p.X, p.Y),
				Expected:    fmt.Sprintf("0 <= x,y < %d", GridSize),
			})
			continue
		}
		if c != nil {
			if _, ok := c.Get(p.Type); !ok {
				report.AddWarning(validation.Result{
					Level:       validation.LevelLayout,
					Message:     fmt.Sprintf("entry %d names unknown building %q", i, p.Type),
					Path:        path,
					ActualValue: p.Type,
					Suggestions: allowedTypes,
				})
				continue
			}
		}
		placements = append(placements, p)
		covered[[2]int{p.X, p.Y}] = true
	}

	if empty := GridSize*GridSize - len(covered); empty > 0 {
		report.AddInfo(validation.Result{
			Level:       validation.LevelLayout,
			Message:     fmt.Sprintf("layout leaves %d cells empty", empty),
			Path:        "layout",
			ActualValue: empty,
		})
	}
	return placements, report, nil
}

// Fold places the parsed layout onto a fresh grid. Placements that
// collide with earlier ones are skipped, first writer wins.
func Fold(placements []Placement, c *catalog.Catalog) *grid.Grid {
	g := grid.NewSized(GridSize)
	if c == nil {
		return g
	}
	for _, p := range placements {
		b, ok := c.Get(p.Type)
		if !ok {
			continue
		}
		// Errors here are collisions or edge overflow; generated
		// layouts are best effort, so drop and continue.
		_ = g.Place(b, p.X, p.Y)
	}
	return g
}
