package validation

import (
	"fmt"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
)

// ValidateGrid performs schema validation on a grid, typically one
// deserialized from a save file. It checks structural integrity before
// any metric is computed over it.
func ValidateGrid(g *grid.Grid, c *catalog.Catalog) *Report {
	r := NewReport()
	if g == nil {
		r.AddError(Result{
			Level:    LevelSchema,
			Message:  "grid is missing",
			Path:     "grid",
			Expected: "a square cell matrix",
		})
		return r
	}

	validateShape(g, r)
	if !r.Valid {
		return r
	}
	validateCells(g, c, r)
	validateAnchors(g, r)
	return r
}

func validateShape(g *grid.Grid, r *Report) {
	if g.Size < 1 {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     "grid size must be at least 1",
			Path:        "grid.size",
			ActualValue: g.Size,
			Expected:    ">= 1",
		})
		return
	}
	if len(g.Cells) != g.Size {
		r.AddError(Result{
			Level:       LevelSchema,
			Message:     fmt.Sprintf("grid has %d columns, size says %d", len(g.Cells), g.Size),
			Path:        "grid.cells",
			ActualValue: len(g.Cells),
			Expected:    fmt.Sprintf("%d", g.Size),
		})
		return
	}
	for x, col := range g.Cells {
		if len(col) != g.Size {
			r.AddError(Result{
				Level:       LevelSchema,
				Message:     fmt.Sprintf("column %d has %d cells, size says %d", x, len(col), g.Size),
				Path:        fmt.Sprintf("grid.cells[%d]", x),
				ActualValue: len(col),
				Expected:    fmt.Sprintf("%d", g.Size),
			})
		}
	}
}

func validateCells(g *grid.Grid, c *catalog.Catalog, r *Report) {
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			cell := g.Cells[x][y]
			path := fmt.Sprintf("grid.cells[%d][%d]", x, y)

			if cell.Building != nil && cell.Anchor != nil {
				r.AddError(Result{
					Level:    LevelSchema,
					Message:  fmt.Sprintf("cell (%d,%d) is both an anchor and a footprint member", x, y),
					Path:     path,
					Expected: "at most one of building, anchor",
				})
			}

			b := cell.Building
			if b == nil {
				continue
			}
			if c != nil {
				if _, ok := c.Get(b.ID); !ok {
					r.AddWarning(Result{
						Level:       LevelSchema,
						Message:     fmt.Sprintf("cell (%d,%d) references unknown building %q", x, y, b.ID),
						Path:        path,
						ActualValue: b.ID,
						Suggestions: []string{"the save may predate a catalog change"},
					})
				}
			}
			if b.Size.Width < 1 || b.Size.Depth < 1 {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("building %q at (%d,%d) has invalid footprint %dx%d", b.ID, x, y, b.Size.Width, b.Size.Depth),
					Path:        path,
					ActualValue: fmt.Sprintf("%dx%d", b.Size.Width, b.Size.Depth),
					Expected:    "width and depth >= 1",
				})
				continue
			}
			if x+b.Size.Width > g.Size || y+b.Size.Depth > g.Size {
				r.AddError(Result{
					Level:    LevelSchema,
					Message:  fmt.Sprintf("building %q at (%d,%d) extends past the grid edge", b.ID, x, y),
					Path:     path,
					Expected: "footprint fully inside the grid",
				})
			}
		}
	}
}

func validateAnchors(g *grid.Grid, r *Report) {
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			a := g.Cells[x][y].Anchor
			if a == nil {
				continue
			}
			path := fmt.Sprintf("grid.cells[%d][%d].anchor", x, y)
			target := g.At(a.X, a.Y)
			if target == nil {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("cell (%d,%d) points at out-of-bounds anchor (%d,%d)", x, y, a.X, a.Y),
					Path:        path,
					ActualValue: fmt.Sprintf("(%d,%d)", a.X, a.Y),
					Expected:    "an in-bounds anchor cell",
				})
				continue
			}
			if target.Building == nil {
				r.AddError(Result{
					Level:       LevelSchema,
					Message:     fmt.Sprintf("cell (%d,%d) points at anchor (%d,%d) which holds no building", x, y, a.X, a.Y),
					Path:        path,
					ActualValue: fmt.Sprintf("(%d,%d)", a.X, a.Y),
					Expected:    "an anchor cell holding a building",
				})
			}
		}
	}
}
