// Package grid models the city's buildable area: a square matrix of cells,
// each optionally occupied by a building. Multi-cell buildings store their
// definition on the anchor cell; every other occupied cell carries an
// explicit back-reference to the anchor so removal and counting are O(1).
package grid

import (
	"errors"
	"fmt"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
)

// DefaultSize is the standard city grid edge length.
const DefaultSize = 20

var (
	ErrOutOfBounds = errors.New("cell out of bounds")
	ErrOccupied    = errors.New("cell already occupied")
	ErrEmpty       = errors.New("cell is empty")
)

// Anchor points a secondary footprint cell back at the cell holding the
// building definition.
type Anchor struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// Cell is one grid square. At most one of Building and Anchor is set:
// Building on the anchor cell of a footprint, Anchor on the rest.
type Cell struct {
	X        int               `json:"x"`
	Y        int               `json:"y"`
	Building *catalog.Building `json:"building,omitempty"`
	Anchor   *Anchor           `json:"anchor,omitempty"`
}

// Occupied reports whether the cell is part of any building footprint.
func (c *Cell) Occupied() bool {
	return c.Building != nil || c.Anchor != nil
}

// Grid is a square matrix of cells.
type Grid struct {
	Size  int      `json:"size"`
	Cells [][]Cell `json:"cells"`
}

// New creates an empty grid with the default 20x20 size.
func New() *Grid {
	return NewSized(DefaultSize)
}

// NewSized creates an empty square grid with the given edge length.
func NewSized(size int) *Grid {
	if size < 1 {
		size = DefaultSize
	}
	g := &Grid{Size: size, Cells: make([][]Cell, size)}
	for x := 0; x < size; x++ {
		g.Cells[x] = make([]Cell, size)
		for y := 0; y < size; y++ {
			g.Cells[x][y] = Cell{X: x, Y: y}
		}
	}
	return g
}

// InBounds reports whether (x, y) is inside the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.Size && y >= 0 && y < g.Size
}

// At returns the cell at (x, y), or nil if out of bounds.
func (g *Grid) At(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.Cells[x][y]
}

// Place puts a building anchored at (x, y). Every footprint cell must be
// in bounds and unoccupied. The stored building is a copy of b.
func (g *Grid) Place(b catalog.Building, x, y int) error {
	w, d := b.Size.Width, b.Size.Depth
	if w < 1 || d < 1 {
		return fmt.Errorf("building %q has invalid footprint %dx%d", b.ID, w, d)
	}
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < d; dy++ {
			cx, cy := x+dx, y+dy
			if !g.InBounds(cx, cy) {
				return fmt.Errorf("placing %q at (%d,%d): footprint cell (%d,%d): %w",
					b.ID, x, y, cx, cy, ErrOutOfBounds)
			}
			if g.Cells[cx][cy].Occupied() {
				return fmt.Errorf("placing %q at (%d,%d): footprint cell (%d,%d): %w",
					b.ID, x, y, cx, cy, ErrOccupied)
			}
		}
	}

	placed := b
	placed.Upgrades = append([]string(nil), b.Upgrades...)
	g.Cells[x][y].Building = &placed
	for dx := 0; dx < w; dx++ {
		for dy := 0; dy < d; dy++ {
			if dx == 0 && dy == 0 {
				continue
			}
			g.Cells[x+dx][y+dy].Anchor = &Anchor{X: x, Y: y}
		}
	}
	return nil
}

// AnchorOf resolves (x, y) to the anchor cell of the building occupying it.
// Returns nil if the cell is empty or out of bounds.
func (g *Grid) AnchorOf(x, y int) *Cell {
	cell := g.At(x, y)
	if cell == nil {
		return nil
	}
	if cell.Building != nil {
		return cell
	}
	if cell.Anchor != nil {
		anchor := g.At(cell.Anchor.X, cell.Anchor.Y)
		if anchor != nil && anchor.Building != nil {
			return anchor
		}
	}
	return nil
}

// Remove clears the building whose footprint covers (x, y). The coordinate
// may point at any footprint cell, not just the anchor.
func (g *Grid) Remove(x, y int) error {
	anchor := g.AnchorOf(x, y)
	if anchor == nil {
		return fmt.Errorf("removing at (%d,%d): %w", x, y, ErrEmpty)
	}
	b := anchor.Building
	for dx := 0; dx < b.Size.Width; dx++ {
		for dy := 0; dy < b.Size.Depth; dy++ {
			if cell := g.At(anchor.X+dx, anchor.Y+dy); cell != nil {
				cell.Building = nil
				cell.Anchor = nil
			}
		}
	}
	return nil
}

// ReplaceBuilding swaps the building value on the anchor covering (x, y)
// without touching the footprint. Used for in-place upgrades.
func (g *Grid) ReplaceBuilding(x, y int, b catalog.Building) error {
	anchor := g.AnchorOf(x, y)
	if anchor == nil {
		return fmt.Errorf("replacing at (%d,%d): %w", x, y, ErrEmpty)
	}
	replaced := b
	replaced.Upgrades = append([]string(nil), b.Upgrades...)
	anchor.Building = &replaced
	return nil
}

// Buildings returns every anchor cell holding a building, in row order.
func (g *Grid) Buildings() []*Cell {
	var out []*Cell
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			if g.Cells[x][y].Building != nil {
				out = append(out, &g.Cells[x][y])
			}
		}
	}
	return out
}

// CountByCategory tallies anchor cells per building category.
func (g *Grid) CountByCategory() map[catalog.Category]int {
	counts := make(map[catalog.Category]int)
	for _, cell := range g.Buildings() {
		counts[cell.Building.Category]++
	}
	return counts
}

// CountByID tallies anchor cells for a single building id.
func (g *Grid) CountByID(id string) int {
	n := 0
	for _, cell := range g.Buildings() {
		if cell.Building.ID == id {
			n++
		}
	}
	return n
}

// Clone returns a deep copy of the grid.
func (g *Grid) Clone() *Grid {
	out := NewSized(g.Size)
	for x := 0; x < g.Size; x++ {
		for y := 0; y < g.Size; y++ {
			src := g.Cells[x][y]
			dst := &out.Cells[x][y]
			if src.Building != nil {
				b := *src.Building
				b.Upgrades = append([]string(nil), src.Building.Upgrades...)
				dst.Building = &b
			}
			if src.Anchor != nil {
				a := *src.Anchor
				dst.Anchor = &a
			}
		}
	}
	return out
}
