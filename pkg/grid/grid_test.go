package grid

import (
	"errors"
	"testing"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
)

func house() catalog.Building {
	return catalog.Building{
		ID:       "residential-house",
		Name:     "Family House",
		Category: catalog.CategoryResidential,
		Size:     catalog.Footprint{Width: 1, Depth: 1, Height: 1},
		Impact:   catalog.Impact{Emissions: 10, Energy: 8, Water: 6, Heat: 2, Happiness: 2},
	}
}

func factory() catalog.Building {
	return catalog.Building{
		ID:       "factory",
		Name:     "Factory",
		Category: catalog.CategoryIndustrial,
		Size:     catalog.Footprint{Width: 2, Depth: 2, Height: 2},
		Impact:   catalog.Impact{Emissions: 40, Energy: 30, Water: 15, Heat: 10, Happiness: -5},
	}
}

func TestNewGridIsEmpty(t *testing.T) {
	g := New()
	if g.Size != DefaultSize {
		t.Fatalf("grid size = %d, want %d", g.Size, DefaultSize)
	}
	if n := len(g.Buildings()); n != 0 {
		t.Errorf("empty grid reports %d buildings", n)
	}
}

func TestPlaceSingleCell(t *testing.T) {
	g := New()
	if err := g.Place(house(), 3, 4); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	cell := g.At(3, 4)
	if cell.Building == nil || cell.Building.ID != "residential-house" {
		t.Fatal("anchor cell does not hold the building")
	}
}

func TestPlaceMultiCellSetsAnchors(t *testing.T) {
	g := New()
	if err := g.Place(factory(), 5, 5); err != nil {
		t.Fatalf("place failed: %v", err)
	}

	if g.At(5, 5).Building == nil {
		t.Fatal("anchor cell empty")
	}
	for _, xy := range [][2]int{{6, 5}, {5, 6}, {6, 6}} {
		cell := g.At(xy[0], xy[1])
		if cell.Anchor == nil {
			t.Fatalf("cell (%d,%d) missing anchor back-reference", xy[0], xy[1])
		}
		if cell.Anchor.X != 5 || cell.Anchor.Y != 5 {
			t.Errorf("cell (%d,%d) anchor = (%d,%d), want (5,5)",
				xy[0], xy[1], cell.Anchor.X, cell.Anchor.Y)
		}
	}
}

func TestPlaceRejectsOverlap(t *testing.T) {
	g := New()
	if err := g.Place(factory(), 5, 5); err != nil {
		t.Fatalf("first place failed: %v", err)
	}
	// Overlaps the (6,6) corner of the factory footprint.
	err := g.Place(factory(), 6, 6)
	if !errors.Is(err, ErrOccupied) {
		t.Errorf("overlapping place error = %v, want ErrOccupied", err)
	}
}

func TestPlaceRejectsOutOfBounds(t *testing.T) {
	g := New()
	err := g.Place(factory(), DefaultSize-1, DefaultSize-1)
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("out-of-bounds place error = %v, want ErrOutOfBounds", err)
	}
}

func TestRemoveViaNonAnchorCell(t *testing.T) {
	g := New()
	if err := g.Place(factory(), 5, 5); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	if err := g.Remove(6, 6); err != nil {
		t.Fatalf("remove via footprint cell failed: %v", err)
	}
	for _, xy := range [][2]int{{5, 5}, {6, 5}, {5, 6}, {6, 6}} {
		if g.At(xy[0], xy[1]).Occupied() {
			t.Errorf("cell (%d,%d) still occupied after remove", xy[0], xy[1])
		}
	}
}

func TestRemoveEmptyCell(t *testing.T) {
	g := New()
	if err := g.Remove(2, 2); !errors.Is(err, ErrEmpty) {
		t.Errorf("remove empty error = %v, want ErrEmpty", err)
	}
}

func TestReplaceBuildingKeepsFootprint(t *testing.T) {
	g := New()
	if err := g.Place(factory(), 5, 5); err != nil {
		t.Fatalf("place failed: %v", err)
	}
	upgraded := factory()
	upgraded.Upgrades = []string{"clean-production"}
	if err := g.ReplaceBuilding(6, 5, upgraded); err != nil {
		t.Fatalf("replace failed: %v", err)
	}
	anchor := g.AnchorOf(6, 6)
	if anchor == nil || len(anchor.Building.Upgrades) != 1 {
		t.Fatal("replacement did not land on the anchor cell")
	}
}

func TestCountByCategory(t *testing.T) {
	g := New()
	if err := g.Place(house(), 0, 0); err != nil {
		t.Fatal(err)
	}
	if err := g.Place(house(), 0, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Place(factory(), 4, 4); err != nil {
		t.Fatal(err)
	}
	counts := g.CountByCategory()
	if counts[catalog.CategoryResidential] != 2 {
		t.Errorf("residential count = %d, want 2", counts[catalog.CategoryResidential])
	}
	if counts[catalog.CategoryIndustrial] != 1 {
		t.Errorf("industrial count = %d, want 1", counts[catalog.CategoryIndustrial])
	}
}

func TestCloneIsIndependent(t *testing.T) {
	g := New()
	if err := g.Place(house(), 1, 1); err != nil {
		t.Fatal(err)
	}
	c := g.Clone()
	if err := c.Remove(1, 1); err != nil {
		t.Fatal(err)
	}
	if g.At(1, 1).Building == nil {
		t.Error("removing from clone mutated the original")
	}
}

func TestTemplatesBuild(t *testing.T) {
	cat := catalog.Default()
	for _, tpl := range Templates() {
		g := tpl.Build(cat)
		if len(g.Buildings()) == 0 {
			t.Errorf("template %q produced an empty grid", tpl.ID)
		}
	}
}
