package upgrade

import (
	"math"
	"testing"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
)

func office() catalog.Building {
	return catalog.Building{
		ID:       "office-building",
		Category: catalog.CategoryCommercial,
		Size:     catalog.Footprint{Width: 1, Depth: 1, Height: 4},
		Impact:   catalog.Impact{Emissions: 15, Energy: 18, Water: 6, Heat: 4, Happiness: 1},
	}
}

func TestDefaultCatalogLoads(t *testing.T) {
	c := Default()
	if len(c.Upgrades) != 7 {
		t.Fatalf("default upgrade catalog has %d entries, want 7", len(c.Upgrades))
	}
	if _, ok := c.Get("solar-panels"); !ok {
		t.Error("solar-panels missing from default catalog")
	}
}

func TestCanUpgradeCategoryMatch(t *testing.T) {
	c := Default()
	sp, _ := c.Get("solar-panels")
	if !CanUpgrade(office(), sp, 2025) {
		t.Error("solar-panels should apply to commercial buildings")
	}

	cp, _ := c.Get("clean-production")
	if CanUpgrade(office(), cp, 2035) {
		t.Error("clean-production should not apply outside industrial")
	}
}

func TestCanUpgradeRejectsDuplicate(t *testing.T) {
	c := Default()
	sp, _ := c.Get("solar-panels")
	b := Apply(office(), "solar-panels")
	for _, year := range []int{2020, 2025, 2100} {
		if CanUpgrade(b, sp, year) {
			t.Errorf("duplicate upgrade allowed in year %d", year)
		}
	}
}

func TestCanUpgradeYearGate(t *testing.T) {
	c := Default()
	sg, _ := c.Get("smart-grid")
	if CanUpgrade(office(), sg, 2027) {
		t.Error("smart-grid should be gated before 2028")
	}
	if !CanUpgrade(office(), sg, 2028) {
		t.Error("smart-grid should unlock at 2028")
	}
}

func TestCanUpgradeBuildingAllowlist(t *testing.T) {
	u := Upgrade{ID: "custom", Buildings: []string{"office-building"}}
	if !CanUpgrade(office(), u, 2025) {
		t.Error("explicit building allowlist should match")
	}
	u.Buildings = []string{"residential-house"}
	if CanUpgrade(office(), u, 2025) {
		t.Error("allowlist without match should reject")
	}
}

func TestApplyIsCopyOnWrite(t *testing.T) {
	b := office()
	upgraded := Apply(b, "green-roof")
	if len(b.Upgrades) != 0 {
		t.Error("Apply mutated the original building")
	}
	if len(upgraded.Upgrades) != 1 || upgraded.Upgrades[0] != "green-roof" {
		t.Errorf("upgraded.Upgrades = %v, want [green-roof]", upgraded.Upgrades)
	}
}

func TestFoldImpactCombinedMultipliers(t *testing.T) {
	// solar-panels (0.8 em, 0.7 en, 1.1 hap) then green-roof
	// (0.9 em, 0.85 en, 1.2 hap) combine to 0.72, 0.595, 1.32.
	c := Default()
	b := office()
	b.Impact = catalog.Impact{Emissions: 100, Energy: 100, Water: 100, Heat: 100, Happiness: 100}

	forward := c.FoldImpact(Apply(Apply(b, "solar-panels"), "green-roof"))
	reverse := c.FoldImpact(Apply(Apply(b, "green-roof"), "solar-panels"))

	wantEm, wantEn, wantHap := 72.0, 59.5, 132.0
	const eps = 1e-9
	if math.Abs(forward.Emissions-wantEm) > eps {
		t.Errorf("emissions = %v, want %v", forward.Emissions, wantEm)
	}
	if math.Abs(forward.Energy-wantEn) > eps {
		t.Errorf("energy = %v, want %v", forward.Energy, wantEn)
	}
	if math.Abs(forward.Happiness-wantHap) > eps {
		t.Errorf("happiness = %v, want %v", forward.Happiness, wantHap)
	}

	// Multiplication commutes: application order must not matter.
	if forward != reverse {
		t.Errorf("fold depends on order: %+v vs %+v", forward, reverse)
	}
}

func TestFoldImpactSkipsUnknownIDs(t *testing.T) {
	c := Default()
	b := Apply(office(), "retired-upgrade-from-old-catalog")
	got := c.FoldImpact(b)
	if got != office().Impact {
		t.Errorf("unknown upgrade id changed impact: %+v", got)
	}
}

func TestAvailableExcludesApplied(t *testing.T) {
	c := Default()
	b := Apply(office(), "solar-panels")
	for _, u := range c.Available(b, 2030) {
		if u.ID == "solar-panels" {
			t.Error("Available returned an already-applied upgrade")
		}
	}
}
