package daynight

import (
	"math"
	"testing"
)

func TestCycleOrder(t *testing.T) {
	cases := []struct {
		in, want TimeOfDay
	}{
		{Dawn, Day},
		{Day, Dusk},
		{Dusk, Night},
		{Night, Dawn},
		{"noon", Dawn},
	}
	for _, tc := range cases {
		if got := Next(tc.in); got != tc.want {
			t.Errorf("Next(%s) = %s, want %s", tc.in, got, tc.want)
		}
	}
}

func TestWeightsSumToOne(t *testing.T) {
	for _, tod := range All() {
		w := WeightsFor(tod)
		sum := w.Residential + w.Work + w.Leisure
		if math.Abs(sum-1) > 1e-9 {
			t.Errorf("%s weights sum to %v, want 1", tod, sum)
		}
	}
}

func TestBuildingLights(t *testing.T) {
	if SettingsFor(Day).BuildingLightsOn {
		t.Error("building lights should be off during the day")
	}
	for _, tod := range []TimeOfDay{Dawn, Dusk, Night} {
		if !SettingsFor(tod).BuildingLightsOn {
			t.Errorf("building lights should be on at %s", tod)
		}
	}
}

func TestUnknownPhaseDefaults(t *testing.T) {
	if got := SettingsFor("noon"); got.TimeOfDay != Day {
		t.Errorf("unknown phase settings = %s, want day", got.TimeOfDay)
	}
	if got := WeightsFor("noon"); got != (Weights{Residential: 0.6, Work: 0.3, Leisure: 0.1}) {
		t.Errorf("unknown phase weights = %+v, want dawn split", got)
	}
}
