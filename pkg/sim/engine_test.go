package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/daynight"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/season"
)

// scriptedRand returns queued Float64 values, then 1.0 so no further
// disaster rolls succeed. Intn always picks the first candidate.
type scriptedRand struct {
	floats []float64
}

func (s *scriptedRand) Float64() float64 {
	if len(s.floats) == 0 {
		return 1.0
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

func (s *scriptedRand) Intn(n int) int { return 0 }

func quiet() *scriptedRand { return &scriptedRand{} }

func TestNewEngineBaseline(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	st := e.Snapshot()

	assert.Equal(t, StartYear, st.Year)
	assert.Equal(t, season.Spring, st.Season)
	assert.Equal(t, daynight.Day, st.TimeOfDay)
	assert.Zero(t, st.Metrics)
	assert.Empty(t, st.Disasters.Active)
	assert.Len(t, st.Achievements, 16)
	for _, a := range st.Achievements {
		assert.False(t, a.Unlocked, "%s should start locked", a.ID)
	}
}

func TestPlaceRecomputesMetrics(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))

	_, err := e.Place("park", 0, 0)
	require.NoError(t, err)

	st := e.Snapshot()
	// Park emissions are -20, spring scales them by 0.95.
	assert.InDelta(t, -19.0, st.Metrics.Emissions, 1e-9)
	assert.Equal(t, 1, st.Enhanced.ParkCount)
}

func TestPlaceUnknownBuilding(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.Place("hoverport", 0, 0)
	assert.Error(t, err)
}

func TestPipelineOrderSeasonThenDisaster(t *testing.T) {
	e := New(nil, nil, WithRand(&scriptedRand{floats: []float64{0.0}}))

	_, err := e.Place("factory", 0, 0)
	require.NoError(t, err)
	base := e.Snapshot()
	baseEmissions := base.Metrics.Emissions / 0.95 // undo spring

	_, err = e.SetSeason(season.Winter)
	require.NoError(t, err)

	// Winter roll succeeds and the only winter candidate is a storm.
	e.AdvanceYear()
	st := e.Snapshot()
	require.Len(t, st.Disasters.Active, 1)
	storm := st.Disasters.Active[0]

	want := baseEmissions * 1.3 * storm.Impact.Emissions
	assert.InDelta(t, want, st.Metrics.Emissions, 1e-9)
}

func TestAdvanceYearIncrements(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	e.AdvanceYear()
	e.AdvanceYear()
	assert.Equal(t, StartYear+2, e.Snapshot().Year)
}

func TestDisasterSurvivorLatch(t *testing.T) {
	// Three storms back to back: roll succeeds whenever no disaster
	// is active.
	e := New(nil, nil, WithRand(&scriptedRand{floats: []float64{0, 0, 0, 0, 0, 0, 0, 0}}))
	_, err := e.SetSeason(season.Winter)
	require.NoError(t, err)

	for i := 0; i < 8; i++ {
		e.AdvanceYear()
	}

	st := e.Snapshot()
	require.GreaterOrEqual(t, len(st.Disasters.History)-len(st.Disasters.Active), 3)
	for _, a := range st.Achievements {
		if a.ID == "disaster-survivor" {
			assert.True(t, a.Unlocked)
			return
		}
	}
	t.Fatal("disaster-survivor not found")
}

func TestApplyUpgrade(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.Place("residential-house", 0, 0)
	require.NoError(t, err)

	before := e.Snapshot().Metrics.Emissions

	_, err = e.ApplyUpgrade(0, 0, "solar-panels")
	require.NoError(t, err)

	after := e.Snapshot()
	assert.InDelta(t, before*0.8, after.Metrics.Emissions, 1e-9)
	require.NotNil(t, after.Grid.At(0, 0).Building)
	assert.True(t, after.Grid.At(0, 0).Building.HasUpgrade("solar-panels"))

	// Second install is rejected.
	_, err = e.ApplyUpgrade(0, 0, "solar-panels")
	assert.Error(t, err)
}

func TestApplyUpgradeYearGate(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.Place("residential-house", 0, 0)
	require.NoError(t, err)

	_, err = e.ApplyUpgrade(0, 0, "smart-grid")
	assert.Error(t, err, "smart-grid needs 2028")

	e.AdvanceYear()
	e.AdvanceYear()
	e.AdvanceYear()
	_, err = e.ApplyUpgrade(0, 0, "smart-grid")
	assert.NoError(t, err)
}

func TestApplyUpgradeEmptyCell(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.ApplyUpgrade(5, 5, "solar-panels")
	assert.Error(t, err)
}

func TestAchievementLatchSurvivesRemoval(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	for i := 0; i < 5; i++ {
		fresh, err := e.Place("park", i*2, 0)
		require.NoError(t, err)
		if i == 4 {
			require.Len(t, fresh, 1)
			assert.Equal(t, "green-thumbs", fresh[0].ID)
		}
	}

	for i := 0; i < 5; i++ {
		_, err := e.Remove(i*2, 0)
		require.NoError(t, err)
	}

	st := e.Snapshot()
	assert.Zero(t, st.Enhanced.ParkCount)
	for _, a := range st.Achievements {
		if a.ID == "green-thumbs" {
			assert.True(t, a.Unlocked, "unlocks must not revert")
		}
	}
}

func TestSetSeasonValidation(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.SetSeason("monsoon")
	assert.Error(t, err)

	_, err = e.SetSeason(season.Summer)
	assert.NoError(t, err)
	assert.Equal(t, season.Summer, e.Snapshot().Season)
}

func TestSetTimeOfDay(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	require.NoError(t, e.SetTimeOfDay(daynight.Night))
	assert.Equal(t, daynight.Night, e.Snapshot().TimeOfDay)
	assert.Error(t, e.SetTimeOfDay("noon"))
}

func TestResetClearsEverything(t *testing.T) {
	e := New(nil, nil, WithRand(&scriptedRand{floats: []float64{0}}))
	_, err := e.Place("factory", 0, 0)
	require.NoError(t, err)
	e.AdvanceYear()

	e.Reset()
	st := e.Snapshot()
	assert.Equal(t, StartYear, st.Year)
	assert.Empty(t, st.Grid.Buildings())
	assert.Empty(t, st.Disasters.History)
	assert.Zero(t, st.Metrics)
}

func TestSnapshotIsDetached(t *testing.T) {
	e := New(nil, nil, WithRand(quiet()))
	_, err := e.Place("park", 0, 0)
	require.NoError(t, err)

	st := e.Snapshot()
	require.NoError(t, st.Grid.Remove(0, 0))

	assert.NotNil(t, e.Snapshot().Grid.At(0, 0).Building, "snapshot mutation must not reach the engine")
}

func TestSpeedIntervals(t *testing.T) {
	assert.Equal(t, "5s", SpeedSlow.Interval().String())
	assert.Equal(t, "3s", SpeedMedium.Interval().String())
	assert.Equal(t, "1s", SpeedFast.Interval().String())
	assert.Equal(t, "3s", Speed("warp").Interval().String())

	assert.True(t, SpeedSlow.Valid())
	assert.True(t, SpeedMedium.Valid())
	assert.True(t, SpeedFast.Valid())
	assert.False(t, Speed("warp").Valid())
	assert.False(t, Speed("").Valid())
}
