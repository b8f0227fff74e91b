package server

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/config"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/store"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/sim"
)

type fixedRand struct{}

func (fixedRand) Float64() float64 { return 1.0 }
func (fixedRand) Intn(n int) int   { return 0 }

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	engine := sim.New(nil, nil, sim.WithRand(fixedRand{}))
	srv := New(config.Default(), engine, store.NewMemoryRepo(), nil)
	go srv.hub.run()
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return srv, ts
}

func post(t *testing.T, url string, body any) *http.Response {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)
	resp, err := http.Post(url, "application/json", bytes.NewReader(data))
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func decodeBody(t *testing.T, resp *http.Response, v any) {
	t.Helper()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, v), "body: %s", data)
}

func TestStateEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/state")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sim.State
	decodeBody(t, resp, &st)
	assert.Equal(t, sim.StartYear, st.Year)
	assert.Len(t, st.Achievements, 16)
}

func TestPlaceAndRemove(t *testing.T) {
	_, ts := testServer(t)

	resp := post(t, ts.URL+"/api/grid/place", map[string]any{"id": "park", "x": 3, "y": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sim.State
	decodeBody(t, resp, &st)
	assert.Equal(t, 1, st.Enhanced.ParkCount)
	assert.Less(t, st.Metrics.Emissions, 0.0)

	resp = post(t, ts.URL+"/api/grid/remove", map[string]any{"x": 3, "y": 4})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &st)
	assert.Zero(t, st.Enhanced.ParkCount)
}

func TestPlaceConflict(t *testing.T) {
	_, ts := testServer(t)

	post(t, ts.URL+"/api/grid/place", map[string]any{"id": "park", "x": 0, "y": 0})
	resp := post(t, ts.URL+"/api/grid/place", map[string]any{"id": "road", "x": 0, "y": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestPlaceUnknownBuilding(t *testing.T) {
	_, ts := testServer(t)
	resp := post(t, ts.URL+"/api/grid/place", map[string]any{"id": "hoverport", "x": 0, "y": 0})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestUpgradeFlow(t *testing.T) {
	_, ts := testServer(t)

	post(t, ts.URL+"/api/grid/place", map[string]any{"id": "residential-house", "x": 0, "y": 0})
	resp := post(t, ts.URL+"/api/grid/upgrade", map[string]any{"x": 0, "y": 0, "upgrade": "solar-panels"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sim.State
	decodeBody(t, resp, &st)
	require.NotNil(t, st.Grid.At(0, 0).Building)
	assert.True(t, st.Grid.At(0, 0).Building.HasUpgrade("solar-panels"))

	resp = post(t, ts.URL+"/api/grid/upgrade", map[string]any{"x": 0, "y": 0, "upgrade": "solar-panels"})
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode, "duplicate upgrade")
}

func TestSeasonEndpoint(t *testing.T) {
	_, ts := testServer(t)

	resp := post(t, ts.URL+"/api/season", map[string]any{"season": "summer"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp = post(t, ts.URL+"/api/season", map[string]any{"season": "monsoon"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAdvanceYear(t *testing.T) {
	_, ts := testServer(t)

	resp := post(t, ts.URL+"/api/advance-year", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var st sim.State
	decodeBody(t, resp, &st)
	assert.Equal(t, sim.StartYear+1, st.Year)
}

func TestMetricsEndpointShape(t *testing.T) {
	_, ts := testServer(t)
	post(t, ts.URL+"/api/grid/place", map[string]any{"id": "factory", "x": 0, "y": 0})

	resp, err := http.Get(ts.URL + "/api/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	var body struct {
		Raw        map[string]float64 `json:"raw"`
		Normalized map[string]float64 `json:"normalized"`
		Tips       []string           `json:"tips"`
	}
	decodeBody(t, resp, &body)
	assert.NotEmpty(t, body.Raw)
	for _, v := range body.Normalized {
		assert.GreaterOrEqual(t, v, 0.0)
		assert.LessOrEqual(t, v, 100.0)
	}
}

func TestTemplates(t *testing.T) {
	_, ts := testServer(t)

	resp, err := http.Get(ts.URL + "/api/templates")
	require.NoError(t, err)
	defer resp.Body.Close()
	var templates []struct {
		ID string `json:"id"`
	}
	decodeBody(t, resp, &templates)
	require.NotEmpty(t, templates)

	apply := post(t, ts.URL+"/api/templates/apply", map[string]any{"id": templates[0].ID})
	require.Equal(t, http.StatusOK, apply.StatusCode)

	var st sim.State
	decodeBody(t, apply, &st)
	assert.NotZero(t, st.Enhanced.TotalBuildingCount)

	missing := post(t, ts.URL+"/api/templates/apply", map[string]any{"id": "atlantis"})
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestCostEndpoint(t *testing.T) {
	_, ts := testServer(t)

	post(t, ts.URL+"/api/grid/place", map[string]any{"id": "residential-house", "x": 0, "y": 0})
	post(t, ts.URL+"/api/grid/upgrade", map[string]any{"x": 0, "y": 0, "upgrade": "solar-panels"})

	resp, err := http.Get(ts.URL + "/api/cost")
	require.NoError(t, err)
	defer resp.Body.Close()

	var report struct {
		Total     float64 `json:"total"`
		Installed int     `json:"installed"`
	}
	decodeBody(t, resp, &report)
	assert.Equal(t, 1, report.Installed)
	assert.Equal(t, 100.0, report.Total)
}

func TestGenerateUnavailableWithoutKey(t *testing.T) {
	_, ts := testServer(t)
	resp := post(t, ts.URL+"/api/generate", map[string]any{"prompt": "a town"})
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestCitySaveLoadRoundTrip(t *testing.T) {
	_, ts := testServer(t)

	post(t, ts.URL+"/api/grid/place", map[string]any{"id": "park", "x": 1, "y": 1})

	saved := post(t, ts.URL+"/api/cities", map[string]any{"name": "greenburg"})
	require.Equal(t, http.StatusCreated, saved.StatusCode)
	var city store.City
	decodeBody(t, saved, &city)
	require.NotEmpty(t, city.ID)

	// Wipe the live city, then restore the save.
	post(t, ts.URL+"/api/reset", nil)
	loaded := post(t, ts.URL+"/api/cities/"+city.ID+"/load", nil)
	require.Equal(t, http.StatusOK, loaded.StatusCode)

	var st sim.State
	decodeBody(t, loaded, &st)
	assert.Equal(t, 1, st.Enhanced.ParkCount)
}

func TestCityEndpointsAreUserScoped(t *testing.T) {
	_, ts := testServer(t)

	saved := post(t, ts.URL+"/api/cities", map[string]any{"name": "mine"})
	var city store.City
	decodeBody(t, saved, &city)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/api/cities/"+city.ID, nil)
	require.NoError(t, err)
	req.Header.Set("X-User-ID", "someone-else")
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCity(t *testing.T) {
	_, ts := testServer(t)

	saved := post(t, ts.URL+"/api/cities", map[string]any{"name": "doomed"})
	var city store.City
	decodeBody(t, saved, &city)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/cities/"+city.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp2, err := http.Get(ts.URL + "/api/cities/" + city.ID)
	require.NoError(t, err)
	defer resp2.Body.Close()
	assert.Equal(t, http.StatusNotFound, resp2.StatusCode)
}

func TestSaveCityRequiresName(t *testing.T) {
	_, ts := testServer(t)
	resp := post(t, ts.URL+"/api/cities", map[string]any{})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestSimulationLifecycle(t *testing.T) {
	srv, ts := testServer(t)

	ticks := make(chan time.Time)
	srv.tick = func(sim.Speed) <-chan time.Time { return ticks }

	var status simulationStatus

	resp, err := http.Get(ts.URL + "/api/simulation")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.False(t, status.Running)
	assert.Equal(t, sim.SpeedMedium, status.Speed)

	resp = post(t, ts.URL+"/api/simulation/start", map[string]string{"speed": "fast"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.True(t, status.Running)
	assert.Equal(t, sim.SpeedFast, status.Speed)

	ticks <- time.Time{}
	require.Eventually(t, func() bool {
		return srv.engine.Snapshot().Year == sim.StartYear+1
	}, time.Second, 5*time.Millisecond)

	// a second start keeps the running loop and its speed
	resp = post(t, ts.URL+"/api/simulation/start", map[string]string{})
	decodeBody(t, resp, &status)
	assert.True(t, status.Running)
	assert.Equal(t, sim.SpeedFast, status.Speed)

	resp = post(t, ts.URL+"/api/simulation/speed", map[string]string{"speed": "slow"})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.Equal(t, sim.SpeedSlow, status.Speed)

	resp = post(t, ts.URL+"/api/simulation/pause", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.False(t, status.Running)
	assert.Equal(t, sim.StartYear+1, status.Year)

	resp = post(t, ts.URL+"/api/simulation/pause", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	decodeBody(t, resp, &status)
	assert.False(t, status.Running)
}

func TestSimulationRejectsUnknownSpeed(t *testing.T) {
	_, ts := testServer(t)

	resp := post(t, ts.URL+"/api/simulation/start", map[string]string{"speed": "warp"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp = post(t, ts.URL+"/api/simulation/speed", map[string]string{"speed": "warp"})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	resp, err := http.Get(ts.URL + "/api/simulation")
	require.NoError(t, err)
	defer resp.Body.Close()
	var status simulationStatus
	decodeBody(t, resp, &status)
	assert.False(t, status.Running)
}
