package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/store"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/citygen"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/cost"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/daynight"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/season"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/validation"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

// userID identifies the caller for saved cities. There is no account
// system; the header is trusted as an opaque namespace.
func userID(r *http.Request) string {
	if id := r.Header.Get("X-User-ID"); id != "" {
		return id
	}
	return "default"
}

func (s *Server) handleState(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleBuildings(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Buildings().Buildings)
}

func (s *Server) handleUpgrades(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Upgrades().Upgrades)
}

func (s *Server) handlePlace(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
		X  int    `json:"x"`
		Y  int    `json:"y"`
	}
	if !decode(w, r, &req) {
		return
	}
	fresh, err := s.engine.Place(req.ID, req.X, req.Y)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleRemove(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X int `json:"x"`
		Y int `json:"y"`
	}
	if !decode(w, r, &req) {
		return
	}
	fresh, err := s.engine.Remove(req.X, req.Y)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleApplyUpgrade(w http.ResponseWriter, r *http.Request) {
	var req struct {
		X       int    `json:"x"`
		Y       int    `json:"y"`
		Upgrade string `json:"upgrade"`
	}
	if !decode(w, r, &req) {
		return
	}
	fresh, err := s.engine.ApplyUpgrade(req.X, req.Y, req.Upgrade)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

// handleMetrics returns the display view: clamped metrics next to the
// raw pipeline output, the derived scores, and improvement tips.
func (s *Server) handleMetrics(w http.ResponseWriter, _ *http.Request) {
	st := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, map[string]any{
		"raw":        st.Metrics,
		"normalized": metrics.Normalize(st.Metrics),
		"enhanced":   st.Enhanced,
		"tips":       metrics.ImprovementTips(st.Metrics),
	})
}

func (s *Server) handleCost(w http.ResponseWriter, _ *http.Request) {
	st := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, cost.Estimate(st.Grid, s.engine.Upgrades()))
}

func (s *Server) handleAchievements(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.engine.Snapshot().Achievements)
}

func (s *Server) handleAgents(w http.ResponseWriter, r *http.Request) {
	max := s.cfg.MaxAgents
	if v := r.URL.Query().Get("max"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, errors.New("max must be a non-negative integer"))
			return
		}
		if n < max {
			max = n
		}
	}
	writeJSON(w, http.StatusOK, s.engine.Agents(max))
}

func (s *Server) handleValidate(w http.ResponseWriter, _ *http.Request) {
	st := s.engine.Snapshot()
	writeJSON(w, http.StatusOK, validation.ValidateGrid(st.Grid, s.engine.Buildings()))
}

func (s *Server) handleSeason(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Season season.Season `json:"season"`
	}
	if !decode(w, r, &req) {
		return
	}
	fresh, err := s.engine.SetSeason(req.Season)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleTimeOfDay(w http.ResponseWriter, r *http.Request) {
	var req struct {
		TimeOfDay daynight.TimeOfDay `json:"timeOfDay"`
	}
	if !decode(w, r, &req) {
		return
	}
	if err := s.engine.SetTimeOfDay(req.TimeOfDay); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"timeOfDay": req.TimeOfDay,
		"settings":  daynight.SettingsFor(req.TimeOfDay),
	})
}

func (s *Server) handleAdvanceYear(w http.ResponseWriter, _ *http.Request) {
	fresh := s.engine.AdvanceYear()
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleReset(w http.ResponseWriter, _ *http.Request) {
	s.engine.Reset()
	s.publish(nil)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleTemplates(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, grid.Templates())
}

func (s *Server) handleApplyTemplate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ID string `json:"id"`
	}
	if !decode(w, r, &req) {
		return
	}
	for _, t := range grid.Templates() {
		if t.ID == req.ID {
			fresh := s.engine.LoadGrid(t.Build(s.engine.Buildings()))
			s.publish(fresh)
			writeJSON(w, http.StatusOK, s.engine.Snapshot())
			return
		}
	}
	writeError(w, http.StatusNotFound, errors.New("unknown template "+req.ID))
}

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	if !s.gen.Enabled() {
		writeError(w, http.StatusServiceUnavailable, errors.New("layout generation is not configured"))
		return
	}
	var req struct {
		Prompt string `json:"prompt"`
	}
	if !decode(w, r, &req) {
		return
	}

	text, err := s.gen.Generate(r.Context(), req.Prompt)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	placements, report, err := citygen.ParseLayout(text, s.engine.Buildings())
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}

	fresh := s.engine.LoadGrid(citygen.Fold(placements, s.engine.Buildings()))
	s.publish(fresh)
	writeJSON(w, http.StatusOK, map[string]any{
		"report": report,
		"state":  s.engine.Snapshot(),
	})
}

func (s *Server) handleListCities(w http.ResponseWriter, r *http.Request) {
	cities, err := s.repo.List(userID(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (s *Server) handleSaveCity(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if !decode(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, errors.New("name is required"))
		return
	}

	st := s.engine.Snapshot()
	city := store.NewCity(userID(r), req.Name, st.Grid, st.Metrics)
	if err := s.repo.Save(city); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.log.Info("city saved", "id", city.ID, "name", city.Name, "user", city.UserID)
	writeJSON(w, http.StatusCreated, city)
}

func (s *Server) handleGetCity(w http.ResponseWriter, r *http.Request) {
	city, err := s.repo.Get(userID(r), r.PathValue("id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, city)
}

func (s *Server) handleLoadCity(w http.ResponseWriter, r *http.Request) {
	city, err := s.repo.Get(userID(r), r.PathValue("id"))
	if err != nil {
		s.writeRepoError(w, err)
		return
	}
	if report := validation.ValidateGrid(city.Grid, s.engine.Buildings()); !report.Valid {
		writeJSON(w, http.StatusUnprocessableEntity, report)
		return
	}
	fresh := s.engine.LoadGrid(city.Grid)
	s.publish(fresh)
	writeJSON(w, http.StatusOK, s.engine.Snapshot())
}

func (s *Server) handleDeleteCity(w http.ResponseWriter, r *http.Request) {
	if err := s.repo.Delete(userID(r), r.PathValue("id")); err != nil {
		s.writeRepoError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) writeRepoError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
