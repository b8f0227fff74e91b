package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/sim"
)

// simulationStatus reports the auto-advance loop to clients.
type simulationStatus struct {
	Running bool      `json:"running"`
	Speed   sim.Speed `json:"speed"`
	Year    int       `json:"year"`
}

func (s *Server) simStatus() simulationStatus {
	s.simMu.Lock()
	defer s.simMu.Unlock()
	return simulationStatus{
		Running: s.simStop != nil,
		Speed:   s.simSpeed,
		Year:    s.engine.Snapshot().Year,
	}
}

func (s *Server) handleSimulationStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.simStatus())
}

// handleSimulationStart begins advancing one year per speed interval.
// The body may carry a speed; an empty body keeps the current one.
// Starting an already running simulation is a no-op.
func (s *Server) handleSimulationStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed sim.Speed `json:"speed"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	if req.Speed != "" && !req.Speed.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown speed %q", req.Speed))
		return
	}

	s.simMu.Lock()
	if req.Speed != "" {
		s.simSpeed = req.Speed
	}
	if s.simStop == nil {
		stop := make(chan struct{})
		s.simStop = stop
		go s.runSimulation(stop)
		s.log.Info("simulation started", "speed", s.simSpeed)
	}
	s.simMu.Unlock()

	writeJSON(w, http.StatusOK, s.simStatus())
}

func (s *Server) handleSimulationPause(w http.ResponseWriter, _ *http.Request) {
	s.simMu.Lock()
	if s.simStop != nil {
		close(s.simStop)
		s.simStop = nil
		s.log.Info("simulation paused")
	}
	s.simMu.Unlock()

	writeJSON(w, http.StatusOK, s.simStatus())
}

// handleSimulationSpeed changes the interval. A running loop picks the
// new speed up on its next tick.
func (s *Server) handleSimulationSpeed(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Speed sim.Speed `json:"speed"`
	}
	if !decode(w, r, &req) {
		return
	}
	if !req.Speed.Valid() {
		writeError(w, http.StatusBadRequest, fmt.Errorf("unknown speed %q", req.Speed))
		return
	}

	s.simMu.Lock()
	s.simSpeed = req.Speed
	s.simMu.Unlock()

	writeJSON(w, http.StatusOK, s.simStatus())
}

func (s *Server) runSimulation(stop chan struct{}) {
	for {
		s.simMu.Lock()
		speed := s.simSpeed
		s.simMu.Unlock()

		select {
		case <-stop:
			return
		case <-s.tick(speed):
			fresh := s.engine.AdvanceYear()
			s.publish(fresh)
		}
	}
}
