// Package server exposes the simulation over HTTP and pushes state
// updates to websocket subscribers.
package server

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/config"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/internal/store"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/achievement"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/citygen"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/sim"
)

// Server wires the engine, the save store, and the layout generator
// behind an HTTP API. One engine means one shared live city; saved
// cities are scoped per user.
type Server struct {
	cfg    config.Config
	engine *sim.Engine
	repo   store.Repo
	gen    *citygen.Client
	hub    *hub
	log    *slog.Logger

	simMu    sync.Mutex
	simSpeed sim.Speed
	simStop  chan struct{}
	tick     func(sim.Speed) <-chan time.Time
}

// New creates a server around the given engine. A nil repo falls back
// to in-memory saves.
func New(cfg config.Config, engine *sim.Engine, repo store.Repo, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	if repo == nil {
		repo = store.NewMemoryRepo()
	}
	return &Server{
		cfg:      cfg,
		engine:   engine,
		repo:     repo,
		gen:      citygen.NewClient(cfg.GeminiAPIKey),
		hub:      newHub(log),
		log:      log,
		simSpeed: sim.SpeedMedium,
		tick: func(sp sim.Speed) <-chan time.Time {
			return time.After(sp.Interval())
		},
	}
}

// Handler returns the routed HTTP handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("GET /api/buildings", s.handleBuildings)
	mux.HandleFunc("GET /api/upgrades", s.handleUpgrades)
	mux.HandleFunc("POST /api/grid/place", s.handlePlace)
	mux.HandleFunc("POST /api/grid/remove", s.handleRemove)
	mux.HandleFunc("POST /api/grid/upgrade", s.handleApplyUpgrade)
	mux.HandleFunc("GET /api/metrics", s.handleMetrics)
	mux.HandleFunc("GET /api/cost", s.handleCost)
	mux.HandleFunc("GET /api/achievements", s.handleAchievements)
	mux.HandleFunc("GET /api/agents", s.handleAgents)
	mux.HandleFunc("GET /api/validate", s.handleValidate)
	mux.HandleFunc("POST /api/season", s.handleSeason)
	mux.HandleFunc("POST /api/time-of-day", s.handleTimeOfDay)
	mux.HandleFunc("POST /api/advance-year", s.handleAdvanceYear)
	mux.HandleFunc("GET /api/simulation", s.handleSimulationStatus)
	mux.HandleFunc("POST /api/simulation/start", s.handleSimulationStart)
	mux.HandleFunc("POST /api/simulation/pause", s.handleSimulationPause)
	mux.HandleFunc("POST /api/simulation/speed", s.handleSimulationSpeed)
	mux.HandleFunc("POST /api/reset", s.handleReset)
	mux.HandleFunc("GET /api/templates", s.handleTemplates)
	mux.HandleFunc("POST /api/templates/apply", s.handleApplyTemplate)
	mux.HandleFunc("POST /api/generate", s.handleGenerate)
	mux.HandleFunc("GET /api/cities", s.handleListCities)
	mux.HandleFunc("POST /api/cities", s.handleSaveCity)
	mux.HandleFunc("GET /api/cities/{id}", s.handleGetCity)
	mux.HandleFunc("POST /api/cities/{id}/load", s.handleLoadCity)
	mux.HandleFunc("DELETE /api/cities/{id}", s.handleDeleteCity)
	mux.HandleFunc("GET /ws", s.handleWS)

	return mux
}

// Start launches the HTTP server and the broadcast loop.
func (s *Server) Start() error {
	go s.hub.run()
	s.log.Info("server starting", "addr", s.cfg.Addr)
	return http.ListenAndServe(s.cfg.Addr, s.Handler())
}

// publish pushes the current state and any fresh unlocks to the
// websocket clients.
func (s *Server) publish(fresh []achievement.Achievement) {
	s.hub.announce("state", s.engine.Snapshot())
	for _, a := range fresh {
		s.hub.announce("achievement", a)
	}
}
