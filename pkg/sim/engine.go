// Package sim runs the city simulation: it owns the grid, the season
// and day cycle, active disasters, and the achievement latch, and
// recomputes the full metric pipeline after every mutation.
package sim

import (
	"fmt"
	"log/slog"
	"math/rand"
	"sync"
	"time"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/achievement"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/analytics"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/catalog"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/daynight"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/disaster"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/population"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/season"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/upgrade"
)

// StartYear is the simulation's first calendar year.
const StartYear = 2025

// Speed controls how fast automatic year progression runs.
type Speed string

const (
	SpeedSlow   Speed = "slow"
	SpeedMedium Speed = "medium"
	SpeedFast   Speed = "fast"
)

// Valid reports whether s is a recognized speed preset.
func (s Speed) Valid() bool {
	switch s {
	case SpeedSlow, SpeedMedium, SpeedFast:
		return true
	}
	return false
}

// Interval returns the wall-clock duration of one simulated year.
// Unknown speeds run at medium.
func (s Speed) Interval() time.Duration {
	switch s {
	case SpeedSlow:
		return 5 * time.Second
	case SpeedFast:
		return time.Second
	default:
		return 3 * time.Second
	}
}

// Rand supplies the randomness the simulation consumes.
type Rand interface {
	Float64() float64
	Intn(n int) int
}

// State is a snapshot of the full simulation.
type State struct {
	Grid         *grid.Grid                `json:"grid"`
	Season       season.Season             `json:"season"`
	TimeOfDay    daynight.TimeOfDay        `json:"timeOfDay"`
	Year         int                       `json:"year"`
	Disasters    disaster.State            `json:"disasters"`
	Metrics      metrics.Metrics           `json:"metrics"`
	Enhanced     analytics.Enhanced        `json:"enhanced"`
	Achievements []achievement.Achievement `json:"achievements"`
	Population   population.State          `json:"population"`
}

// Engine drives the simulation. All methods are safe for concurrent
// use.
type Engine struct {
	buildings *catalog.Catalog
	upgrades  *upgrade.Catalog
	calc      *metrics.Calculator
	rng       Rand
	log       *slog.Logger

	mu    sync.Mutex
	state State
}

// Option configures an Engine.
type Option func(*Engine)

// WithRand replaces the engine's randomness source.
func WithRand(r Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger replaces the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithGrid starts the engine from an existing grid instead of an
// empty one.
func WithGrid(g *grid.Grid) Option {
	return func(e *Engine) { e.state.Grid = g.Clone() }
}

// New creates an engine with an empty city in spring of the start
// year. Nil catalogs fall back to the embedded defaults.
func New(buildings *catalog.Catalog, upgrades *upgrade.Catalog, opts ...Option) *Engine {
	if buildings == nil {
		buildings = catalog.Default()
	}
	if upgrades == nil {
		upgrades = upgrade.Default()
	}
	e := &Engine{
		buildings: buildings,
		upgrades:  upgrades,
		calc:      metrics.NewCalculator(upgrades),
		rng:       rand.New(rand.NewSource(time.Now().UnixNano())),
		log:       slog.Default(),
		state: State{
			Grid:         grid.New(),
			Season:       season.Spring,
			TimeOfDay:    daynight.Day,
			Year:         StartYear,
			Disasters:    disaster.DefaultState(),
			Achievements: achievement.Definitions(),
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	e.recompute()
	return e
}

// Buildings exposes the engine's building catalog.
func (e *Engine) Buildings() *catalog.Catalog { return e.buildings }

// Upgrades exposes the engine's upgrade catalog.
func (e *Engine) Upgrades() *upgrade.Catalog { return e.upgrades }

// Snapshot returns a deep copy of the current state.
func (e *Engine) Snapshot() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshotLocked()
}

func (e *Engine) snapshotLocked() State {
	st := e.state
	st.Grid = e.state.Grid.Clone()
	st.Disasters.Active = append([]disaster.Disaster(nil), e.state.Disasters.Active...)
	st.Disasters.History = append([]disaster.Disaster(nil), e.state.Disasters.History...)
	st.Achievements = append([]achievement.Achievement(nil), e.state.Achievements...)
	return st
}

// Place puts the named building at (x, y) and recomputes.
func (e *Engine) Place(id string, x, y int) ([]achievement.Achievement, error) {
	b, ok := e.buildings.Get(id)
	if !ok {
		return nil, fmt.Errorf("unknown building %q", id)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.Grid.Place(b, x, y); err != nil {
		return nil, err
	}
	e.log.Debug("building placed", "id", id, "x", x, "y", y)
	return e.recompute(), nil
}

// Remove clears the building covering (x, y) and recomputes.
func (e *Engine) Remove(x, y int) ([]achievement.Achievement, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.state.Grid.Remove(x, y); err != nil {
		return nil, err
	}
	e.log.Debug("building removed", "x", x, "y", y)
	return e.recompute(), nil
}

// ApplyUpgrade installs an upgrade on the building covering (x, y).
// The upgrade must exist, not already be installed, apply to that
// building, and not require a later year.
func (e *Engine) ApplyUpgrade(x, y int, upgradeID string) ([]achievement.Achievement, error) {
	u, ok := e.upgrades.Get(upgradeID)
	if !ok {
		return nil, fmt.Errorf("unknown upgrade %q", upgradeID)
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	anchor := e.state.Grid.AnchorOf(x, y)
	if anchor == nil {
		return nil, fmt.Errorf("no building at (%d,%d)", x, y)
	}
	b := *anchor.Building
	if !upgrade.CanUpgrade(b, u, e.state.Year) {
		return nil, fmt.Errorf("upgrade %q cannot be applied to %q in %d", upgradeID, b.ID, e.state.Year)
	}
	upgraded := upgrade.Apply(b, upgradeID)
	if err := e.state.Grid.ReplaceBuilding(anchor.X, anchor.Y, upgraded); err != nil {
		return nil, err
	}
	e.log.Info("upgrade applied", "building", b.ID, "upgrade", upgradeID, "x", anchor.X, "y", anchor.Y)
	return e.recompute(), nil
}

// SetSeason switches the active season and recomputes.
func (e *Engine) SetSeason(s season.Season) ([]achievement.Achievement, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("unknown season %q", s)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Season = s
	return e.recompute(), nil
}

// SetTimeOfDay switches the day phase. The phase only affects agent
// visualization, so no recompute happens.
func (e *Engine) SetTimeOfDay(t daynight.TimeOfDay) error {
	if !daynight.Valid(t) {
		return fmt.Errorf("unknown time of day %q", t)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.TimeOfDay = t
	return nil
}

// AdvanceYear moves the simulation forward one year. Active disasters
// age and may retire, a new disaster may start, and the whole metric
// pipeline recomputes against the new disaster set.
func (e *Engine) AdvanceYear() []achievement.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.state.Year++
	e.state.Disasters = disaster.Tick(
		e.state.Grid, e.state.Season, e.state.Metrics, e.state.Year, e.state.Disasters, e.rng)

	if n := len(e.state.Disasters.Active); n > 0 && e.state.Disasters.LastDisasterYear == e.state.Year {
		d := e.state.Disasters.Active[n-1]
		e.log.Warn("disaster struck", "type", d.Type, "duration", d.Duration, "year", e.state.Year)
	}
	e.log.Debug("year advanced", "year", e.state.Year, "active_disasters", len(e.state.Disasters.Active))
	return e.recompute()
}

// Reset returns the engine to an empty city at the start year. The
// achievement latch is cleared too.
func (e *Engine) Reset() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state = State{
		Grid:         grid.New(),
		Season:       season.Spring,
		TimeOfDay:    daynight.Day,
		Year:         StartYear,
		Disasters:    disaster.DefaultState(),
		Achievements: achievement.Definitions(),
	}
	e.recompute()
	e.log.Info("simulation reset")
}

// LoadGrid replaces the city layout, keeping year, season, and
// unlocked achievements. Used when restoring a saved city or applying
// a template or generated layout.
func (e *Engine) LoadGrid(g *grid.Grid) []achievement.Achievement {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.state.Grid = g.Clone()
	return e.recompute()
}

// Agents samples foot-traffic agents for the current time of day.
func (e *Engine) Agents(maxAgents int) []population.Agent {
	e.mu.Lock()
	defer e.mu.Unlock()
	return population.Agents(e.state.Grid, e.state.TimeOfDay, maxAgents, e.rng)
}

// recompute runs the metric pipeline and returns any achievements
// unlocked by the new state. Callers must hold e.mu.
//
// The order is fixed: base building impacts, then seasonal modifiers,
// then active disaster effects. Derived analytics and the achievement
// latch always see the fully modified metrics.
func (e *Engine) recompute() []achievement.Achievement {
	raw := e.calc.Calculate(e.state.Grid)
	raw = season.Apply(raw, e.state.Season)
	raw = disaster.Apply(raw, e.state.Disasters.Active)
	e.state.Metrics = raw

	survived := len(e.state.Disasters.History) - len(e.state.Disasters.Active)
	enhanced := analytics.Enhance(e.state.Grid, raw, survived)

	e.state.Population = population.Distribute(e.state.Grid, 0)
	enhanced.Population = e.state.Population.Total
	e.state.Enhanced = enhanced

	prev := e.state.Achievements
	e.state.Achievements = achievement.Check(prev, enhanced)
	fresh := achievement.NewlyUnlocked(prev, e.state.Achievements)
	for _, a := range fresh {
		e.log.Info("achievement unlocked", "id", a.ID, "name", a.Name)
	}
	return fresh
}
