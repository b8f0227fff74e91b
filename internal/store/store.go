// Package store persists saved cities per user.
package store

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/grid"
	"github.com/SathvikHaridasu/SUSTAIN-CITY/pkg/metrics"
)

// ErrNotFound is returned when a city id does not exist for the user.
var ErrNotFound = errors.New("city not found")

// City is one saved city layout with its metrics at save time.
type City struct {
	ID           string          `json:"id"`
	UserID       string          `json:"user_id"`
	Name         string          `json:"name"`
	Grid         *grid.Grid      `json:"grid"`
	Metrics      metrics.Metrics `json:"metrics"`
	CreatedAt    time.Time       `json:"created_at"`
	LastModified time.Time       `json:"last_modified"`
}

// NewCity builds a saved city with a fresh id and timestamps. The
// grid is deep copied so later edits do not bleed into the save.
func NewCity(userID, name string, g *grid.Grid, m metrics.Metrics) *City {
	now := time.Now().UTC()
	return &City{
		ID:           uuid.NewString(),
		UserID:       userID,
		Name:         name,
		Grid:         g.Clone(),
		Metrics:      m,
		CreatedAt:    now,
		LastModified: now,
	}
}

// Repo is the interface for saved-city persistence. All methods are
// scoped to a single user: cities saved by one user are invisible to
// another.
type Repo interface {
	// List returns the user's saved cities, newest first.
	List(userID string) ([]*City, error)

	// Get returns one saved city, or ErrNotFound.
	Get(userID, cityID string) (*City, error)

	// Save inserts or updates a city and bumps LastModified.
	Save(city *City) error

	// Delete removes a saved city, or returns ErrNotFound.
	Delete(userID, cityID string) error
}
