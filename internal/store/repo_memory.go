package store

import (
	"sort"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo.
type MemoryRepo struct {
	mu     sync.RWMutex
	cities map[string]map[string]*City // userID -> cityID -> city
}

// NewMemoryRepo creates a new in-memory city repository.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		cities: make(map[string]map[string]*City),
	}
}

// List returns the user's saved cities, newest first.
func (r *MemoryRepo) List(userID string) ([]*City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*City, 0, len(r.cities[userID]))
	for _, c := range r.cities[userID] {
		out = append(out, clone(c))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}

// Get returns one saved city, or ErrNotFound.
func (r *MemoryRepo) Get(userID, cityID string) (*City, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.cities[userID][cityID]
	if !ok {
		return nil, ErrNotFound
	}
	return clone(c), nil
}

// Save inserts or updates a city and bumps LastModified.
func (r *MemoryRepo) Save(city *City) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	city.LastModified = time.Now().UTC()
	if r.cities[city.UserID] == nil {
		r.cities[city.UserID] = make(map[string]*City)
	}
	r.cities[city.UserID][city.ID] = clone(city)
	return nil
}

// Delete removes a saved city, or returns ErrNotFound.
func (r *MemoryRepo) Delete(userID, cityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.cities[userID][cityID]; !ok {
		return ErrNotFound
	}
	delete(r.cities[userID], cityID)
	return nil
}

func clone(c *City) *City {
	out := *c
	if c.Grid != nil {
		out.Grid = c.Grid.Clone()
	}
	return &out
}
