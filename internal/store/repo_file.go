package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// FileRepo persists cities to JSON files, one file per user.
type FileRepo struct {
	mu      sync.Mutex
	dataDir string
}

// NewFileRepo creates a file-backed city repository. dataDir is the
// directory where per-user save files are stored.
func NewFileRepo(dataDir string) (*FileRepo, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, err
	}
	return &FileRepo{dataDir: dataDir}, nil
}

func (r *FileRepo) filePath(userID string) string {
	// User ids come from request headers; keep the filename flat.
	safe := strings.Map(func(c rune) rune {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9', c == '-', c == '_':
			return c
		default:
			return '_'
		}
	}, userID)
	return filepath.Join(r.dataDir, safe+".json")
}

func (r *FileRepo) load(userID string) (map[string]*City, error) {
	data, err := os.ReadFile(r.filePath(userID))
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]*City{}, nil
		}
		return nil, err
	}
	var cities map[string]*City
	if err := json.Unmarshal(data, &cities); err != nil {
		return nil, fmt.Errorf("decoding saves for %q: %w", userID, err)
	}
	if cities == nil {
		cities = map[string]*City{}
	}
	return cities, nil
}

func (r *FileRepo) write(userID string, cities map[string]*City) error {
	data, err := json.MarshalIndent(cities, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(r.filePath(userID), data, 0644)
}

// List returns the user's saved cities, newest first.
func (r *FileRepo) List(userID string) ([]*City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load(userID)
	if err != nil {
		return nil, err
	}
	out := make([]*City, 0, len(cities))
	for _, c := range cities {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].LastModified.After(out[j].LastModified)
	})
	return out, nil
}

// Get returns one saved city, or ErrNotFound.
func (r *FileRepo) Get(userID, cityID string) (*City, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load(userID)
	if err != nil {
		return nil, err
	}
	c, ok := cities[cityID]
	if !ok {
		return nil, ErrNotFound
	}
	return c, nil
}

// Save inserts or updates a city and bumps LastModified.
func (r *FileRepo) Save(city *City) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load(city.UserID)
	if err != nil {
		return err
	}
	city.LastModified = time.Now().UTC()
	cities[city.ID] = city
	return r.write(city.UserID, cities)
}

// Delete removes a saved city, or returns ErrNotFound.
func (r *FileRepo) Delete(userID, cityID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	cities, err := r.load(userID)
	if err != nil {
		return err
	}
	if _, ok := cities[cityID]; !ok {
		return ErrNotFound
	}
	delete(cities, cityID)
	return r.write(userID, cities)
}
