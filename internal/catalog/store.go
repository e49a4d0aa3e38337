package catalog

import (
	"errors"
	"sync"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

var ErrNotLoaded = errors.New("catalog not loaded")

// Store holds the session's current State together with the catalog load
// status and the passenger form data. It is shared by request handlers.
type Store struct {
	mu       sync.RWMutex
	state    State
	loaded   bool
	loadErr  error
	formData *models.FormData
}

func NewStore() *Store {
	return &Store{state: NewState(nil)}
}

func (s *Store) Load(shuttles []models.Shuttle) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Load(shuttles)
	s.loaded = true
	s.loadErr = nil
	return s.state
}

// SetLoadError records a failed catalog fetch. The previous catalog, if any,
// is dropped; there is no partial-data fallback.
func (s *Store) SetLoadError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = State{}.Load(nil)
	s.loaded = false
	s.loadErr = err
}

// Ready returns nil once a catalog is loaded, the recorded load error if the
// fetch failed, or ErrNotLoaded while the fetch is still pending.
func (s *Store) Ready() error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.loadErr != nil {
		return s.loadErr
	}
	if !s.loaded {
		return ErrNotLoaded
	}
	return nil
}

func (s *Store) Search(criteria models.SearchCriteria) State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Search(criteria)
	return s.state
}

func (s *Store) Reset() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = s.state.Reset()
	return s.state
}

func (s *Store) Snapshot() State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Store) SetFormData(f *models.FormData) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f == nil {
		s.formData = nil
		return
	}
	c := *f
	s.formData = &c
}

func (s *Store) FormData() (models.FormData, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.formData == nil {
		return models.FormData{}, false
	}
	return *s.formData, true
}
