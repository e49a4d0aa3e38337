package catalog

import (
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

// State is an immutable snapshot of the catalog, the active criteria and the
// filtered view derived from them. Update methods return a new State and
// leave the receiver untouched.
type State struct {
	shuttles []models.Shuttle
	criteria *models.SearchCriteria
	filtered []models.Shuttle
}

func NewState(shuttles []models.Shuttle) State {
	return State{}.Load(shuttles)
}

// Load replaces the catalog wholesale. Active criteria survive the reload
// and are applied to the new entries.
func (s State) Load(shuttles []models.Shuttle) State {
	next := State{
		shuttles: cloneAll(shuttles),
		criteria: s.criteria,
	}
	next.filtered = next.derive()
	return next
}

func (s State) Search(criteria models.SearchCriteria) State {
	next := State{
		shuttles: s.shuttles,
		criteria: cloneCriteria(criteria),
	}
	next.filtered = next.derive()
	return next
}

func (s State) Reset() State {
	next := State{shuttles: s.shuttles}
	next.filtered = next.derive()
	return next
}

func (s State) derive() []models.Shuttle {
	if s.criteria == nil {
		return copyOf(s.shuttles)
	}
	return Filter(s.shuttles, *s.criteria)
}

func (s State) Shuttles() []models.Shuttle {
	return copyOf(s.shuttles)
}

func (s State) Filtered() []models.Shuttle {
	return copyOf(s.filtered)
}

// Criteria returns the active criteria, or nil when no search is active.
func (s State) Criteria() *models.SearchCriteria {
	if s.criteria == nil {
		return nil
	}
	return cloneCriteria(*s.criteria)
}

func cloneCriteria(c models.SearchCriteria) *models.SearchCriteria {
	if c.MinPrice != nil {
		v := *c.MinPrice
		c.MinPrice = &v
	}
	if c.MaxPrice != nil {
		v := *c.MaxPrice
		c.MaxPrice = &v
	}
	return &c
}

func (s State) Find(id string) (models.Shuttle, bool) {
	for _, sh := range s.shuttles {
		if sh.ID == id {
			return sh.Clone(), true
		}
	}
	return models.Shuttle{}, false
}

func cloneAll(shuttles []models.Shuttle) []models.Shuttle {
	out := make([]models.Shuttle, len(shuttles))
	for i, s := range shuttles {
		out[i] = s.Clone()
	}
	return out
}

func copyOf(shuttles []models.Shuttle) []models.Shuttle {
	out := make([]models.Shuttle, len(shuttles))
	copy(out, shuttles)
	return out
}
