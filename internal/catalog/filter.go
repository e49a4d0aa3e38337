package catalog

import (
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

// Filter returns the entries of shuttles matching criteria, in catalog order.
// The result never aliases the input slice.
func Filter(shuttles []models.Shuttle, criteria models.SearchCriteria) []models.Shuttle {
	result := make([]models.Shuttle, 0, len(shuttles))

	for _, s := range shuttles {
		if Matches(s, criteria) {
			result = append(result, s)
		}
	}

	return result
}

// Matches ANDs every constraint set on criteria. String fields compare with
// exact, case-sensitive equality.
func Matches(s models.Shuttle, criteria models.SearchCriteria) bool {
	if criteria.Origin != "" && s.Origin != criteria.Origin {
		return false
	}
	if criteria.Destination != "" && s.Destination != criteria.Destination {
		return false
	}

	if criteria.Operator != "" && s.Operator != criteria.Operator {
		return false
	}

	if criteria.DepartureTime != "" && !s.HasDeparture(criteria.DepartureTime) {
		return false
	}

	if criteria.MinPrice != nil && s.Price < *criteria.MinPrice {
		return false
	}
	if criteria.MaxPrice != nil && s.Price > *criteria.MaxPrice {
		return false
	}

	if criteria.Date != "" && s.Date != criteria.Date {
		return false
	}

	return true
}
