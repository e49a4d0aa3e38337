package models

import "time"

// Shuttle is one schedule entry of the catalog. Price is in whole rupiah.
type Shuttle struct {
	ID          string   `json:"id"`
	Operator    string   `json:"operator"`
	Origin      string   `json:"origin"`
	Destination string   `json:"destination"`
	Price       int64    `json:"price"`
	Departures  []string `json:"departures"`
	Date        string   `json:"date"`
}

// HasDeparture reports whether t is one of the entry's departure times.
func (s Shuttle) HasDeparture(t string) bool {
	for _, d := range s.Departures {
		if d == t {
			return true
		}
	}
	return false
}

// Clone returns a copy that shares no memory with s.
func (s Shuttle) Clone() Shuttle {
	c := s
	if s.Departures != nil {
		c.Departures = append([]string(nil), s.Departures...)
	}
	return c
}

type ScheduleDocument struct {
	Schedules []Shuttle `json:"schedules"`
}

// FormData is the passenger-facing subset of the search form.
type FormData struct {
	Name          string `json:"name,omitempty"`
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	DepartureDate string `json:"departureDate,omitempty"`
}

func (f FormData) IsZero() bool {
	return f == FormData{}
}

type Booking struct {
	ID          string    `json:"id"`
	Shuttle     Shuttle   `json:"shuttle"`
	Time        string    `json:"time"`
	Passenger   FormData  `json:"passenger"`
	ConfirmedAt time.Time `json:"confirmedAt"`
}
