package models

// SearchCriteria is a predicate over the catalog. Empty strings and nil
// bounds impose no constraint.
type SearchCriteria struct {
	Origin        string `json:"origin,omitempty"`
	Destination   string `json:"destination,omitempty"`
	Operator      string `json:"operator,omitempty"`
	DepartureTime string `json:"departureTime,omitempty"`
	MinPrice      *int64 `json:"minPrice,omitempty"`
	MaxPrice      *int64 `json:"maxPrice,omitempty"`
	Date          string `json:"date,omitempty"`
}

func (c SearchCriteria) IsEmpty() bool {
	return c.Origin == "" &&
		c.Destination == "" &&
		c.Operator == "" &&
		c.DepartureTime == "" &&
		c.MinPrice == nil &&
		c.MaxPrice == nil &&
		c.Date == ""
}

// SearchFilterForm carries the raw values of the generic search form.
// Prices stay strings until validation has accepted them.
type SearchFilterForm struct {
	Origin        string `json:"origin"`
	Destination   string `json:"destination"`
	Operator      string `json:"operator"`
	DepartureTime string `json:"departureTime"`
	MinPrice      string `json:"minPrice"`
	MaxPrice      string `json:"maxPrice"`
	DepartureDate string `json:"departureDate"`
}

type BookingRequest struct {
	ShuttleID string `json:"shuttleId"`
	Time      string `json:"time"`
}
