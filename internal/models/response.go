package models

import "time"

type SearchResponse struct {
	Criteria     *SearchCriteria `json:"criteria,omitempty"`
	TotalResults int             `json:"totalResults"`
	Shuttles     []Shuttle       `json:"shuttles"`
}

type FormResponse struct {
	Form    FormData          `json:"form"`
	Valid   bool              `json:"valid"`
	Errors  map[string]string `json:"errors,omitempty"`
	MinDate string            `json:"minDate"`
}

type BookingSummary struct {
	PassengerName  string `json:"passengerName"`
	ShuttleID      string `json:"shuttleId"`
	Operator       string `json:"operator"`
	Route          string `json:"route"`
	Date           string `json:"date"`
	Time           string `json:"time"`
	Timezone       string `json:"timezone"`
	Price          int64  `json:"price"`
	PriceFormatted string `json:"priceFormatted"`
}

type BookingRow struct {
	No             int       `json:"no"`
	ID             string    `json:"id"`
	Operator       string    `json:"operator"`
	PassengerName  string    `json:"passengerName"`
	Route          string    `json:"route"`
	Date           string    `json:"date"`
	Time           string    `json:"time"`
	PriceFormatted string    `json:"priceFormatted"`
	ConfirmedAt    time.Time `json:"confirmedAt"`
}

type BookingConfirmation struct {
	Message string  `json:"message"`
	Booking Booking `json:"booking"`
}

type BookingsResponse struct {
	Total    int          `json:"total"`
	Bookings []BookingRow `json:"bookings"`
	Message  string       `json:"message,omitempty"`
}

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Code    int               `json:"code"`
	Fields  map[string]string `json:"fields,omitempty"`
}
