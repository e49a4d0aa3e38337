package timezone

import (
	"strings"
	"time"
)

var (
	WIB  *time.Location // UTC+7 - Western Indonesia (Jakarta, Bandung, Surabaya)
	WITA *time.Location // UTC+8 - Central Indonesia (Bali, Makassar)
	WIT  *time.Location // UTC+9 - Eastern Indonesia (Papua)
)

func init() {
	WIB = time.FixedZone("WIB", 7*60*60)
	WITA = time.FixedZone("WITA", 8*60*60)
	WIT = time.FixedZone("WIT", 9*60*60)
}

const DateLayout = "2006-01-02"

var cityTimezones = map[string]string{
	// WIB
	"jakarta":    "WIB",
	"bandung":    "WIB",
	"bogor":      "WIB",
	"surabaya":   "WIB",
	"semarang":   "WIB",
	"yogyakarta": "WIB",
	"solo":       "WIB",
	"malang":     "WIB",
	"cirebon":    "WIB",
	"medan":      "WIB",

	// WITA
	"denpasar":   "WITA",
	"makassar":   "WITA",
	"balikpapan": "WITA",
	"mataram":    "WITA",

	// WIT
	"jayapura": "WIT",
	"ambon":    "WIT",
}

func GetTimezoneByCity(city string) string {
	if tz, ok := cityTimezones[strings.ToLower(strings.TrimSpace(city))]; ok {
		return tz
	}
	return "WIB"
}

// GetLocationByName resolves WIB/WITA/WIT, their UTC offsets, "Local", or an
// IANA zone name. Unknown names fall back to WIB.
func GetLocationByName(name string) *time.Location {
	switch strings.ToUpper(name) {
	case "WITA", "UTC+8":
		return WITA
	case "WIT", "UTC+9":
		return WIT
	case "WIB", "UTC+7", "":
		return WIB
	case "LOCAL":
		return time.Local
	default:
		if loc, err := time.LoadLocation(name); err == nil {
			return loc
		}
		return WIB
	}
}

// StartOfDay drops the time-of-day of t as observed in loc.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	t = t.In(loc)
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, loc)
}

// Today formats the calendar date of now in loc.
func Today(now time.Time, loc *time.Location) string {
	return now.In(loc).Format(DateLayout)
}

// ParseDate reads a YYYY-MM-DD date (an RFC3339 timestamp is also accepted
// and truncated) as midnight in loc.
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation(DateLayout, s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, &time.ParseError{
			Value:   s,
			Message: "unable to parse date",
		}
	}
	return StartOfDay(t, loc), nil
}

// NotBefore reports whether date falls on the same day as now or later, at
// day granularity in loc.
func NotBefore(date, now time.Time, loc *time.Location) bool {
	return !StartOfDay(date, loc).Before(StartOfDay(now, loc))
}
