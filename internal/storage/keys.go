package storage

// Persisted keys. Each key's read/write/clear lifecycle lives in the typed
// repository that owns it.
const (
	BookingsKey = "bookings"
	FormKey     = "shuttleSearchForm"
)
