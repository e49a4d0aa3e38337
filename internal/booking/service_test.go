package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/storage"
)

var fixedNow = time.Date(2025, 1, 1, 2, 0, 0, 0, time.UTC)

type recordingNotifier struct {
	got []models.Booking
	err error
}

func (n *recordingNotifier) PublishBookingConfirmed(ctx context.Context, b models.Booking) error {
	n.got = append(n.got, b)
	return n.err
}

type fixture struct {
	store    *catalog.Store
	kv       *storage.MemoryKV
	ledger   *storage.Ledger
	forms    *storage.FormCache
	notifier *recordingNotifier
	svc      *Service
}

func blueShuttle() models.Shuttle {
	return models.Shuttle{
		ID:          "1",
		Operator:    "Blue Shuttle",
		Origin:      "Jakarta",
		Destination: "Bandung",
		Price:       50000,
		Departures:  []string{"08:00"},
		Date:        "2025-01-01",
	}
}

func newFixture(t *testing.T, cfg Config) *fixture {
	t.Helper()
	f := &fixture{
		store:    catalog.NewStore(),
		kv:       storage.NewMemoryKV(),
		notifier: &recordingNotifier{},
	}
	f.ledger = storage.NewLedger(f.kv, nil)
	f.forms = storage.NewFormCache(f.kv, nil)
	if cfg.Now == nil {
		cfg.Now = func() time.Time { return fixedNow }
	}
	if cfg.NewID == nil {
		cfg.NewID = func() string { return "booking-1" }
	}
	f.svc = NewService(f.store, f.ledger, f.forms, f.notifier, cfg, nil)
	return f
}

func TestSearchThenConfirm(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, Config{})
	f.store.Load([]models.Shuttle{blueShuttle()})
	f.store.SetFormData(&models.FormData{Name: "Budi", Origin: "Jakarta", Destination: "Bandung", DepartureDate: "2025-01-01"})

	st := f.store.Search(models.SearchCriteria{Origin: "Jakarta", Destination: "Bandung"})
	results := st.Filtered()
	if len(results) != 1 || results[0].ID != "1" {
		t.Fatalf("search results = %+v", results)
	}

	b, err := f.svc.Confirm(ctx, models.BookingRequest{ShuttleID: results[0].ID, Time: "08:00"})
	if err != nil {
		t.Fatalf("Confirm: %v", err)
	}

	stored := f.ledger.List(ctx)
	if len(stored) != 1 {
		t.Fatalf("ledger has %d bookings, want 1", len(stored))
	}
	got := stored[0]
	if got.ID != b.ID || got.Time != "08:00" || got.Shuttle.ID != "1" || got.Shuttle.Operator != "Blue Shuttle" || got.Shuttle.Price != 50000 {
		t.Fatalf("stored booking = %+v", got)
	}
	if got.Passenger.Name != "Budi" {
		t.Fatalf("passenger = %+v", got.Passenger)
	}
	if !got.ConfirmedAt.Equal(fixedNow) {
		t.Fatalf("confirmedAt = %v, want %v", got.ConfirmedAt, fixedNow)
	}

	if f.store.Snapshot().Criteria() != nil {
		t.Fatal("search not reset after confirmation")
	}
	if len(f.notifier.got) != 1 || f.notifier.got[0].ID != "booking-1" {
		t.Fatalf("notifications = %+v", f.notifier.got)
	}
}

func TestConfirmRejectsBadSelection(t *testing.T) {
	f := newFixture(t, Config{})
	f.store.Load([]models.Shuttle{blueShuttle()})

	tests := []struct {
		name string
		req  models.BookingRequest
		want error
	}{
		{"missing fields", models.BookingRequest{}, ErrMissingSelection},
		{"unknown shuttle", models.BookingRequest{ShuttleID: "99", Time: "08:00"}, ErrShuttleNotFound},
		{"time not offered", models.BookingRequest{ShuttleID: "1", Time: "13:00"}, ErrDepartureNotOffered},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := f.svc.Confirm(context.Background(), tt.req); !errors.Is(err, tt.want) {
				t.Fatalf("Confirm error = %v, want %v", err, tt.want)
			}
		})
	}

	if got := f.ledger.List(context.Background()); len(got) != 0 {
		t.Fatalf("rejected confirmations recorded %d bookings", len(got))
	}
}

func TestConfirmWithoutCatalog(t *testing.T) {
	f := newFixture(t, Config{})
	f.store.SetLoadError(errors.New("fetch failed"))

	_, err := f.svc.Confirm(context.Background(), models.BookingRequest{ShuttleID: "1", Time: "08:00"})
	if !errors.Is(err, ErrCatalogUnavailable) {
		t.Fatalf("Confirm error = %v, want ErrCatalogUnavailable", err)
	}
}

func TestConfirmSurvivesNotifierFailure(t *testing.T) {
	f := newFixture(t, Config{})
	f.notifier.err = errors.New("bus closed")
	f.store.Load([]models.Shuttle{blueShuttle()})

	if _, err := f.svc.Confirm(context.Background(), models.BookingRequest{ShuttleID: "1", Time: "08:00"}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := f.ledger.List(context.Background()); len(got) != 1 {
		t.Fatalf("ledger has %d bookings, want 1", len(got))
	}
}

func TestConfirmFormCacheLifecycle(t *testing.T) {
	ctx := context.Background()
	draft := models.FormData{Name: "Budi"}

	keep := newFixture(t, Config{})
	keep.store.Load([]models.Shuttle{blueShuttle()})
	_ = keep.forms.Save(ctx, draft)
	if _, err := keep.svc.Confirm(ctx, models.BookingRequest{ShuttleID: "1", Time: "08:00"}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := keep.forms.Load(ctx); got != draft {
		t.Fatalf("draft cleared without ClearFormOnConfirm: %+v", got)
	}

	cleared := newFixture(t, Config{ClearFormOnConfirm: true})
	cleared.store.Load([]models.Shuttle{blueShuttle()})
	_ = cleared.forms.Save(ctx, draft)
	if _, err := cleared.svc.Confirm(ctx, models.BookingRequest{ShuttleID: "1", Time: "08:00"}); err != nil {
		t.Fatalf("Confirm: %v", err)
	}
	if got := cleared.forms.Load(ctx); !got.IsZero() {
		t.Fatalf("draft kept with ClearFormOnConfirm: %+v", got)
	}
}

func TestPreview(t *testing.T) {
	f := newFixture(t, Config{})
	f.store.Load([]models.Shuttle{blueShuttle()})
	f.store.SetFormData(&models.FormData{Name: "Budi"})

	sum, err := f.svc.Preview(models.BookingRequest{ShuttleID: "1", Time: "08:00"})
	if err != nil {
		t.Fatalf("Preview: %v", err)
	}
	want := models.BookingSummary{
		PassengerName:  "Budi",
		ShuttleID:      "1",
		Operator:       "Blue Shuttle",
		Route:          "Jakarta → Bandung",
		Date:           "2025-01-01",
		Time:           "08:00",
		Timezone:       "WIB",
		Price:          50000,
		PriceFormatted: "Rp50.000",
	}
	if sum != want {
		t.Fatalf("Preview = %+v, want %+v", sum, want)
	}
	if got := f.ledger.List(context.Background()); len(got) != 0 {
		t.Fatal("Preview recorded a booking")
	}
}

func TestList(t *testing.T) {
	ctx := context.Background()
	ids := []string{"a", "b"}
	n := 0
	f := newFixture(t, Config{NewID: func() string {
		id := ids[n]
		n++
		return id
	}})
	f.store.Load([]models.Shuttle{blueShuttle()})

	if _, err := f.svc.Confirm(ctx, models.BookingRequest{ShuttleID: "1", Time: "08:00"}); err != nil {
		t.Fatal(err)
	}
	f.store.SetFormData(&models.FormData{Name: "Siti"})
	if _, err := f.svc.Confirm(ctx, models.BookingRequest{ShuttleID: "1", Time: "08:00"}); err != nil {
		t.Fatal(err)
	}

	rows := f.svc.List(ctx)
	if len(rows) != 2 {
		t.Fatalf("List returned %d rows", len(rows))
	}
	if rows[0].No != 1 || rows[0].ID != "a" || rows[0].PassengerName != PassengerFallback {
		t.Fatalf("row 0 = %+v", rows[0])
	}
	if rows[1].No != 2 || rows[1].PassengerName != "Siti" || rows[1].PriceFormatted != "Rp50.000" || rows[1].Route != "Jakarta → Bandung" {
		t.Fatalf("row 1 = %+v", rows[1])
	}
}
