package catalog

import (
	"errors"
	"testing"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

func TestStoreReadiness(t *testing.T) {
	s := NewStore()
	if err := s.Ready(); !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("Ready() before load = %v, want ErrNotLoaded", err)
	}

	fetchErr := errors.New("boom")
	s.SetLoadError(fetchErr)
	if err := s.Ready(); !errors.Is(err, fetchErr) {
		t.Fatalf("Ready() after failure = %v, want %v", err, fetchErr)
	}

	s.Load(sampleShuttles())
	if err := s.Ready(); err != nil {
		t.Fatalf("Ready() after load = %v", err)
	}
}

func TestStoreSearchAndReset(t *testing.T) {
	s := NewStore()
	s.Load(sampleShuttles())

	st := s.Search(models.SearchCriteria{Origin: "Jakarta", Destination: "Bandung"})
	if got := len(st.Filtered()); got != 2 {
		t.Fatalf("filtered len = %d, want 2", got)
	}
	if got := len(s.Snapshot().Filtered()); got != 2 {
		t.Fatalf("snapshot filtered len = %d, want 2", got)
	}

	s.Reset()
	if s.Snapshot().Criteria() != nil {
		t.Fatal("criteria still active after reset")
	}
}

func TestStoreFormData(t *testing.T) {
	s := NewStore()
	if _, ok := s.FormData(); ok {
		t.Fatal("form data present on a new store")
	}

	f := &models.FormData{Name: "Budi", Origin: "Jakarta"}
	s.SetFormData(f)
	f.Name = "changed"

	got, ok := s.FormData()
	if !ok || got.Name != "Budi" {
		t.Fatalf("FormData() = %+v, %v", got, ok)
	}

	s.SetFormData(nil)
	if _, ok := s.FormData(); ok {
		t.Fatal("form data present after clearing")
	}
}
