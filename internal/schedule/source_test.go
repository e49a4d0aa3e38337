package schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
)

const doc = `{"schedules":[{"id":"1","operator":"Blue Shuttle","origin":"Jakarta","destination":"Bandung","price":50000,"departures":["08:00"],"date":"2025-01-01"}]}`

func TestDecode(t *testing.T) {
	got, err := Decode([]byte(doc))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(got) != 1 || got[0].Operator != "Blue Shuttle" || got[0].Price != 50000 || got[0].Departures[0] != "08:00" {
		t.Fatalf("Decode = %+v", got)
	}

	got, err = Decode([]byte(`{}`))
	if err != nil || got == nil || len(got) != 0 {
		t.Fatalf("Decode({}) = %#v, %v", got, err)
	}

	if _, err := Decode([]byte(`{"schedules":[{"price":1}]}`)); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("missing id error = %v", err)
	}
	if _, err := Decode([]byte(`not json`)); err == nil {
		t.Fatal("expected decode error")
	}
}

func TestEmbeddedSource(t *testing.T) {
	got, err := NewEmbeddedSource().Fetch(context.Background())
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if len(got) == 0 {
		t.Fatal("embedded catalog is empty")
	}
}

func TestFileSource(t *testing.T) {
	path := filepath.Join(t.TempDir(), "shuttles.json")
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := NewFileSource(path).Fetch(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("Fetch = %+v, %v", got, err)
	}

	if _, err := NewFileSource(filepath.Join(t.TempDir(), "missing.json")).Fetch(context.Background()); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestHTTPSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/data/shuttles.json" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(doc))
	}))
	defer srv.Close()

	got, err := NewHTTPSource(srv.URL+"/data/shuttles.json", srv.Client()).Fetch(context.Background())
	if err != nil || len(got) != 1 {
		t.Fatalf("Fetch = %+v, %v", got, err)
	}

	if _, err := NewHTTPSource(srv.URL+"/missing", srv.Client()).Fetch(context.Background()); err == nil {
		t.Fatal("expected error on 404")
	}
}

func TestNewSource(t *testing.T) {
	if _, ok := NewSource("", nil).(*EmbeddedSource); !ok {
		t.Error("empty location is not embedded")
	}
	if _, ok := NewSource("https://example.com/shuttles.json", nil).(*HTTPSource); !ok {
		t.Error("URL is not an HTTP source")
	}
	if _, ok := NewSource("./shuttles.json", nil).(*FileSource); !ok {
		t.Error("path is not a file source")
	}
}
