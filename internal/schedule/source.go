package schedule

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/schedule/data"
)

var ErrInvalidEntry = errors.New("invalid schedule entry")

// Source yields the full schedule catalog. It is read once at start-up.
type Source interface {
	Name() string
	Fetch(ctx context.Context) ([]models.Shuttle, error)
}

// Decode parses a {"schedules": [...]} document.
func Decode(raw []byte) ([]models.Shuttle, error) {
	var doc models.ScheduleDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode schedules: %w", err)
	}
	if doc.Schedules == nil {
		return []models.Shuttle{}, nil
	}
	for i, s := range doc.Schedules {
		if s.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrInvalidEntry, i)
		}
		if s.Price < 0 {
			return nil, fmt.Errorf("%w: entry %s has negative price", ErrInvalidEntry, s.ID)
		}
	}
	return doc.Schedules, nil
}

type EmbeddedSource struct{}

func NewEmbeddedSource() *EmbeddedSource {
	return &EmbeddedSource{}
}

func (s *EmbeddedSource) Name() string {
	return "embedded"
}

func (s *EmbeddedSource) Fetch(ctx context.Context) ([]models.Shuttle, error) {
	return Decode(data.Shuttles)
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Name() string {
	return "file:" + s.path
}

func (s *FileSource) Fetch(ctx context.Context) ([]models.Shuttle, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("read schedules: %w", err)
	}
	return Decode(raw)
}

type HTTPSource struct {
	url    string
	client *http.Client
}

func NewHTTPSource(url string, client *http.Client) *HTTPSource {
	if client == nil {
		client = &http.Client{}
	}
	return &HTTPSource{url: url, client: client}
}

func (s *HTTPSource) Name() string {
	return s.url
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]models.Shuttle, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", s.url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, s.url)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.url, err)
	}
	return Decode(raw)
}

// NewSource picks a source from a location string: "" or "embedded" for the
// built-in catalog, an http(s) URL, or a file path.
func NewSource(location string, client *http.Client) Source {
	switch {
	case location == "" || location == "embedded":
		return NewEmbeddedSource()
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		return NewHTTPSource(location, client)
	default:
		return NewFileSource(location)
	}
}
