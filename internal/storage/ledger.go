package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/models"
)

// Ledger is the append-only list of confirmed bookings, stored as one JSON
// array under BookingsKey.
type Ledger struct {
	kv     KV
	logger *zap.Logger
	mu     sync.Mutex
}

func NewLedger(kv KV, logger *zap.Logger) *Ledger {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ledger{kv: kv, logger: logger}
}

// List never fails: an unreadable or corrupt ledger reads as empty.
func (l *Ledger) List(ctx context.Context) []models.Booking {
	bookings, err := l.read(ctx)
	if err != nil {
		l.logger.Warn("reading bookings failed, treating as empty", zap.Error(err))
		return []models.Booking{}
	}
	return bookings
}

// Append refuses to write when the stored ledger cannot be read, so a
// transient backend failure never replaces earlier bookings.
func (l *Ledger) Append(ctx context.Context, b models.Booking) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	existing, err := l.read(ctx)
	if err != nil {
		return fmt.Errorf("read bookings: %w", err)
	}

	bookings := append(existing, b)
	data, err := json.Marshal(bookings)
	if err != nil {
		return fmt.Errorf("encode bookings: %w", err)
	}
	if err := l.kv.Put(ctx, BookingsKey, data); err != nil {
		return fmt.Errorf("store bookings: %w", err)
	}
	return nil
}

// read surfaces backend errors. Corrupt JSON reads as an empty ledger.
func (l *Ledger) read(ctx context.Context) ([]models.Booking, error) {
	data, ok, err := l.kv.Get(ctx, BookingsKey)
	if err != nil {
		return nil, err
	}
	if !ok || len(data) == 0 {
		return []models.Booking{}, nil
	}

	var bookings []models.Booking
	if err := json.Unmarshal(data, &bookings); err != nil {
		l.logger.Warn("stored bookings are corrupt, treating as empty", zap.Error(err))
		return []models.Booking{}, nil
	}
	if bookings == nil {
		bookings = []models.Booking{}
	}
	return bookings, nil
}
