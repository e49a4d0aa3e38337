package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/latency"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/storage"
	"github.com/ToxicBeastt/shuttle-booking/internal/timezone"
	"github.com/ToxicBeastt/shuttle-booking/pkg/currency"
)

var (
	ErrCatalogUnavailable  = errors.New("catalog unavailable")
	ErrShuttleNotFound     = errors.New("shuttle not found")
	ErrDepartureNotOffered = errors.New("departure time not offered by shuttle")
	ErrMissingSelection    = errors.New("shuttle and departure time are required")
)

const PassengerFallback = "N/A"

type Notifier interface {
	PublishBookingConfirmed(ctx context.Context, booking models.Booking) error
}

type Config struct {
	ConfirmDelay       latency.Delay
	ClearFormOnConfirm bool
	Now                func() time.Time
	NewID              func() string
}

type Service struct {
	store    *catalog.Store
	ledger   *storage.Ledger
	forms    *storage.FormCache
	notifier Notifier
	config   Config
	logger   *zap.Logger
}

func NewService(store *catalog.Store, ledger *storage.Ledger, forms *storage.FormCache, notifier Notifier, config Config, logger *zap.Logger) *Service {
	if config.Now == nil {
		config.Now = time.Now
	}
	if config.NewID == nil {
		config.NewID = func() string { return uuid.New().String() }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:    store,
		ledger:   ledger,
		forms:    forms,
		notifier: notifier,
		config:   config,
		logger:   logger,
	}
}

// Preview builds the confirmation summary for a selection without
// recording anything.
func (s *Service) Preview(req models.BookingRequest) (models.BookingSummary, error) {
	shuttle, err := s.selection(req)
	if err != nil {
		return models.BookingSummary{}, err
	}
	form, _ := s.store.FormData()
	return summarize(shuttle, req.Time, form), nil
}

// Confirm appends exactly one booking to the ledger and resets the search.
func (s *Service) Confirm(ctx context.Context, req models.BookingRequest) (models.Booking, error) {
	shuttle, err := s.selection(req)
	if err != nil {
		return models.Booking{}, err
	}

	if err := s.config.ConfirmDelay.Wait(ctx); err != nil {
		return models.Booking{}, err
	}

	form, _ := s.store.FormData()
	b := models.Booking{
		ID:          s.config.NewID(),
		Shuttle:     shuttle,
		Time:        req.Time,
		Passenger:   form,
		ConfirmedAt: s.config.Now().UTC(),
	}

	if err := s.ledger.Append(ctx, b); err != nil {
		return models.Booking{}, fmt.Errorf("record booking: %w", err)
	}
	s.logger.Info("booking confirmed",
		zap.String("booking_id", b.ID),
		zap.String("shuttle_id", shuttle.ID),
		zap.String("time", b.Time),
	)

	s.store.Reset()

	if s.config.ClearFormOnConfirm && s.forms != nil {
		if err := s.forms.Clear(ctx); err != nil {
			s.logger.Warn("clearing form draft failed", zap.Error(err))
		}
	}

	if s.notifier != nil {
		if err := s.notifier.PublishBookingConfirmed(ctx, b); err != nil {
			s.logger.Warn("publishing booking event failed",
				zap.String("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}

	return b, nil
}

func (s *Service) List(ctx context.Context) []models.BookingRow {
	bookings := s.ledger.List(ctx)
	rows := make([]models.BookingRow, len(bookings))
	for i, b := range bookings {
		name := b.Passenger.Name
		if name == "" {
			name = PassengerFallback
		}
		rows[i] = models.BookingRow{
			No:             i + 1,
			ID:             b.ID,
			Operator:       b.Shuttle.Operator,
			PassengerName:  name,
			Route:          route(b.Shuttle),
			Date:           b.Shuttle.Date,
			Time:           b.Time,
			PriceFormatted: currency.FormatRupiah(b.Shuttle.Price),
			ConfirmedAt:    b.ConfirmedAt,
		}
	}
	return rows
}

func (s *Service) selection(req models.BookingRequest) (models.Shuttle, error) {
	if req.ShuttleID == "" || req.Time == "" {
		return models.Shuttle{}, ErrMissingSelection
	}
	if err := s.store.Ready(); err != nil {
		return models.Shuttle{}, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}

	shuttle, ok := s.store.Snapshot().Find(req.ShuttleID)
	if !ok {
		return models.Shuttle{}, fmt.Errorf("%w: %s", ErrShuttleNotFound, req.ShuttleID)
	}
	if !shuttle.HasDeparture(req.Time) {
		return models.Shuttle{}, fmt.Errorf("%w: %s at %s", ErrDepartureNotOffered, req.ShuttleID, req.Time)
	}
	return shuttle, nil
}

func summarize(s models.Shuttle, t string, form models.FormData) models.BookingSummary {
	return models.BookingSummary{
		PassengerName:  form.Name,
		ShuttleID:      s.ID,
		Operator:       s.Operator,
		Route:          route(s),
		Date:           s.Date,
		Time:           t,
		Timezone:       timezone.GetTimezoneByCity(s.Origin),
		Price:          s.Price,
		PriceFormatted: currency.FormatRupiah(s.Price),
	}
}

func route(s models.Shuttle) string {
	return s.Origin + " → " + s.Destination
}
