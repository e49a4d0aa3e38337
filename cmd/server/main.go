package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	flag "github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/ToxicBeastt/shuttle-booking/internal/booking"
	"github.com/ToxicBeastt/shuttle-booking/internal/catalog"
	"github.com/ToxicBeastt/shuttle-booking/internal/config"
	"github.com/ToxicBeastt/shuttle-booking/internal/events"
	"github.com/ToxicBeastt/shuttle-booking/internal/handler"
	"github.com/ToxicBeastt/shuttle-booking/internal/latency"
	"github.com/ToxicBeastt/shuttle-booking/internal/logging"
	"github.com/ToxicBeastt/shuttle-booking/internal/models"
	"github.com/ToxicBeastt/shuttle-booking/internal/ratelimit"
	"github.com/ToxicBeastt/shuttle-booking/internal/schedule"
	"github.com/ToxicBeastt/shuttle-booking/internal/storage"
	"github.com/ToxicBeastt/shuttle-booking/internal/timezone"
	"github.com/ToxicBeastt/shuttle-booking/internal/validation"
)

func main() {
	flags := flag.NewFlagSet("shuttle-server", flag.ExitOnError)
	configPath := flags.String("config", "config.yml", "path to the YAML config file")
	_ = flags.Parse(os.Args[1:])

	cfg, err := config.Load(*configPath, flags.Changed("config"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New("shuttle-booking", cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	if err := run(cfg, logger); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg config.Config, logger *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	kv, err := openStorage(cfg.Storage, logger)
	if err != nil {
		return err
	}
	defer func() { _ = kv.Close() }()

	bus := events.NewBus(logger)
	defer func() { _ = bus.Close() }()
	err = bus.SubscribeBookingConfirmed(ctx, func(b models.Booking) {
		logger.Debug("booking event delivered",
			zap.String("topic", events.BookingConfirmedTopic),
			zap.String("booking_id", b.ID),
		)
	})
	if err != nil {
		return fmt.Errorf("subscribe booking events: %w", err)
	}

	store := catalog.NewStore()
	go loadCatalog(ctx, store, schedule.NewSource(cfg.Schedule.Source, nil), cfg.Schedule.Timeout, logger)

	loc := timezone.GetLocationByName(cfg.Timezone)
	schemas := validation.New(loc)
	ledger := storage.NewLedger(kv, logger)
	forms := storage.NewFormCache(kv, logger)

	service := booking.NewService(store, ledger, forms, bus, booking.Config{
		ConfirmDelay:       latency.New(cfg.Latency.Confirm),
		ClearFormOnConfirm: cfg.FormCache.ClearOnConfirm,
	}, logger)

	e := echo.New()
	e.HideBanner = true

	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestID())

	var apiMiddleware []echo.MiddlewareFunc
	if cfg.RateLimit.Enabled {
		limiter := ratelimit.NewClientLimiter(ratelimit.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RPS,
			BurstSize:         cfg.RateLimit.Burst,
		})
		for client, r := range cfg.RateLimit.Clients {
			limiter.SetClientLimit(client, r.RPS, r.Burst)
		}
		apiMiddleware = append(apiMiddleware, limiter.Middleware())
	}

	handler.Register(e, handler.Handlers{
		Search:  handler.NewSearchHandler(store, schemas, latency.New(cfg.Latency.Search), nil),
		Form:    handler.NewFormHandler(store, schemas, forms, nil, logger),
		Booking: handler.NewBookingHandler(service),
	}, apiMiddleware...)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("starting shuttle booking server",
			zap.String("port", cfg.Server.Port),
			zap.String("storage", cfg.Storage.Backend),
			zap.String("timezone", loc.String()),
		)
		if err := e.Start(":" + cfg.Server.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(shutdownCtx)
}

func openStorage(cfg config.StorageConfig, logger *zap.Logger) (storage.KV, error) {
	if cfg.Backend != "redis" {
		logger.Info("using in-memory storage")
		return storage.NewMemoryKV(), nil
	}

	kv, err := storage.NewRedisKV(storage.RedisConfig{
		Host:      cfg.Redis.Host,
		Port:      cfg.Redis.Port,
		Password:  cfg.Redis.Password,
		DB:        cfg.Redis.DB,
		KeyPrefix: cfg.Redis.KeyPrefix,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	logger.Info("redis storage enabled",
		zap.String("addr", cfg.Redis.Host+":"+cfg.Redis.Port),
		zap.Int("db", cfg.Redis.DB),
	)
	return kv, nil
}

// loadCatalog fetches the schedule once. A failure is terminal for the
// process lifetime.
func loadCatalog(ctx context.Context, store *catalog.Store, source schedule.Source, timeout time.Duration, logger *zap.Logger) {
	if timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, timeout)
		defer cancel()
	}

	shuttles, err := source.Fetch(ctx)
	if err != nil {
		logger.Error("failed to load schedule",
			zap.String("source", source.Name()),
			zap.Error(err),
		)
		store.SetLoadError(err)
		return
	}
	store.Load(shuttles)
	logger.Info("schedule loaded",
		zap.String("source", source.Name()),
		zap.Int("shuttles", len(shuttles)),
	)
}
