package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	rediscache "github.com/srgjo27/service_booking/internal/adapter/cache/redis"
	"github.com/srgjo27/service_booking/internal/adapter/fixture"
	"github.com/srgjo27/service_booking/internal/adapter/handler"
	"github.com/srgjo27/service_booking/internal/adapter/notify/sms"
	"github.com/srgjo27/service_booking/internal/adapter/repository/gormstore"
	"github.com/srgjo27/service_booking/internal/adapter/repository/postgres"
	"github.com/srgjo27/service_booking/internal/core/ports"
	"github.com/srgjo27/service_booking/internal/core/services"
	"github.com/srgjo27/service_booking/internal/platform/config"
	"github.com/srgjo27/service_booking/internal/platform/database"
	"github.com/srgjo27/service_booking/internal/platform/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}

	os.Exit(execute(zl, func() error { return run(cfg, zl) }))
}

// execute flushes the logger before reporting the exit code, since os.Exit
// skips deferred calls in main.
func execute(zl *zap.Logger, fn func() error) int {
	defer func() { _ = zl.Sync() }()

	if err := fn(); err != nil {
		zl.Error("server exited with error", zap.Error(err))
		return 1
	}
	return 0
}

func run(cfg *config.Config, zl *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.NewPostgresDB(ctx, database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.Name,
	}, zl)
	if err != nil {
		return err
	}
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := postgres.Migrate(ctx, db); err != nil {
			return err
		}
		zl.Info("schema applied")
	}

	provider, discounts, err := catalogSource(cfg, db)
	if err != nil {
		return err
	}

	var catalogCache ports.CatalogCache
	if cfg.Redis.Enabled {
		redisClient := redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr(), DB: 0})
		defer redisClient.Close()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			zl.Warn("redis unavailable, catalog cache disabled", zap.String("addr", cfg.Redis.Addr()), zap.Error(err))
		} else {
			zl.Info("redis connected", zap.String("addr", cfg.Redis.Addr()))
			catalogCache = rediscache.NewCatalogCache(redisClient, cfg.Catalog.CacheTTL)
		}
	}

	var notifier ports.BookingNotifier
	smsCfg := sms.Config{
		AccountSID: cfg.Twilio.AccountSID,
		AuthToken:  cfg.Twilio.AuthToken,
		FromNumber: cfg.Twilio.FromNumber,
	}
	if smsCfg.Enabled() {
		notifier = sms.NewNotifier(smsCfg, zl.Named("sms"))
	}

	gormDB, err := gormstore.Open(db)
	if err != nil {
		return err
	}

	loader := services.NewCatalogLoader(provider, discounts, catalogCache, zl.Named("catalog"))
	bookingService := services.NewBookingService(postgres.NewBookingRepository(db), notifier, cfg.Booking.HoldTTL, zl.Named("booking"))
	favoritesService := services.NewFavoritesService(gormstore.NewFavoritesRepository(gormDB))

	go func() {
		if err := bookingService.RunBackgroundCleanup(ctx, cfg.Booking.CleanupSchedule); err != nil {
			zl.Error("background cleanup stopped", zap.Error(err))
		}
	}()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := handler.NewRouter(
		handler.NewBookingHandler(loader, bookingService, zl),
		handler.NewFavoritesHandler(favoritesService, zl),
		zl.Named("http"),
	)

	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		zl.Info("server starting", zap.String("addr", server.Addr), zap.String("catalog_source", cfg.Catalog.Source))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	zl.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return err
	}

	zl.Info("server exiting")
	return nil
}

func catalogSource(cfg *config.Config, db *sql.DB) (ports.CatalogProvider, ports.DiscountProvider, error) {
	if cfg.Catalog.Source == config.CatalogSourceFixture {
		p, err := fixture.Load(cfg.Catalog.FixturePath)
		if err != nil {
			return nil, nil, err
		}
		return p, p, nil
	}
	repo := postgres.NewCatalogRepository(db)
	return repo, repo, nil
}
