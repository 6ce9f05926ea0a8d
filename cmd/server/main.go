package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/labreserva/booking-api/internal/api"
	"github.com/labreserva/booking-api/internal/api/middleware"
	"github.com/labreserva/booking-api/internal/core/service"
	"github.com/labreserva/booking-api/internal/infrastructure/config"
	mongodb "github.com/labreserva/booking-api/internal/infrastructure/db/mongo"
	redisdb "github.com/labreserva/booking-api/internal/infrastructure/db/redis"
	"github.com/labreserva/booking-api/internal/infrastructure/dns"
	"github.com/labreserva/booking-api/internal/infrastructure/http/handlers"
	"github.com/labreserva/booking-api/internal/infrastructure/queue"
	"github.com/labreserva/booking-api/pkg/logger"
)

const (
	serviceName     = "booking-api"
	shutdownTimeout = 10 * time.Second
)

func main() {
	_ = godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	boot := logger.New(logger.Options{Service: serviceName, Output: os.Stderr})
	cfg := config.MustLoad(ctx, boot)
	log := logger.New(cfg.LoggerOptions(serviceName))

	// --- Storage ---
	mongoURI, _ := cfg.Mongo.ConnectionURI()
	client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: mongoURI, Database: cfg.Mongo.Database})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to mongo")
	}
	defer func() {
		dctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = client.Disconnect(dctx)
	}()
	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		log.Fatal().Err(err).Msg("failed to create indexes")
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer rdb.Close()

	// --- Audit trail ---
	dispatcher := queue.NewDispatcher(cfg.AuditPool.Workers, mongodb.NewEventRepository(db), log)
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	dispatcher.Start(workerCtx)

	// --- Services ---
	authSvc := service.NewAuthService(
		mongodb.NewUserRepository(db),
		dns.NewMXChecker(cfg.Auth.MXLookupTimeout),
		redisdb.NewLoginGuard(rdb, cfg.Auth.LoginMaxAttempts, cfg.Auth.LoginLockoutWindow),
		service.AuthConfig{
			JWTSecret:      cfg.Auth.JWTSecret,
			TokenTTL:       cfg.Auth.TokenTTL,
			BcryptCost:     cfg.Auth.BcryptCost,
			AllowedDomains: cfg.Auth.AllowedDomains,
		},
		log,
	)
	bookingSvc := service.NewBookingService(
		mongodb.NewReservationRepository(db, cfg.Mongo.Transactions),
		dispatcher,
		cfg.Booking.DailyLimit,
		log,
	)

	limiter := middleware.NewRateLimiter(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst)
	go limiter.Run(ctx)

	e := api.NewRouter(api.RouterConfig{
		Auth:    authSvc,
		Tokens:  authSvc,
		Booking: bookingSvc,
		Readiness: handlers.NewHealthDependenciesHandler(map[string]handlers.Check{
			"mongodb": handlers.MongoCheck(db),
			"redis":   handlers.RedisCheck(rdb),
		}),
		RateLimiter: limiter,
		Logger:      log,
		CORSOrigins: cfg.HTTP.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}

	stopWorkers()
	dispatcher.Wait()
	log.Info().Msg("server stopped")
}
