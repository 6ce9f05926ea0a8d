package api

import (
	"github.com/google/uuid"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/labreserva/booking-api/docs"
	"github.com/labreserva/booking-api/internal/api/handler"
	"github.com/labreserva/booking-api/internal/api/middleware"
	"github.com/labreserva/booking-api/internal/core/ports"
	"github.com/labreserva/booking-api/internal/infrastructure/http/handlers"
)

// RouterConfig carries the services and cross-cutting settings the router wires together.
type RouterConfig struct {
	Auth        ports.AuthService
	Tokens      ports.TokenVerifier
	Booking     ports.BookingService
	Readiness   *handlers.HealthDependenciesHandler
	RateLimiter *middleware.RateLimiter
	Logger      zerolog.Logger
	CORSOrigins []string

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer
}

// NewRouter builds and returns the Echo instance with all routes registered.
//
// @title        Lab Booking API
// @version      1.0
// @description  Institutional lab reservation service.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func NewRouter(cfg RouterConfig) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(cfg.Logger)

	registerer := cfg.Registerer
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	gatherer := cfg.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestIDWithConfig(echomiddleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(middleware.RequestLogger(cfg.Logger))
	e.Use(echomiddleware.CORSWithConfig(corsConfig(cfg.CORSOrigins)))
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Namespace:  "booking",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authHandler := handler.NewAuthHandler(cfg.Auth)
	reservationHandler := handler.NewReservationHandler(cfg.Booking)
	requireAuth := middleware.Auth(cfg.Tokens)

	limited := []echo.MiddlewareFunc{}
	if cfg.RateLimiter != nil {
		limited = append(limited, middleware.RateLimit(cfg.RateLimiter))
	}

	e.GET("/", handler.Welcome)

	// --- Reservation routes ---
	e.GET("/informatica", reservationHandler.List, requireAuth)
	e.POST("/informatica/register", reservationHandler.Submit)

	// --- Auth routes ---
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register, limited...)
	auth.POST("/login", authHandler.Login, limited...)
	auth.GET("/solicitacoes", reservationHandler.List, requireAuth)
	auth.GET("/:id", authHandler.GetUser, requireAuth)

	// --- Operations (no auth required) ---
	e.GET("/health", handlers.NewHealthHandler().Liveness)
	if cfg.Readiness != nil {
		e.GET("/health/ready", cfg.Readiness.Readiness)
	}
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}

func corsConfig(origins []string) echomiddleware.CORSConfig {
	cfg := echomiddleware.DefaultCORSConfig
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	}
	cfg.AllowHeaders = []string{
		echo.HeaderOrigin,
		echo.HeaderContentType,
		echo.HeaderAccept,
		echo.HeaderAuthorization,
	}
	return cfg
}
