package config

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/sethvargo/go-envconfig"

	"github.com/labreserva/booking-api/pkg/logger"
)

type Config struct {
	Port     string `env:"PORT,      default=8080"`
	Env      string `env:"ENV,       default=production"`
	LogLevel string `env:"LOG_LEVEL, default=info"`

	Auth      AuthConfig
	Booking   BookingConfig
	HTTP      HTTPConfig
	Mongo     MongoConfig
	Redis     RedisConfig
	AuditPool AuditConfig
}

type AuthConfig struct {
	JWTSecret          string        `env:"JWT_SECRET, required"`
	TokenTTL           time.Duration `env:"JWT_TTL, default=24h"`
	BcryptCost         int           `env:"BCRYPT_COST, default=12"`
	AllowedDomains     []string      `env:"ALLOWED_EMAIL_DOMAINS, default=kroton.com.br,cogna.com.br"`
	MXLookupTimeout    time.Duration `env:"MX_LOOKUP_TIMEOUT, default=5s"`
	LoginMaxAttempts   int           `env:"LOGIN_MAX_ATTEMPTS, default=5"`
	LoginLockoutWindow time.Duration `env:"LOGIN_LOCKOUT_WINDOW, default=15m"`
}

type BookingConfig struct {
	DailyLimit int `env:"DAILY_RESERVATION_LIMIT, default=5"`
}

type HTTPConfig struct {
	RateLimitRPS   float64  `env:"RATE_LIMIT_RPS, default=5"`
	RateLimitBurst int      `env:"RATE_LIMIT_BURST, default=10"`
	CORSOrigins    []string `env:"CORS_ALLOWED_ORIGINS"`
}

// MongoConfig accepts either a full MONGO_URI or the Atlas-style parts the
// URI is assembled from.
type MongoConfig struct {
	URI          string `env:"MONGO_URI"`
	User         string `env:"MONGO_USER"`
	Password     string `env:"MONGO_PASS"`
	Host         string `env:"MONGO_HOST"`
	AuthDatabase string `env:"MONGO_DATABASE"`
	Database     string `env:"MONGO_DB, default=lab_booking"`
	Transactions bool   `env:"MONGO_TRANSACTIONS, default=true"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR, default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,   default=0"`
}

type AuditConfig struct {
	Workers int `env:"AUDIT_WORKERS, default=4"`
}

// IsDevelopment reports whether the service runs with developer conveniences
// such as console logging.
func (c *Config) IsDevelopment() bool {
	return strings.EqualFold(c.Env, "development")
}

// LoggerOptions maps LOG_LEVEL and ENV onto the process logger.
func (c *Config) LoggerOptions(service string) logger.Options {
	return logger.Options{
		Level:   c.LogLevel,
		Pretty:  c.IsDevelopment(),
		Service: service,
	}
}

// ConnectionURI returns MONGO_URI when set, otherwise a mongodb+srv URI built
// from the user, password, host and database parts.
func (m MongoConfig) ConnectionURI() (string, error) {
	if m.URI != "" {
		return m.URI, nil
	}
	if m.Host == "" {
		return "", errors.New("either MONGO_URI or MONGO_HOST must be set")
	}

	u := url.URL{
		Scheme:   "mongodb+srv",
		Host:     m.Host,
		Path:     "/" + m.AuthDatabase,
		RawQuery: "retryWrites=true&w=majority",
	}
	if m.User != "" {
		u.User = url.UserPassword(m.User, m.Password)
	}
	return u.String(), nil
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{
		Target:   &cfg,
		Lookuper: lookuper,
	}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	if _, err := cfg.Mongo.ConnectionURI(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}

// MustLoad is Load for process startup: it logs and exits on failure.
func MustLoad(ctx context.Context, log zerolog.Logger) *Config {
	cfg, err := Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}
	return cfg
}
