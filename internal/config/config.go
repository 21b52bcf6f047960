package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Application
	AppName      string
	AppEnv       string
	AppURL       string
	Port         string
	SupportEmail string
	ContentPath  string

	// Database (optional driver switch via ENV, default: sqlite)
	DBDriver     string
	DBConnection string

	// Security
	JWTSecret          string
	JWTExpiry          time.Duration
	CORSAllowedOrigins []string
	AuthRateLimit      int
	AuthRateWindow     time.Duration

	// Email
	EmailFrom    string
	ResendAPIKey string

	// Cache (optional, articles are read from the database when unset)
	RedisURL    string
	CachePrefix string
	CacheTTL    time.Duration

	// Messaging (optional, events are logged when unset)
	AMQPURL string

	// Observability (optional)
	SentryDSN string

	ShutdownTimeout time.Duration
}

// Load reads the environment, after a .env file if one exists. Missing
// required keys are reported together.
func Load() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	var missing []string
	required := func(key string) string {
		v := os.Getenv(key)
		if v == "" {
			missing = append(missing, key)
		}
		return v
	}

	cfg := &Config{
		// Application
		AppName:      envString("APP_NAME", "HealthPath"),
		AppEnv:       required("APP_ENV"), // 'development' or 'production'
		AppURL:       required("APP_URL"), // base URL for email links and CORS
		Port:         envString("PORT", "8090"),
		SupportEmail: envString("SUPPORT_EMAIL", "care@example.com"),
		ContentPath:  envString("CONTENT_PATH", "content/articles"),

		// Database
		DBDriver:     envString("DB_DRIVER", "sqlite"),
		DBConnection: envString("DB_CONNECTION", "./data/portal.db?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)"),

		// Security
		JWTSecret:      required("JWT_SECRET"),
		JWTExpiry:      envDuration("JWT_EXPIRY", 168*time.Hour), // 7 days
		AuthRateLimit:  envInt("AUTH_RATE_LIMIT", 5),
		AuthRateWindow: envDuration("AUTH_RATE_WINDOW", 15*time.Minute),

		// Email (RESEND_API_KEY optional in development, required in production)
		EmailFrom:    envString("EMAIL_FROM", "noreply@example.com"),
		ResendAPIKey: envString("RESEND_API_KEY", ""),

		// Cache
		RedisURL:    envString("REDIS_URL", ""),
		CachePrefix: envString("CACHE_PREFIX", "portal"),
		CacheTTL:    envDuration("CACHE_TTL", 5*time.Minute),

		// Messaging
		AMQPURL: envString("AMQP_URL", ""),

		// Observability
		SentryDSN: envString("SENTRY_DSN", ""),

		ShutdownTimeout: envDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("required env vars missing: %s", strings.Join(missing, ", "))
	}

	cfg.CORSAllowedOrigins = envList("CORS_ALLOWED_ORIGINS", []string{cfg.AppURL})

	err = cfg.validate()
	if err != nil {
		return nil, err
	}

	return cfg, nil
}

// validate checks values that depend on each other. Development allows some
// services (like email) to fall back to log mode.
func (c *Config) validate() error {
	var errs []error

	if c.AppEnv != "development" && c.AppEnv != "production" {
		errs = append(errs, fmt.Errorf("APP_ENV must be development or production, got %q", c.AppEnv))
	}

	if c.DBDriver != "sqlite" && c.DBDriver != "pgx" {
		errs = append(errs, fmt.Errorf("DB_DRIVER must be sqlite or pgx, got %q", c.DBDriver))
	}

	if c.IsProduction() {
		if c.ResendAPIKey == "" {
			errs = append(errs, errors.New("production deployment requires RESEND_API_KEY"))
		}
		if len(c.JWTSecret) < 32 {
			errs = append(errs, errors.New("production deployment requires a JWT_SECRET of at least 32 characters"))
		}
	}

	return errors.Join(errs...)
}

func envString(key, def string) string {
	value := os.Getenv(key)
	if value == "" {
		value = def
	}
	return value
}

func envInt(key string, def int) int {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		slog.Warn("config invalid int, using default", "key", key, "value", v, "default", def)
		return def
	}
	return n
}

func envDuration(key string, def time.Duration) time.Duration {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		slog.Warn("config invalid duration, using default", "key", key, "value", v, "default", def)
		return def
	}
	return d
}

// envList splits a comma separated value, dropping empty items.
func envList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}

func (c *Config) IsDevelopment() bool {
	return c.AppEnv == "development"
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

// Sanitized returns a copy with only public fields. Safe to put in the
// request context and to log.
func (c *Config) Sanitized() *Config {
	return &Config{
		AppName:      c.AppName,
		AppEnv:       c.AppEnv,
		AppURL:       c.AppURL,
		Port:         c.Port,
		SupportEmail: c.SupportEmail,
		DBDriver:     c.DBDriver,
		EmailFrom:    c.EmailFrom,
	}
}
