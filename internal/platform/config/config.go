package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CatalogSourcePostgres = "postgres"
	CatalogSourceFixture  = "fixture"
)

type Config struct {
	LogLevel string
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Catalog  CatalogConfig
	Booking  BookingConfig
	Twilio   TwilioConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host        string
	Port        string
	User        string
	Password    string
	Name        string
	AutoMigrate bool
}

type RedisConfig struct {
	Host    string
	Port    string
	Enabled bool
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", r.Host, r.Port)
}

type CatalogConfig struct {
	Source      string
	FixturePath string
	CacheTTL    time.Duration
}

type BookingConfig struct {
	HoldTTL         time.Duration
	CleanupSchedule string
}

type TwilioConfig struct {
	AccountSID string
	AuthToken  string
	FromNumber string
}

// Load reads a .env file when one exists and then the process environment.
// Variables already set in the environment win over the file.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				return nil, fmt.Errorf("failed to load %s: %w", f, err)
			}
		}
	}

	cfg := &Config{
		LogLevel: getEnv("LOG_LEVEL", "info"),
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			ReadTimeout:     getDuration("SERVER_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getDuration("SERVER_WRITE_TIMEOUT", 10*time.Second),
			ShutdownTimeout: getDuration("SERVER_SHUTDOWN_TIMEOUT", 5*time.Second),
		},
		Database: DatabaseConfig{
			Host:        getEnv("DB_HOST", "localhost"),
			Port:        getEnv("DB_PORT", "5432"),
			User:        getEnv("DB_USER", "postgres"),
			Password:    getEnv("DB_PASSWORD", ""),
			Name:        getEnv("DB_NAME", "service_booking"),
			AutoMigrate: getBool("DB_AUTO_MIGRATE", false),
		},
		Redis: RedisConfig{
			Host:    getEnv("REDIS_HOST", "localhost"),
			Port:    getEnv("REDIS_PORT", "6379"),
			Enabled: getBool("REDIS_ENABLED", true),
		},
		Catalog: CatalogConfig{
			Source:      strings.ToLower(getEnv("CATALOG_SOURCE", CatalogSourcePostgres)),
			FixturePath: getEnv("CATALOG_FIXTURE_PATH", "catalog.yaml"),
			CacheTTL:    getDuration("CATALOG_CACHE_TTL", 5*time.Minute),
		},
		Booking: BookingConfig{
			HoldTTL:         getDuration("BOOKING_HOLD_TTL", 15*time.Minute),
			CleanupSchedule: getEnv("BOOKING_CLEANUP_SCHEDULE", "@every 1m"),
		},
		Twilio: TwilioConfig{
			AccountSID: getEnv("TWILIO_ACCOUNT_SID", ""),
			AuthToken:  getEnv("TWILIO_AUTH_TOKEN", ""),
			FromNumber: getEnv("TWILIO_PHONE_NUMBER", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	switch c.Catalog.Source {
	case CatalogSourcePostgres, CatalogSourceFixture:
	default:
		return fmt.Errorf("CATALOG_SOURCE must be %q or %q, got %q", CatalogSourcePostgres, CatalogSourceFixture, c.Catalog.Source)
	}
	if c.Booking.HoldTTL <= 0 {
		return fmt.Errorf("BOOKING_HOLD_TTL must be positive")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}

func getBool(key string, fallback bool) bool {
	v := getEnv(key, "")
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}
