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

// Config holds the runtime configuration of the service, read from the
// environment (optionally seeded from a .env file).
type Config struct {
	Port        string
	Environment string
	LogLevel    slog.Level

	Database DatabaseConfig

	RedisURL       string
	MentorCacheTTL time.Duration

	KafkaBrokers []string

	Auth     AuthConfig
	Casdoor  CasdoorConfig
	Firebase FirebaseConfig

	DefaultHourlyRate float64
	// BookingTimezone is the zone session dates and times are entered in.
	BookingTimezone string
}

type DatabaseConfig struct {
	Driver          string
	URL             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	AutoMigrate     bool
}

type AuthConfig struct {
	// Provider is either "firebase" or "casdoor".
	Provider       string
	RequireIDToken bool
}

type FirebaseConfig struct {
	ProjectID string
	CertsURL  string
}

type CasdoorConfig struct {
	Endpoint     string
	ClientID     string
	ClientSecret string
	Cert         string
	Organization string
	Application  string
}

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	ProviderFirebase = "firebase"
	ProviderCasdoor  = "casdoor"
)

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() (*Config, error) {
	// Missing .env is fine; real deployments inject env vars directly.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getenv("PORT", "8080"),
		Environment: getenv("ENVIRONMENT", "development"),
		LogLevel:    parseLogLevel(getenv("LOG_LEVEL", "info")),
		Database: DatabaseConfig{
			Driver:          strings.ToLower(getenv("DB_DRIVER", DriverPostgres)),
			URL:             getenv("DATABASE_URL", ""),
			MaxOpenConns:    getenvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getenvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getenvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
			AutoMigrate:     getenvBool("DB_AUTO_MIGRATE", true),
		},
		RedisURL:       getenv("REDIS_URL", ""),
		MentorCacheTTL: getenvDuration("CACHE_MENTOR_TTL", 10*time.Minute),
		KafkaBrokers:   splitList(getenv("KAFKA_BROKERS", "")),
		Auth: AuthConfig{
			Provider:       strings.ToLower(getenv("AUTH_PROVIDER", ProviderFirebase)),
			RequireIDToken: getenvBool("AUTH_REQUIRE_ID_TOKEN", false),
		},
		Firebase: FirebaseConfig{
			ProjectID: getenv("FIREBASE_PROJECT_ID", ""),
			CertsURL:  getenv("FIREBASE_CERTS_URL", ""),
		},
		Casdoor: CasdoorConfig{
			Endpoint:     getenv("CASDOOR_ENDPOINT", ""),
			ClientID:     getenv("CASDOOR_CLIENT_ID", ""),
			ClientSecret: getenv("CASDOOR_CLIENT_SECRET", ""),
			Cert:         getenv("CASDOOR_CERT", ""),
			Organization: getenv("CASDOOR_ORGANIZATION", ""),
			Application:  getenv("CASDOOR_APPLICATION", ""),
		},
		DefaultHourlyRate: getenvFloat("DEFAULT_HOURLY_RATE", 25),
		BookingTimezone:   getenv("BOOKING_TIMEZONE", "UTC"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every configuration problem at once.
func (c *Config) Validate() error {
	var errs []error

	switch c.Database.Driver {
	case DriverPostgres:
		if c.Database.URL == "" {
			errs = append(errs, errors.New("DATABASE_URL is required for the postgres driver"))
		}
	case DriverSQLite:
	default:
		errs = append(errs, fmt.Errorf("unsupported DB_DRIVER %q", c.Database.Driver))
	}

	switch c.Auth.Provider {
	case ProviderFirebase:
		if c.Firebase.ProjectID == "" {
			errs = append(errs, errors.New("FIREBASE_PROJECT_ID is required for the firebase auth provider"))
		}
	case ProviderCasdoor:
		if c.Casdoor.Endpoint == "" || c.Casdoor.ClientID == "" {
			errs = append(errs, errors.New("CASDOOR_ENDPOINT and CASDOOR_CLIENT_ID are required for the casdoor auth provider"))
		}
	default:
		errs = append(errs, fmt.Errorf("unsupported AUTH_PROVIDER %q", c.Auth.Provider))
	}

	if c.DefaultHourlyRate < 0 {
		errs = append(errs, errors.New("DEFAULT_HOURLY_RATE must not be negative"))
	}

	if _, err := time.LoadLocation(c.BookingTimezone); err != nil {
		errs = append(errs, fmt.Errorf("invalid BOOKING_TIMEZONE %q: %w", c.BookingTimezone, err))
	}

	return errors.Join(errs...)
}

// BookingLocation resolves BookingTimezone, falling back to UTC.
func (c *Config) BookingLocation() *time.Location {
	loc, err := time.LoadLocation(c.BookingTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getenv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && strings.TrimSpace(v) != "" {
		return strings.TrimSpace(v)
	}
	return def
}

func getenvInt(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func getenvFloat(key string, def float64) float64 {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

func getenvBool(key string, def bool) bool {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseLogLevel(v string) slog.Level {
	switch strings.ToLower(v) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
