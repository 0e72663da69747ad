package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const defaultSessionSecret = "your-secret-key-change-in-production"

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	Session   SessionConfig
	Identity  IdentityConfig
	Redis     RedisConfig
	Slots     SlotsConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port string
	Host string
	Env  string
}

type DatabaseConfig struct {
	URL          string // Full database URL
	Host         string
	Port         int
	User         string
	Password     string
	DBName       string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type SessionConfig struct {
	Secret string
	MaxAge int // seconds
}

// IdentityConfig configures verification of identity provider tokens.
// JWKSURL takes precedence over JWTSecret when both are set.
type IdentityConfig struct {
	JWKSURL   string
	JWTSecret string
	Issuer    string
}

type RedisConfig struct {
	URL      string
	Password string
	DB       int
	CacheTTL time.Duration
}

type SlotsConfig struct {
	Timezone        string
	RefreshInterval time.Duration
	RandomizeBooked bool
	RefreshSecret   string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type RateLimitConfig struct {
	PromoAttempts int
	PromoWindow   time.Duration
}

func Load() (*Config, error) {
	// Load .env files if they exist (try .env.local first, then .env)
	_ = godotenv.Load(".env.local")
	_ = godotenv.Load(".env")

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("PORT", "8080"),
			Host: getEnv("HOST", "localhost"),
			Env:  getEnv("ENV", "development"),
		},
		Database: parseDatabaseConfig(),
		Session: SessionConfig{
			Secret: getEnv("SESSION_SECRET", defaultSessionSecret),
			MaxAge: getEnvAsInt("SESSION_MAX_AGE", 86400*7),
		},
		Identity: IdentityConfig{
			JWKSURL:   getEnv("IDENTITY_JWKS_URL", ""),
			JWTSecret: getEnv("IDENTITY_JWT_SECRET", ""),
			Issuer:    getEnv("IDENTITY_ISSUER", ""),
		},
		Redis: RedisConfig{
			URL:      getEnv("REDIS_URL", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
			CacheTTL: getEnvAsDuration("CACHE_TTL", 5*time.Minute),
		},
		Slots: SlotsConfig{
			Timezone:        getEnv("SLOT_TIMEZONE", "UTC"),
			RefreshInterval: getEnvAsDuration("SLOT_REFRESH_INTERVAL", time.Hour),
			RandomizeBooked: getEnvAsBool("SLOT_RANDOMIZE_BOOKED", false),
			RefreshSecret:   getEnv("REFRESH_SECRET", ""),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		RateLimit: RateLimitConfig{
			PromoAttempts: getEnvAsInt("PROMO_RATE_LIMIT", 10),
			PromoWindow:   getEnvAsDuration("PROMO_RATE_WINDOW", time.Minute),
		},
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate rejects configurations that are unsafe to run with
func (c *Config) Validate() error {
	if c.IsProduction() && c.Session.Secret == defaultSessionSecret {
		return fmt.Errorf("SESSION_SECRET must be set in production")
	}
	if _, err := c.Location(); err != nil {
		return fmt.Errorf("invalid SLOT_TIMEZONE %q: %w", c.Slots.Timezone, err)
	}
	if c.Slots.RefreshInterval < 0 {
		return fmt.Errorf("SLOT_REFRESH_INTERVAL cannot be negative")
	}
	// The API always allows credentials, so a wildcard would expose sessions to any site
	if slices.Contains(c.CORS.AllowedOrigins, "*") {
		return fmt.Errorf(`CORS_ALLOWED_ORIGINS cannot contain "*"; list the frontend origins`)
	}
	return nil
}

// IsProduction returns true when running with ENV=production
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// Location returns the time zone slot windows are generated in
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Slots.Timezone)
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func parseDatabaseConfig() DatabaseConfig {
	var config DatabaseConfig

	// Check if DATABASE_URL is provided
	if databaseURL := getEnv("DATABASE_URL", ""); databaseURL != "" {
		config = parseDatabaseURL(databaseURL)
	} else {
		config = DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnvAsInt("DB_PORT", 5432),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", ""),
			DBName:   getEnv("DB_NAME", "bookit"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		}
	}

	config.MaxOpenConns = getEnvAsInt("DB_MAX_OPEN_CONNS", 25)
	config.MaxIdleConns = getEnvAsInt("DB_MAX_IDLE_CONNS", 5)
	return config
}

func parseDatabaseURL(databaseURL string) DatabaseConfig {
	config := DatabaseConfig{
		URL: databaseURL,
	}

	u, err := url.Parse(databaseURL)
	if err != nil {
		// If parsing fails, return the URL as-is
		return config
	}

	config.Host = u.Hostname()
	if u.Port() != "" {
		config.Port, _ = strconv.Atoi(u.Port())
	} else {
		config.Port = 5432
	}

	if u.User != nil {
		config.User = u.User.Username()
		config.Password, _ = u.User.Password()
	}

	config.DBName = strings.TrimPrefix(u.Path, "/")

	config.SSLMode = u.Query().Get("sslmode")
	if config.SSLMode == "" {
		config.SSLMode = "disable"
	}

	return config
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func getEnvAsList(key string, defaultValue []string) []string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	var items []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			items = append(items, item)
		}
	}
	return items
}
