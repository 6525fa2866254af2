package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Auth     AuthConfig
	Market   MarketConfig
	Snapshot SnapshotConfig
	CORS     CORSConfig
	Log      LogConfig
}

// ServerConfig holds server-specific configuration
type ServerConfig struct {
	Port string
	Host string
	Addr string // Combined host:port for convenience
}

// DatabaseConfig holds database-specific configuration
type DatabaseConfig struct {
	Path string
}

// AuthConfig holds the shared-secret passwords and the session token key.
// AdminPassword grants the admin role; GuestPassword is optional and grants
// read-only access.
type AuthConfig struct {
	AdminPassword string
	GuestPassword string
	SessionKey    string // base64url-encoded 32-byte fernet key
	SessionTTL    time.Duration
}

// MarketConfig holds the market-data policy knobs. The defaults encode the
// degrade-on-failure behavior: when the upstream provider cannot deliver an
// exchange rate, DefaultExchangeRate is substituted.
type MarketConfig struct {
	DomesticSuffix      string        // ticker suffix marking the domestic market
	DefaultExchangeRate float64       // TWD per USD fallback
	QuoteCacheTTL       time.Duration // in-memory quote cache expiry
}

// SnapshotConfig holds the daily snapshot scheduler configuration
type SnapshotConfig struct {
	Enabled  bool
	Schedule string // cron expression
}

// CORSConfig holds CORS-specific configuration
type CORSConfig struct {
	AllowedOrigins []string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string
	Pretty bool
}

// Load reads configuration from environment variables and .env file
func Load() (*Config, error) {
	// Try to load .env file (ignore error if it doesn't exist)
	_ = godotenv.Load()

	config := &Config{
		Server: ServerConfig{
			Port: getEnv("SERVER_PORT", "5001"),
			Host: getEnv("SERVER_HOST", "localhost"),
		},
		Database: DatabaseConfig{
			Path: getEnv("DB_PATH", "./data/portfolio_visualizer.db"),
		},
		Auth: AuthConfig{
			AdminPassword: os.Getenv("SITE_PASSWORD"),
			GuestPassword: os.Getenv("GUEST_PASSWORD"),
			SessionKey:    os.Getenv("SESSION_KEY"),
			SessionTTL:    7 * 24 * time.Hour,
		},
		Market: MarketConfig{
			DomesticSuffix:      getEnv("DOMESTIC_SUFFIX", ".TW"),
			DefaultExchangeRate: getEnvFloat("DEFAULT_EXCHANGE_RATE", 32),
			QuoteCacheTTL:       getEnvDuration("QUOTE_CACHE_TTL", 60*time.Second),
		},
		Snapshot: SnapshotConfig{
			Enabled:  getEnvBool("SNAPSHOT_ENABLED", true),
			Schedule: getEnv("SNAPSHOT_SCHEDULE", "0 22 * * *"),
		},
		CORS: CORSConfig{
			AllowedOrigins: []string{
				"http://localhost:3000",
				"http://localhost",
			},
		},
		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Pretty: getEnvBool("LOG_PRETTY", false),
		},
	}

	if config.Auth.AdminPassword == "" {
		return nil, fmt.Errorf("SITE_PASSWORD environment variable is not set")
	}
	if config.Auth.SessionKey == "" {
		return nil, fmt.Errorf("SESSION_KEY environment variable is not set")
	}

	// Combine host and port
	config.Server.Addr = fmt.Sprintf("%s:%s", config.Server.Host, config.Server.Port)

	return config, nil
}

// getEnv gets an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvFloat gets an environment variable parsed as a float or returns a default value
func getEnvFloat(key string, defaultValue float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvBool gets an environment variable parsed as a bool or returns a default value
func getEnvBool(key string, defaultValue bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}

// getEnvDuration gets an environment variable parsed as a duration or returns a default value
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return defaultValue
	}
	return parsed
}
