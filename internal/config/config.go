package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all configuration for the application.
type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	NewRelic NewRelicConfig
	Tesla    TeslaConfig
	Uber     UberConfig
	Auth     AuthConfig
	Fare     FareConfig
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// DatabaseConfig holds PostgreSQL configuration.
type DatabaseConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

// RedisConfig holds Redis configuration.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// NewRelicConfig holds New Relic configuration.
type NewRelicConfig struct {
	AppName    string
	LicenseKey string
	Enabled    bool
}

// TeslaConfig holds vehicle telemetry provider configuration.
type TeslaConfig struct {
	BaseURL     string
	AccessToken string
}

// UberConfig holds fare estimate provider configuration.
type UberConfig struct {
	BaseURL     string
	ServerToken string
}

// AuthConfig holds OAuth token issuance configuration. PrivateKeyPath points
// to the PEM file used to sign JWT client assertions.
type AuthConfig struct {
	TokenURL       string
	ClientID       string
	ClientSecret   string
	KeyID          string
	ApplicationID  string
	PrivateKeyPath string
}

// FareConfig holds fare calculation configuration.
type FareConfig struct {
	Strategy string
}

// Load loads configuration from environment variables.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			ReadTimeout:  getDurationEnv("SERVER_READ_TIMEOUT", 10*time.Second),
			WriteTimeout: getDurationEnv("SERVER_WRITE_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     getEnv("DB_PORT", "5432"),
			User:     getEnv("DB_USER", "postgres"),
			Password: getEnv("DB_PASSWORD", "postgres"),
			DBName:   getEnv("DB_NAME", "ride_with_vic"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", "localhost:6379"),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getIntEnv("REDIS_DB", 0),
		},
		NewRelic: NewRelicConfig{
			AppName:    getEnv("NEW_RELIC_APP_NAME", "ride-with-vic"),
			LicenseKey: getEnv("NEW_RELIC_LICENSE_KEY", ""),
			Enabled:    getBoolEnv("NEW_RELIC_ENABLED", false),
		},
		Tesla: TeslaConfig{
			BaseURL:     getEnv("TESLA_API_BASE_URL", "https://owner-api.teslamotors.com"),
			AccessToken: getEnv("TESLA_ACCESS_TOKEN", ""),
		},
		Uber: UberConfig{
			BaseURL:     getEnv("UBER_API_BASE_URL", "https://api.uber.com/v1.2"),
			ServerToken: getEnv("UBER_SERVER_TOKEN", ""),
		},
		Auth: AuthConfig{
			TokenURL:       getEnv("AUTH_TOKEN_URL", ""),
			ClientID:       getEnv("AUTH_CLIENT_ID", ""),
			ClientSecret:   getEnv("AUTH_CLIENT_SECRET", ""),
			KeyID:          getEnv("AUTH_KEY_ID", ""),
			ApplicationID:  getEnv("AUTH_APPLICATION_ID", ""),
			PrivateKeyPath: getEnv("AUTH_PRIVATE_KEY_PATH", ""),
		},
		Fare: FareConfig{
			Strategy: getEnv("FARE_STRATEGY", "FLAT_RATE"),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
