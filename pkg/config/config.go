package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// DefaultReferenceDate anchors the duration features when REFERENCE_DATE is
// unset or unparseable. It matches the default dates assumed for churn
// queries that omit their ISO dates.
const DefaultReferenceDate = "2024-01-01"

// Config holds application configuration
type Config struct {
	Port          string
	Environment   string
	DataDir       string
	ReferenceDate string
	// Security configuration
	AllowedOrigins  string
	EnableRateLimit bool
	MaxRequestSize  int64
}

// New creates a new configuration instance from environment variables
func New() *Config {
	return &Config{
		Port:          getEnv("PORT", "8080"),
		Environment:   getEnv("ENV", "development"),
		DataDir:       getEnv("DATA_DIR", "data"),
		ReferenceDate: getEnv("REFERENCE_DATE", DefaultReferenceDate),
		// Security configuration
		AllowedOrigins:  getEnv("ALLOWED_ORIGINS", ""),
		EnableRateLimit: getEnv("ENABLE_RATE_LIMIT", "true") == "true",
		MaxRequestSize:  getEnvAsInt64("MAX_REQUEST_SIZE", 1*1024*1024), // 1MB default
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// GetReferenceDate parses the configured reference date, falling back to the
// default when the value is not a valid ISO date.
func (c *Config) GetReferenceDate() time.Time {
	if t, err := time.Parse("2006-01-02", c.ReferenceDate); err == nil {
		return t
	}
	t, _ := time.Parse("2006-01-02", DefaultReferenceDate)
	return t
}

// GetAllowedOrigins returns a slice of allowed CORS origins
func (c *Config) GetAllowedOrigins() []string {
	if c.AllowedOrigins == "" {
		return []string{}
	}
	return strings.Split(c.AllowedOrigins, ",")
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}
