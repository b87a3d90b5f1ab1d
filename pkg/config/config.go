package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds all application configuration
type Config struct {
	Server        ServerConfig
	Parser        ParserConfig
	Observability ObservabilityConfig
}

type ServerConfig struct {
	Host               string
	Port               int
	MaxUploadBytes     int64
	RateLimitPerSecond int
	RateLimitBurst     int
}

type ParserConfig struct {
	// Strictness controls aggregation behavior on descriptive-field
	// disagreements within a SKU group: first, warn or fail.
	Strictness string
}

type ObservabilityConfig struct {
	MetricsEnabled bool
	LogLevel       string
}

// Load reads configuration from environment variables. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Server: ServerConfig{
			Host:               getEnv("SERVER_HOST", "localhost"),
			Port:               getEnvAsInt("SERVER_PORT", 8080),
			MaxUploadBytes:     int64(getEnvAsInt("SERVER_MAX_UPLOAD_BYTES", 32<<20)),
			RateLimitPerSecond: getEnvAsInt("SERVER_RATE_LIMIT_PER_SECOND", 100),
			RateLimitBurst:     getEnvAsInt("SERVER_RATE_LIMIT_BURST", 200),
		},
		Parser: ParserConfig{
			Strictness: getEnv("PARSER_AGGREGATE_STRICTNESS", "first"),
		},
		Observability: ObservabilityConfig{
			MetricsEnabled: getEnvAsBool("METRICS_ENABLED", true),
			LogLevel:       getEnv("LOG_LEVEL", "info"),
		},
	}

	switch cfg.Parser.Strictness {
	case "first", "warn", "fail":
	default:
		return nil, fmt.Errorf("PARSER_AGGREGATE_STRICTNESS must be first, warn or fail, got %q", cfg.Parser.Strictness)
	}

	return cfg, nil
}

// Addr returns the host:port the HTTP server binds to
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if value, err := strconv.Atoi(valueStr); err == nil {
		return value
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if value, err := strconv.ParseBool(valueStr); err == nil {
		return value
	}
	return defaultValue
}
