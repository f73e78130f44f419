// Package config provides configuration management for the conciliador
// toolkit. It loads configuration from environment variables and .env files.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config represents the application configuration.
type Config struct {
	API     APIConfig
	Local   LocalConfig
	Suggest SuggestConfig
	Debug   bool
}

// APIConfig represents reconciliation service configuration.
type APIConfig struct {
	BaseURL   string
	Timeout   time.Duration
	RedisAddr string
}

// LocalConfig represents local storage configuration.
type LocalConfig struct {
	DBPath      string
	MappingPath string
}

// SuggestConfig represents the default tolerance window for suggestion
// requests.
type SuggestConfig struct {
	Days      int
	AmountTol float64
}

// Load loads configuration from environment variables.
// It automatically loads .env file from the current directory if available.
// You can optionally specify a custom .env file path.
func Load(envPath ...string) (*Config, error) {
	if len(envPath) > 0 && envPath[0] != "" {
		if err := godotenv.Load(envPath[0]); err != nil {
			return nil, fmt.Errorf("failed to load .env file: %w", err)
		}
	} else {
		// Try to load .env from current directory (ignore error if not found)
		_ = godotenv.Load()
	}

	timeoutSec, err := parseIntEnv("CONCILIADOR_API_TIMEOUT", 30)
	if err != nil {
		return nil, fmt.Errorf("invalid CONCILIADOR_API_TIMEOUT: %w", err)
	}

	days, err := parseIntEnv("CONCILIADOR_SUGGEST_DAYS", 5)
	if err != nil {
		return nil, fmt.Errorf("invalid CONCILIADOR_SUGGEST_DAYS: %w", err)
	}

	amountTol, err := parseFloatEnv("CONCILIADOR_SUGGEST_AMOUNT_TOL", 0.01)
	if err != nil {
		return nil, fmt.Errorf("invalid CONCILIADOR_SUGGEST_AMOUNT_TOL: %w", err)
	}

	config := &Config{
		API: APIConfig{
			BaseURL:   os.Getenv("CONCILIADOR_API_BASE"),
			Timeout:   time.Duration(timeoutSec) * time.Second,
			RedisAddr: os.Getenv("CONCILIADOR_REDIS_ADDR"),
		},
		Local: LocalConfig{
			DBPath:      getEnvOrDefault("CONCILIADOR_DB_PATH", "./data/conciliador.db"),
			MappingPath: os.Getenv("CONCILIADOR_MAPPING_PATH"),
		},
		Suggest: SuggestConfig{
			Days:      days,
			AmountTol: amountTol,
		},
		Debug: os.Getenv("DEBUG") == "true",
	}

	return config, nil
}

// Validate validates the configuration.
// It checks if all required fields are set.
func (c *Config) Validate(required ...[]string) error {
	var missing []string

	for _, path := range required {
		if len(path) < 2 {
			continue
		}

		var value string
		switch path[0] {
		case "api":
			switch path[1] {
			case "baseUrl":
				value = c.API.BaseURL
			case "redisAddr":
				value = c.API.RedisAddr
			}
		case "local":
			switch path[1] {
			case "dbPath":
				value = c.Local.DBPath
			case "mappingPath":
				value = c.Local.MappingPath
			}
		}

		if value == "" {
			missing = append(missing, joinPath(path))
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %v\nPlease check your .env file or environment variables", missing)
	}

	return nil
}

// getEnvOrDefault returns the value of the environment variable or a default value if not set.
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// parseIntEnv parses an int from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseIntEnv(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("invalid integer value for %s: %s", key, value)
	}

	return parsed, nil
}

// parseFloatEnv parses a float64 from an environment variable.
// Returns defaultValue if the environment variable is not set.
func parseFloatEnv(key string, defaultValue float64) (float64, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}

	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid float value for %s: %s", key, value)
	}

	return parsed, nil
}

// joinPath joins a path slice into a dot-separated string.
func joinPath(path []string) string {
	result := ""
	for i, p := range path {
		if i > 0 {
			result += "."
		}
		result += p
	}
	return result
}
