package utils

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv reads a .env file if one exists and returns the required
// variables, failing on the first one that is unset.
func LoadEnv(requiredVars []string) (map[string]string, error) {
	_ = godotenv.Load()

	envVars := make(map[string]string)

	for _, key := range requiredVars {
		value := os.Getenv(key)
		if value == "" {
			return nil, fmt.Errorf("missing required environment variable: %s", key)
		}
		envVars[key] = value
	}

	return envVars, nil
}

// Getenv returns the variable or fallback when it is unset.
func Getenv(key, fallback string) string {
	_ = godotenv.Load()

	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// GetDuration parses a Go duration variable, returning fallback when the
// variable is unset.
func GetDuration(key string, fallback time.Duration) (time.Duration, error) {
	raw := Getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid duration in %s: %w", key, err)
	}
	return d, nil
}
