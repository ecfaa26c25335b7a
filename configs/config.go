package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the runtime defaults the CLI falls back to when a flag is
// not given
type Config struct {
	AccuracyThreshold  float64
	WaterfallPrecision int32
	CacheTTL           time.Duration
	OutputDir          string
}

// LoadConfig loads configuration from the environment, reading a .env
// file first when one is present
func LoadConfig() *Config {
	// Missing .env is fine; the environment may carry everything
	_ = godotenv.Load()

	return &Config{
		AccuracyThreshold:  getEnvFloat("DEMANDRECON_ACCURACY_THRESHOLD", 75),
		WaterfallPrecision: int32(getEnvInt("DEMANDRECON_WATERFALL_PRECISION", 0)),
		CacheTTL:           getEnvDuration("DEMANDRECON_CACHE_TTL", 15*time.Minute),
		OutputDir:          getEnv("DEMANDRECON_OUTPUT_DIR", ""),
	}
}

// getEnv gets an environment variable with a default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if parsed, err := time.ParseDuration(value); err == nil {
			return parsed
		}
	}
	return defaultValue
}
