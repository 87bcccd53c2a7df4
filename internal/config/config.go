package config

import (
	"log"
	"os"
	"strconv"
)

type Config struct {
	Port         string
	DatabasePath string
	Env          string
	// SummaryCron is the cron expression for the daily sales summary job.
	SummaryCron    string
	SummaryEnabled bool
}

// Load loads configuration from environment with sensible defaults.
// Precedence: explicit env var > .env file (if loaded by caller) > default.
func Load() Config {
	cfg := Config{}
	cfg.Port = getEnv("PORT", "8080")
	cfg.DatabasePath = getEnv("DATABASE_PATH", "smartbill.db")
	cfg.Env = getEnv("APP_ENV", "development")
	cfg.SummaryCron = getEnv("SALES_SUMMARY_CRON", "0 20 * * *")
	cfg.SummaryEnabled = ParseBool("SALES_SUMMARY_ENABLED", false)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// ParseBool reads an env var as bool with default.
func ParseBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			log.Printf("invalid boolean for %s: %s", key, v)
			return def
		}
		return b
	}
	return def
}
