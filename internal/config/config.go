package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds the process settings.
type Config struct {
	DBPath    string // path to the SQLite database file
	LogLevel  string // logrus level name
	LogFormat string // "text" or "json"
}

// Load reads configuration from a .env file, if one is present, and
// from the environment, falling back to defaults.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logrus.Debug(".env file not found, using environment")
	}

	config := &Config{
		DBPath:    getEnv("LEDGER_DB_PATH", "ledger.db"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
