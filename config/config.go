package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime settings, loaded once at startup.
type Config struct {
	Port           string
	MongoURI       string
	MongoDB        string
	UploadDir      string
	RequestTimeout time.Duration
	LogFile        string
}

// Load reads a .env file if present and builds the config from
// environment variables, falling back to defaults.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment variables")
	}

	return &Config{
		Port:           getEnv("PORT", "5001"),
		MongoURI:       getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:        getEnv("MONGO_DB", "campusnet"),
		UploadDir:      getEnv("UPLOAD_DIR", "uploads"),
		RequestTimeout: getDurationEnv("REQUEST_TIMEOUT", 10*time.Second),
		LogFile:        os.Getenv("LOG_FILE"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	logrus.Warnf("Invalid %s value %q, using default", key, value)
	return fallback
}
