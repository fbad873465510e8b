package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type envConfig struct {
	APP_PORT string

	DB_HOST              string
	DB_PORT              string
	DB_USER              string
	DB_PASSWORD          string
	DB_NAME              string
	DB_SSL_MODE          string
	DB_MAX_OPEN_CONNS    int
	DB_MAX_IDLE_CONNS    int
	DB_CONN_MAX_LIFETIME time.Duration

	LOG_FILE_PATH      string
	EXPORT_CONFIG_PATH string
}

// DefaultEnvConfig holds the process-wide configuration populated by
// LoadEnvConfig.
var DefaultEnvConfig envConfig

// LoadEnvConfig reads an optional .env file and then the environment. Missing
// optional values fall back to defaults; the database name and user are
// required.
func LoadEnvConfig() error {
	// .env is a local development convenience; absence is not an error.
	_ = godotenv.Load()

	DefaultEnvConfig = envConfig{
		APP_PORT:             getEnv("APP_PORT", "8080"),
		DB_HOST:              getEnv("DB_HOST", "localhost"),
		DB_PORT:              getEnv("DB_PORT", "5432"),
		DB_USER:              os.Getenv("DB_USER"),
		DB_PASSWORD:          os.Getenv("DB_PASSWORD"),
		DB_NAME:              os.Getenv("DB_NAME"),
		DB_SSL_MODE:          getEnv("DB_SSL_MODE", "disable"),
		DB_MAX_OPEN_CONNS:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
		DB_MAX_IDLE_CONNS:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
		DB_CONN_MAX_LIFETIME: getEnvDuration("DB_CONN_MAX_LIFETIME", 30*time.Minute),
		LOG_FILE_PATH:        os.Getenv("LOG_FILE_PATH"),
		EXPORT_CONFIG_PATH:   os.Getenv("EXPORT_CONFIG_PATH"),
	}

	if DefaultEnvConfig.DB_USER == "" {
		return fmt.Errorf("DB_USER is required")
	}
	if DefaultEnvConfig.DB_NAME == "" {
		return fmt.Errorf("DB_NAME is required")
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fallback
	}
	return d
}
