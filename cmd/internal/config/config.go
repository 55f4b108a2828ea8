package config

import (
	"os"
	"strconv"
)

// Config holds every environment-driven value the service consumes.
// Secrets come from .env locally and from SSM Parameter Store in
// production (see cmd/api/main.go).
type Config struct {
	Port          string
	RadarToken    string
	RadarURL      string
	JWTSecret     string
	RetentionDays int
	DatabasePath  string
}

const defaultRetentionDays = 90

func Load() *Config {
	return &Config{
		Port:          getString("PORT", "3000"),
		RadarToken:    getString("API_TOKEN", ""),
		RadarURL:      getString("URL_RADAR", ""),
		JWTSecret:     getString("JWT_SECRET", "dev-secret-mude-isso"),
		RetentionDays: getInt("CACHE_DIAS", defaultRetentionDays),
		DatabasePath:  getString("DATABASE_PATH", "database.db"),
	}
}

func getString(key, fallback string) string {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return val
}

func getInt(key string, fallback int) int {
	val, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	valInt, err := strconv.Atoi(val)
	if err != nil {
		return fallback
	}
	return valInt
}
