package config

import (
	"os"
	"strconv"
)

// Config holds server settings resolved from the environment.
type Config struct {
	Port     int
	LogLevel string
}

// Load reads configuration from environment variables with defaults.
func Load() *Config {
	return &Config{
		Port:     envInt("SHEPHERD_PORT", 3847),
		LogLevel: envStr("LOG_LEVEL", "info"),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
