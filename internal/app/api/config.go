package api

import (
	"fmt"
	"os"
	"strconv"
	"strings"
)

// Config carries environment-driven settings for the API process.
type Config struct {
	Port                 string
	PostgresDSN          string
	UserServiceURL       string
	BookServiceURL       string
	RemoteTimeoutSeconds int
}

// LoadConfig reads environment variables, applies defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:                 envDefault("PORT", "8080"),
		PostgresDSN:          strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		UserServiceURL:       envDefault("USER_SERVICE_URL", "http://localhost:8081"),
		BookServiceURL:       envDefault("BOOK_SERVICE_URL", "http://localhost:8082"),
		RemoteTimeoutSeconds: 5,
	}
	if raw := strings.TrimSpace(os.Getenv("REMOTE_TIMEOUT_SECONDS")); raw != "" {
		seconds, err := strconv.Atoi(raw)
		if err != nil || seconds <= 0 {
			return Config{}, fmt.Errorf("REMOTE_TIMEOUT_SECONDS must be a positive integer")
		}
		cfg.RemoteTimeoutSeconds = seconds
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
