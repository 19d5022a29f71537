package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	HTTPPort    string
	PostgresDSN string

	// PreviewTTL bounds how long a prepared winners preview waits for
	// operator confirmation.
	PreviewTTL time.Duration

	// ReportTopProjects sets the default highlighted subset size in the jury
	// control report.
	ReportTopProjects int
}

func Load() (Config, error) {
	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "expoawards"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	return Config{
		ServiceName:       service,
		HTTPPort:          port,
		PostgresDSN:       os.Getenv("POSTGRES_DSN"),
		PreviewTTL:        envDuration("WINNERS_PREVIEW_TTL", 30*time.Minute),
		ReportTopProjects: envInt("REPORT_TOP_PROJECTS", 3),
	}, nil
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := time.ParseDuration(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func envInt(name string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}
