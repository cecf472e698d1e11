package fake

import (
	"os"
	"strings"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// Config carries environment-driven settings for the fake PetFriends process.
type Config struct {
	Port        string
	PostgresDSN string
	Account     domain.Credentials
	GinDebug    bool
	LogLevel    string
}

// LoadConfig reads environment variables and applies defaults. The seeded
// account falls back to PETFRIENDS_EMAIL/PETFRIENDS_PASSWORD so a suite and
// its fake can share one env file.
func LoadConfig() (Config, error) {
	cfg := Config{
		Port:        envDefault("PORT", "8080"),
		PostgresDSN: strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		Account: domain.Credentials{
			Email:    envDefault("PETFRIENDS_FAKE_EMAIL", envDefault("PETFRIENDS_EMAIL", "tester@example.com")),
			Password: envDefault("PETFRIENDS_FAKE_PASSWORD", envDefault("PETFRIENDS_PASSWORD", "secret")),
		},
		GinDebug: isTruthy(os.Getenv("GIN_DEBUG")),
		LogLevel: envDefault("LOG_LEVEL", "info"),
	}
	return cfg, nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}
