package suite

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/Apurer/petfriends-api-tests/internal/petfriends/client"
	"github.com/Apurer/petfriends-api-tests/internal/petfriends/domain"
)

// ErrMissingCredentials is returned when email or password is not configured.
var ErrMissingCredentials = errors.New("PETFRIENDS_EMAIL and PETFRIENDS_PASSWORD must be set")

// Config carries environment-driven settings for a suite run.
type Config struct {
	BaseURL        string
	Credentials    domain.Credentials
	RequestTimeout time.Duration
	FixturesDir    string
	LogLevel       string
}

// LoadConfig loads envFile (when non-empty, or PETFRIENDS_ENV_FILE, or ./.env
// when present) and then reads the environment. Variables already exported
// win over the file.
func LoadConfig(envFile string) (Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return Config{}, err
	}
	cfg := Config{
		BaseURL: envDefault("PETFRIENDS_BASE_URL", client.DefaultBaseURL),
		Credentials: domain.Credentials{
			Email:    strings.TrimSpace(os.Getenv("PETFRIENDS_EMAIL")),
			Password: os.Getenv("PETFRIENDS_PASSWORD"),
		},
		FixturesDir: strings.TrimSpace(os.Getenv("PETFRIENDS_FIXTURES_DIR")),
		LogLevel:    envDefault("LOG_LEVEL", "info"),
	}
	if raw := strings.TrimSpace(os.Getenv("PETFRIENDS_REQUEST_TIMEOUT")); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil || timeout < 0 {
			return Config{}, fmt.Errorf("PETFRIENDS_REQUEST_TIMEOUT must be a non-negative duration")
		}
		cfg.RequestTimeout = timeout
	}
	return cfg, nil
}

// Validate checks the settings needed to talk to the service.
func (c Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return errors.New("PETFRIENDS_BASE_URL must not be empty")
	}
	if c.Credentials.Email == "" || c.Credentials.Password == "" {
		return ErrMissingCredentials
	}
	return nil
}

func loadEnvFile(path string) error {
	explicit := true
	if path == "" {
		path = strings.TrimSpace(os.Getenv("PETFRIENDS_ENV_FILE"))
	}
	if path == "" {
		path, explicit = ".env", false
	}
	if _, err := os.Stat(path); err != nil {
		if !explicit && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("env file %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load env file %s: %w", path, err)
	}
	return nil
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}
