package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds every recognized environment option. Third-party API keys are
// consumed only inside the command plugins that need them; a missing key is a
// per-command configuration error, never fatal.
type Config struct {
	Prefix      string `env:"BOT_PREFIX" envDefault:"!"`
	OwnerNumber string `env:"OWNER_NUMBER"`

	SessionDB        string `env:"SESSION_DB" envDefault:"file:wabot.db?_foreign_keys=on"`
	StoragePath      string `env:"STORAGE_PATH" envDefault:"groupdata.json"`
	PremiumCachePath string `env:"PREMIUM_CACHE_PATH" envDefault:"premium.json"`

	AutoRead        bool `env:"AUTO_READ" envDefault:"false"`
	AutoViewStatus  bool `env:"AUTO_VIEW_STATUS" envDefault:"false"`
	StatusReact     bool `env:"STATUS_REACT" envDefault:"false"`
	NewsletterReact bool `env:"NEWSLETTER_REACT" envDefault:"false"`
	AutoTyping      bool `env:"AUTO_TYPING" envDefault:"true"`

	SignatureEnabled bool   `env:"SIGNATURE_ENABLED" envDefault:"false"`
	SignatureText    string `env:"SIGNATURE_TEXT"`

	PremiumAPIURL  string        `env:"PREMIUM_API_URL"`
	PremiumRefresh time.Duration `env:"PREMIUM_REFRESH" envDefault:"10m"`

	GameTimeout time.Duration `env:"GAME_TIMEOUT" envDefault:"45s"`

	WeatherAPIKey string `env:"WEATHER_API_KEY"`
	NASAAPIKey    string `env:"NASA_API_KEY"`

	LogFile string `env:"LOG_FILE"`
}

// New loads .env (if present) and parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if cfg.OwnerNumber == "" {
		return nil, fmt.Errorf("OWNER_NUMBER is not set")
	}
	if cfg.Prefix == "" {
		cfg.Prefix = "!"
	}

	return cfg, nil
}
