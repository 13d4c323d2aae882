package util

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings. Values come from the environment; the
// binary loads a .env file first so local setups need no exports.
type Config struct {
	APIURL     string        `env:"FABLEDAY_API_URL"     envDefault:"http://localhost:8000"`
	APITimeout time.Duration `env:"FABLEDAY_API_TIMEOUT" envDefault:"90s"`
	Theme      string        `env:"FABLEDAY_THEME"       envDefault:"catppuccin"`
	LogLevel   string        `env:"FABLEDAY_LOG_LEVEL"   envDefault:"warn"`
	Recap      bool          `env:"FABLEDAY_RECAP"       envDefault:"true"`
	ListLimit  int           `env:"FABLEDAY_LIST_LIMIT"  envDefault:"25"`
}

// LoadConfig reads configuration from the environment.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}
