package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
	"github.com/joho/godotenv"

	"github.com/officeeats/cafeteria-app/utils"
)

type Config struct {
	Port          string        `env:"PORT" envDefault:"8080"`
	GinMode       string        `env:"GIN_MODE" envDefault:"debug"`
	JWTSecret     string        `env:"JWT_SECRET"`
	NotifyTimeout time.Duration `env:"NOTIFY_TIMEOUT" envDefault:"5s"`
}

// Load reads .env (when present) and then the process environment.
func Load() (Config, error) {
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Printf("no .env file loaded: %v", err)
	}

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config from environment: %w", err)
	}
	return cfg, nil
}
