// Package config loads process configuration from the environment.
package config

import (
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config carries every externally supplied setting. DATABASE_URL and
// SECRET_KEY have no sane defaults, so a missing value fails startup.
type Config struct {
	Addr                     string `env:"ADDR" env-default:":8000"`
	DatabaseURL              string `env:"DATABASE_URL" env-required:"true"`
	MongoURL                 string `env:"MONGODB_URL" env-default:"mongodb://localhost:27017"`
	MongoDB                  string `env:"MONGODB_DB" env-default:"taskkeep"`
	SecretKey                string `env:"SECRET_KEY" env-required:"true"`
	Algorithm                string `env:"ALGORITHM" env-default:"HS256"`
	AccessTokenExpireMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" env-default:"30"`
}

// Load reads configuration from environment variables.
func Load() (Config, error) {
	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return Config{}, fmt.Errorf("read env: %w", err)
	}
	return cfg, nil
}
