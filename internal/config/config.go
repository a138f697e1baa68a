// Package config loads application configuration from the environment,
// failing fast at startup when a required value is missing.
package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config holds all process configuration. Secrets and upstream
// credentials are required; everything else has a default.
type Config struct {
	Port string `env:"PORT" env-default:"8080"`

	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY" env-required:"true"`

	SupabaseURL       string `env:"SUPABASE_URL" env-required:"true"`
	SupabaseKey       string `env:"SUPABASE_KEY" env-required:"true"`
	SupabaseJWTSecret string `env:"SUPABASE_JWT_SECRET" env-required:"true"`

	SessionSecret string        `env:"SECRET_KEY" env-required:"true"`
	SessionTTL    time.Duration `env:"SESSION_TTL" env-default:"24h"`

	RedisURL string `env:"REDIS_URL" env-required:"true"`

	// HTTPTimeout bounds every outbound call to the weather provider
	// and the remote store.
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"10s"`
}

// Load reads configuration from the environment. A .env file in the
// working directory is loaded first when present.
func Load() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	return &cfg, nil
}
