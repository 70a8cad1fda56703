package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds server configuration loaded from the environment
type Config struct {
	Host string `env:"HOST"`
	Port int    `env:"PORT" envDefault:"8080"`

	// Owner is the immutable account allowed to manage admins and pricing
	Owner string `env:"LEDGER_OWNER,required"`

	// PricePerByte applies until the owner configures a price
	PricePerByte uint64 `env:"PRICE_PER_BYTE" envDefault:"1"`

	StorageType string `env:"STORAGE_TYPE" envDefault:"memory"`
	RedisURL    string `env:"REDIS_URL"`

	LeaderboardReadStaleness  time.Duration `env:"LEADERBOARD_READ_STALENESS" envDefault:"30m"`
	LeaderboardWriteStaleness time.Duration `env:"LEADERBOARD_WRITE_STALENESS" envDefault:"1h"`
}

// Load parses configuration from environment variables
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	return &cfg, nil
}
