package config

import (
	"time"

	"github.com/caarlos0/env/v6"
)

// Config holds every runtime setting, populated from environment variables.
// A .env file is loaded by godotenv/autoload in main before parsing.
type Config struct {
	TelegramBotToken string `env:"TELEGRAM_BOT_TOKEN,required"`

	// Storage
	DatabaseURL string `env:"DATABASE_URL" envDefault:"reminders.db"`

	// Ops HTTP server
	Port int `env:"PORT" envDefault:"8080"`

	// Dispatcher
	TickInterval time.Duration `env:"TICK_INTERVAL" envDefault:"30s"`

	// Conversation sessions
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"30m"`

	// Telegram send timeout; a timed-out send counts as a failure and the
	// reminder is retried on the next tick.
	NotifierTimeout time.Duration `env:"NOTIFIER_TIMEOUT" envDefault:"10s"`
}

// New parses the configuration from the environment.
func New() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
