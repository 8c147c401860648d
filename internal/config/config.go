package config

import (
	"fmt"
	"log"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config holds all process-level settings. It is built once in main and
// passed down explicitly; nothing reads the environment after startup.
type Config struct {
	DiscordToken string `env:"DISCORD_TOKEN,required"`
	Prefix       string `env:"BOT_PREFIX" envDefault:"!"`

	OpenWeatherAPIKey string `env:"OPENWEATHER_API_KEY"`

	FactsChannel     string        `env:"FACTS_CHANNEL" envDefault:"coffee-facts"`
	FactsInterval    time.Duration `env:"FACTS_INTERVAL" envDefault:"6h"`
	WellnessChannel  string        `env:"WELLNESS_CHANNEL" envDefault:"wellness"`
	WellnessInterval time.Duration `env:"WELLNESS_INTERVAL" envDefault:"12h"`
}

// New loads .env (if present) and parses the environment.
func New() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[INFO] No .env file found, falling back to system environment variables")
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}
	return cfg, nil
}
