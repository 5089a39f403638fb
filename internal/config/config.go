package config

import (
	"os"
	"strings"
)

// Config keeps runtime settings shared by the console and bot front ends.
type Config struct {
	DatabaseURL   string
	TelegramToken string
	SummaryTime   string
}

// Load reads configuration from environment variables with sane defaults.
// TelegramToken stays empty unless set; only the bot command requires it.
func Load() Config {
	cfg := Config{
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		TelegramToken: strings.TrimSpace(os.Getenv("TELEGRAM_TOKEN")),
		SummaryTime:   strings.TrimSpace(os.Getenv("SUMMARY_TIME")),
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = "todo.db"
	}

	if cfg.SummaryTime == "" {
		cfg.SummaryTime = "09:00"
	}

	return cfg
}
