package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	BotToken      string
	DatabasePath  string
	HTTPAddr      string
	DeckCount     int
	StartBalance  float64
	DefaultBet    float64
	MinBet        float64
	MaxBet        float64
	BlackjackPays float64
	ShoeSwapDelay time.Duration
}

func Load() (*Config, error) {
	godotenv.Load()

	cfg := &Config{
		BotToken:      os.Getenv("BOT_TOKEN"),
		DatabasePath:  "./blackjack.db",
		HTTPAddr:      ":8080",
		DeckCount:     6,
		StartBalance:  10_000,
		DefaultBet:    100,
		MinBet:        10,
		MaxBet:        10_000,
		BlackjackPays: 2.5,
		ShoeSwapDelay: 2 * time.Second,
	}

	if v := os.Getenv("DATABASE_PATH"); v != "" {
		cfg.DatabasePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}

	if err := intVar(&cfg.DeckCount, "DECK_COUNT"); err != nil {
		return nil, err
	}
	if err := floatVar(&cfg.StartBalance, "START_BALANCE"); err != nil {
		return nil, err
	}
	if err := floatVar(&cfg.DefaultBet, "DEFAULT_BET"); err != nil {
		return nil, err
	}
	if err := floatVar(&cfg.MinBet, "MIN_BET"); err != nil {
		return nil, err
	}
	if err := floatVar(&cfg.MaxBet, "MAX_BET"); err != nil {
		return nil, err
	}
	if err := durationVar(&cfg.ShoeSwapDelay, "SHOE_SWAP_DELAY"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func intVar(dst *int, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = n
	return nil
}

func floatVar(dst *float64, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = f
	return nil
}

func durationVar(dst *time.Duration, key string) error {
	v := os.Getenv(key)
	if v == "" {
		return nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = d
	return nil
}
