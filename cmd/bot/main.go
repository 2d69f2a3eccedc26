package main

import (
	"log"

	"github.com/freesidejockey/blackjack-engine/internal/bot"
	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/database"
	"github.com/freesidejockey/blackjack-engine/internal/stats"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.BotToken == "" {
		log.Fatal("BOT_TOKEN is not set")
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	log.Println("Database connected")

	profileRepo := stats.NewRepository(db.DB)

	b, err := bot.New(cfg, profileRepo)
	if err != nil {
		log.Fatalf("Failed to create bot: %v", err)
	}

	if err := b.Run(); err != nil {
		log.Fatalf("Bot error: %v", err)
	}
}
