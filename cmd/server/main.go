package main

import (
	"log"
	"net/http"
	"time"

	"github.com/freesidejockey/blackjack-engine/internal/api"
	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      api.Router(store.New(), cfg),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	log.Printf("Game server listening on %s", cfg.HTTPAddr)
	log.Fatal(srv.ListenAndServe())
}
