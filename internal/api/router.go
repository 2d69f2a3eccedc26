package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/store"
)

func Router(st *store.Store, cfg *config.Config) http.Handler {
	h := &Handler{Store: st, Cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Get("/api/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	})

	r.Route("/api/v1/games", func(r chi.Router) {
		r.Post("/", h.CreateGame)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetGame)
			r.Delete("/", h.DeleteGame)
			r.Post("/bet", h.PlaceBet)
			r.Post("/deal", h.Deal)
			r.Post("/action", h.PlayerAction)
			r.Post("/dealer", h.AdvanceDealer)
			r.Post("/next-round", h.NextRound)
		})
	})

	return r
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
