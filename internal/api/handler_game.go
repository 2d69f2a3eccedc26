package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/game"
	"github.com/freesidejockey/blackjack-engine/internal/store"
)

type Handler struct {
	Store *store.Store
	Cfg   *config.Config
}

type createReq struct {
	PlayerName string  `json:"playerName"`
	DeckCount  int     `json:"deckCount"`
	Bankroll   float64 `json:"bankroll"`
}

type betReq struct {
	Amount float64 `json:"amount"`
}

type actionReq struct {
	Action    string `json:"action"`
	HandIndex int    `json:"handIndex"`
}

func (h *Handler) CreateGame(w http.ResponseWriter, r *http.Request) {
	var req createReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}

	settings := game.Settings{
		PlayerName: req.PlayerName,
		DeckCount:  req.DeckCount,
		Bankroll:   req.Bankroll,
	}
	if settings.DeckCount == 0 {
		settings.DeckCount = h.Cfg.DeckCount
	}
	if settings.Bankroll == 0 {
		settings.Bankroll = h.Cfg.StartBalance
	}

	g, err := game.New(settings)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	g.ShuffleShoe()

	snap := g.Snapshot()
	session := h.Store.Create(g)
	writeJSON(w, http.StatusCreated, map[string]any{"id": session.ID, "state": snap})
}

func (h *Handler) GetGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}

	var snap game.Snapshot
	_ = session.Do(func(g *game.Game) error {
		snap = g.Snapshot()
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{"id": session.ID, "state": snap})
}

func (h *Handler) DeleteGame(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.Store.Delete(session.ID)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) PlaceBet(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req betReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	if req.Amount < h.Cfg.MinBet || req.Amount > h.Cfg.MaxBet {
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": fmt.Sprintf("bet must be between %.0f and %.0f", h.Cfg.MinBet, h.Cfg.MaxBet),
		})
		return
	}
	h.runCommand(w, session, func(g *game.Game) error {
		return g.AcceptBet(req.Amount)
	})
}

func (h *Handler) Deal(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.runCommand(w, session, func(g *game.Game) error {
		return g.Deal()
	})
}

func (h *Handler) PlayerAction(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	var req actionReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": "invalid json"})
		return
	}
	action, err := game.ParseAction(req.Action)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
		return
	}
	h.runCommand(w, session, func(g *game.Game) error {
		return g.PlayerAction(action, req.HandIndex)
	})
}

// AdvanceDealer plays exactly one dealer step per request so clients
// can show the dealer's cards arriving one at a time.
func (h *Handler) AdvanceDealer(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.runCommand(w, session, func(g *game.Game) error {
		return g.AdvanceDealer()
	})
}

func (h *Handler) NextRound(w http.ResponseWriter, r *http.Request) {
	session, ok := h.session(w, r)
	if !ok {
		return
	}
	h.runCommand(w, session, func(g *game.Game) error {
		return g.NextRound()
	})
}

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*store.Session, bool) {
	session, ok := h.Store.Get(chi.URLParam(r, "id"))
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": "game not found"})
		return nil, false
	}
	return session, true
}

// runCommand executes one engine command under the session lock and
// replies with the resulting snapshot plus any events the command
// emitted along the way.
func (h *Handler) runCommand(w http.ResponseWriter, session *store.Session, cmd func(*game.Game) error) {
	var (
		snap   game.Snapshot
		events []game.Event
	)
	err := session.Do(func(g *game.Game) error {
		g.SetEventFunc(func(ev game.Event) {
			events = append(events, ev)
		})
		defer g.SetEventFunc(nil)

		cmdErr := cmd(g)
		snap = g.Snapshot()
		return cmdErr
	})
	if err != nil {
		writeJSON(w, statusForError(err), map[string]any{"error": err.Error()})
		return
	}

	resp := map[string]any{"id": session.ID, "state": snap}
	if len(events) > 0 {
		resp["events"] = events
	}
	writeJSON(w, http.StatusOK, resp)
}

func statusForError(err error) int {
	switch {
	case errors.Is(err, game.ErrWrongPhase):
		return http.StatusConflict
	case errors.Is(err, game.ErrInvalidBet),
		errors.Is(err, game.ErrBetTooLarge),
		errors.Is(err, game.ErrCannotSplit),
		errors.Is(err, game.ErrNoActiveHand),
		errors.Is(err, game.ErrUnknownAction):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
