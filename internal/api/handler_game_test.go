package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/freesidejockey/blackjack-engine/internal/config"
	"github.com/freesidejockey/blackjack-engine/internal/game"
	"github.com/freesidejockey/blackjack-engine/internal/store"
)

type handView struct {
	Bet     float64           `json:"bet"`
	Cards   []json.RawMessage `json:"cards"`
	Outcome string            `json:"outcome"`
}

type stateView struct {
	Phase           string      `json:"phase"`
	PlayerName      string      `json:"playerName"`
	Bankroll        float64     `json:"bankroll"`
	Bet             float64     `json:"bet"`
	DealerHand      *handView   `json:"dealerHand"`
	PlayerHands     []*handView `json:"playerHands"`
	ActiveHandIndex int         `json:"activeHandIndex"`
}

type gameResp struct {
	ID     string       `json:"id"`
	State  stateView    `json:"state"`
	Events []game.Event `json:"events"`
	Error  string       `json:"error"`
}

func testRouter() (http.Handler, *store.Store) {
	st := store.New()
	cfg := &config.Config{
		DeckCount:    1,
		StartBalance: 10_000,
		DefaultBet:   100,
		MinBet:       10,
		MaxBet:       10_000,
	}
	return Router(st, cfg), st
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) gameResp {
	t.Helper()
	var resp gameResp
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func createGame(t *testing.T, h http.Handler) gameResp {
	t.Helper()
	w := doJSON(t, h, http.MethodPost, "/api/v1/games", map[string]any{"playerName": "Alice", "deckCount": 1})
	require.Equal(t, http.StatusCreated, w.Code)
	return decode(t, w)
}

// dealToPlayerTurn retries fresh games until a deal lands in a live
// player turn instead of ending on a natural right away.
func dealToPlayerTurn(t *testing.T, h http.Handler) (string, stateView) {
	t.Helper()
	for attempt := 0; attempt < 200; attempt++ {
		created := createGame(t, h)
		base := "/api/v1/games/" + created.ID

		w := doJSON(t, h, http.MethodPost, base+"/bet", betReq{Amount: 100})
		require.Equal(t, http.StatusOK, w.Code)
		w = doJSON(t, h, http.MethodPost, base+"/deal", nil)
		require.Equal(t, http.StatusOK, w.Code)

		resp := decode(t, w)
		if resp.State.Phase == "player_turn" {
			return created.ID, resp.State
		}
		doJSON(t, h, http.MethodDelete, base, nil)
	}
	t.Fatal("never reached a live player turn")
	return "", stateView{}
}

func TestHealth(t *testing.T) {
	h, _ := testRouter()

	w := doJSON(t, h, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestCreateGame(t *testing.T) {
	h, st := testRouter()

	w := doJSON(t, h, http.MethodPost, "/api/v1/games", map[string]any{"playerName": "Alice"})
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Contains(t, w.Body.String(), `"phase":"waiting_for_bet"`)

	resp := decode(t, w)
	assert.NotEmpty(t, resp.ID)
	assert.Equal(t, "Alice", resp.State.PlayerName)
	assert.Equal(t, 10_000.0, resp.State.Bankroll)
	assert.Equal(t, 1, st.Len())
}

func TestCreateGameValidation(t *testing.T) {
	h, _ := testRouter()

	cases := []struct {
		name string
		body map[string]any
		want string
	}{
		{"blank player name", map[string]any{"playerName": "   "}, "player name cannot be empty"},
		{"deck count out of range", map[string]any{"playerName": "Alice", "deckCount": 9}, "deck count must be between 1 and 8"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/api/v1/games", tc.body)
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}
}

func TestCreateGameInvalidJSON(t *testing.T) {
	h, _ := testRouter()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/games", bytes.NewBufferString("{"))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "invalid json")
}

func TestGetGameNotFound(t *testing.T) {
	h, _ := testRouter()

	w := doJSON(t, h, http.MethodGet, "/api/v1/games/nope", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "game not found")
}

func TestDeleteGame(t *testing.T) {
	h, st := testRouter()
	created := createGame(t, h)

	w := doJSON(t, h, http.MethodDelete, "/api/v1/games/"+created.ID, nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, 0, st.Len())

	w = doJSON(t, h, http.MethodGet, "/api/v1/games/"+created.ID, nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestPlaceBet(t *testing.T) {
	h, _ := testRouter()
	created := createGame(t, h)

	w := doJSON(t, h, http.MethodPost, "/api/v1/games/"+created.ID+"/bet", betReq{Amount: 500})
	require.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, "waiting_to_deal", resp.State.Phase)
	assert.Equal(t, 500.0, resp.State.Bet)
	assert.Equal(t, 9_500.0, resp.State.Bankroll)
}

func TestPlaceBetRejections(t *testing.T) {
	h, _ := testRouter()
	created := createGame(t, h)

	cases := []struct {
		name   string
		amount float64
		want   string
	}{
		{"below table minimum", 5, "bet must be between"},
		{"above table maximum", 20_000, "bet must be between"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, h, http.MethodPost, "/api/v1/games/"+created.ID+"/bet", betReq{Amount: tc.amount})
			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Contains(t, w.Body.String(), tc.want)
		})
	}

	// within table limits but beyond this player's bankroll
	w := doJSON(t, h, http.MethodPost, "/api/v1/games", map[string]any{"playerName": "Shorty", "bankroll": 5_000})
	require.Equal(t, http.StatusCreated, w.Code)
	short := decode(t, w)

	w = doJSON(t, h, http.MethodPost, "/api/v1/games/"+short.ID+"/bet", betReq{Amount: 6_000})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "bet exceeds bankroll")
}

func TestWrongPhaseConflicts(t *testing.T) {
	h, _ := testRouter()
	created := createGame(t, h)
	base := "/api/v1/games/" + created.ID

	for _, path := range []string{"/deal", "/dealer", "/next-round"} {
		w := doJSON(t, h, http.MethodPost, base+path, nil)
		require.Equal(t, http.StatusConflict, w.Code, "POST %s in waiting_for_bet", path)
	}

	w := doJSON(t, h, http.MethodPost, base+"/action", actionReq{Action: "hit"})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestFullRoundOverHTTP(t *testing.T) {
	h, _ := testRouter()
	created := createGame(t, h)
	base := "/api/v1/games/" + created.ID

	w := doJSON(t, h, http.MethodPost, base+"/bet", betReq{Amount: 100})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodPost, base+"/deal", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)

	var kinds []game.EventKind
	for _, ev := range resp.Events {
		kinds = append(kinds, ev.Kind)
	}

	for i := 0; resp.State.Phase == "player_turn"; i++ {
		require.Less(t, i, 12, "player turn did not finish")
		w = doJSON(t, h, http.MethodPost, base+"/action", actionReq{Action: "stand", HandIndex: resp.State.ActiveHandIndex})
		require.Equal(t, http.StatusOK, w.Code)
		resp = decode(t, w)
	}

	for i := 0; resp.State.Phase == "dealer_turn"; i++ {
		require.Less(t, i, 15, "dealer turn did not finish")
		w = doJSON(t, h, http.MethodPost, base+"/dealer", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp = decode(t, w)
		for _, ev := range resp.Events {
			kinds = append(kinds, ev.Kind)
		}
	}

	require.Equal(t, "round_complete", resp.State.Phase)
	require.Len(t, resp.State.PlayerHands, 1)
	assert.Contains(t, []string{"WIN", "LOSS", "PUSH", "BLACKJACK"}, resp.State.PlayerHands[0].Outcome)
	assert.Contains(t, []float64{9_900, 10_000, 10_100, 10_150}, resp.State.Bankroll)
	assert.Contains(t, kinds, game.EventRoundSettled)
	require.NotNil(t, resp.State.DealerHand)
	assert.GreaterOrEqual(t, len(resp.State.DealerHand.Cards), 2)

	w = doJSON(t, h, http.MethodPost, base+"/next-round", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp = decode(t, w)
	assert.Equal(t, "waiting_for_bet", resp.State.Phase)
	assert.Contains(t, []float64{9_900, 10_000, 10_100, 10_150}, resp.State.Bankroll)
}

func TestPlayerActionRejections(t *testing.T) {
	h, _ := testRouter()
	id, state := dealToPlayerTurn(t, h)
	base := "/api/v1/games/" + id

	w := doJSON(t, h, http.MethodPost, base+"/action", actionReq{Action: "fold"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "unknown action")

	w = doJSON(t, h, http.MethodPost, base+"/action", actionReq{Action: "hit", HandIndex: state.ActiveHandIndex + 3})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "not the active hand")

	w = doJSON(t, h, http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "player_turn", resp.State.Phase)
}

func TestSessionsAreIsolated(t *testing.T) {
	h, _ := testRouter()
	a := createGame(t, h)
	b := createGame(t, h)
	require.NotEqual(t, a.ID, b.ID)

	w := doJSON(t, h, http.MethodPost, "/api/v1/games/"+a.ID+"/bet", betReq{Amount: 250})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, h, http.MethodGet, "/api/v1/games/"+b.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp := decode(t, w)
	assert.Equal(t, "waiting_for_bet", resp.State.Phase)
	assert.Equal(t, 10_000.0, resp.State.Bankroll)
}

func TestShoeReplacedSurfacesAsEvent(t *testing.T) {
	h, _ := testRouter()
	created := createGame(t, h)
	base := "/api/v1/games/" + created.ID

	var sawSwap bool
	for round := 0; round < 30 && !sawSwap; round++ {
		w := doJSON(t, h, http.MethodPost, base+"/bet", betReq{Amount: 10})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, h, http.MethodPost, base+"/deal", nil)
		require.Equal(t, http.StatusOK, w.Code)
		resp := decode(t, w)
		for _, ev := range resp.Events {
			if ev.Kind == game.EventShoeReplaced {
				sawSwap = true
			}
		}

		for i := 0; resp.State.Phase == "player_turn"; i++ {
			require.Less(t, i, 12)
			w = doJSON(t, h, http.MethodPost, base+"/action", actionReq{Action: "stand", HandIndex: resp.State.ActiveHandIndex})
			require.Equal(t, http.StatusOK, w.Code)
			resp = decode(t, w)
		}
		for i := 0; resp.State.Phase == "dealer_turn"; i++ {
			require.Less(t, i, 15)
			w = doJSON(t, h, http.MethodPost, base+"/dealer", nil)
			require.Equal(t, http.StatusOK, w.Code)
			resp = decode(t, w)
		}
		require.Equal(t, "round_complete", resp.State.Phase)

		w = doJSON(t, h, http.MethodPost, base+"/next-round", nil)
		require.Equal(t, http.StatusOK, w.Code)
	}

	assert.True(t, sawSwap, "a single deck runs low within a few rounds")
}
