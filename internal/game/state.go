package game

import (
	"errors"
	"fmt"
	"sync"
)

// Phase is the single authoritative stage of the current round.
type Phase string

const (
	PhaseWaitingForBet Phase = "waiting_for_bet"
	PhaseWaitingToDeal Phase = "waiting_to_deal"
	PhasePlayerTurn    Phase = "player_turn"
	PhaseDealerTurn    Phase = "dealer_turn"
	PhaseRoundComplete Phase = "round_complete"
)

var (
	ErrWrongPhase    = errors.New("action not allowed in current phase")
	ErrInvalidBet    = errors.New("bet must not be negative")
	ErrBetTooLarge   = errors.New("bet exceeds bankroll")
	ErrCannotSplit   = errors.New("hand cannot be split")
	ErrNoActiveHand  = errors.New("hand index is not the active hand")
	ErrShoeEmpty     = errors.New("shoe is out of cards")
	ErrUnknownAction = errors.New("unknown action")
)

// Game runs one seat of blackjack against the house: a shoe, a player
// with one or more hands, a dealer and the phase of the current round.
// A Game is not safe for concurrent use, give each session its own.
type Game struct {
	settings   Settings
	shoe       *Shoe
	player     *Player
	dealer     *Player
	phase      Phase
	activeHand int
	eventFn    EventFunc
}

func New(settings Settings) (*Game, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	bankroll := settings.Bankroll
	if bankroll <= 0 {
		bankroll = DefaultBankroll
	}

	return &Game{
		settings: settings,
		shoe:     NewShoe(settings.DeckCount),
		player:   NewPlayer(bankroll),
		dealer:   NewPlayer(0),
		phase:    PhaseWaitingForBet,
	}, nil
}

// SetEventFunc installs an observer for engine events. Pass nil to
// remove it.
func (g *Game) SetEventFunc(fn EventFunc) {
	g.eventFn = fn
}

func (g *Game) emit(kind EventKind, detail string) {
	if g.eventFn != nil {
		g.eventFn(Event{Kind: kind, Detail: detail})
	}
}

func (g *Game) Phase() Phase {
	return g.phase
}

func (g *Game) Settings() Settings {
	return g.settings
}

// ActiveHandIndex is the hand currently receiving player actions.
// Meaningful only while the phase is player_turn.
func (g *Game) ActiveHandIndex() int {
	return g.activeHand
}

// ShuffleShoe shuffles the undealt cards. Called once before the first
// deal; mid-round it would only reorder cards nobody has seen.
func (g *Game) ShuffleShoe() {
	g.shoe.Shuffle()
}

// AcceptBet takes the player's wager, debits the bankroll and moves
// the table to the deal. A bet the bankroll cannot cover is rejected
// with the state untouched.
func (g *Game) AcceptBet(amount float64) error {
	if g.phase != PhaseWaitingForBet {
		return fmt.Errorf("%w: bet during %s", ErrWrongPhase, g.phase)
	}
	if amount < 0 {
		return ErrInvalidBet
	}
	if g.player.Bankroll < amount {
		return fmt.Errorf("%w: bet %.2f, bankroll %.2f", ErrBetTooLarge, amount, g.player.Bankroll)
	}

	g.player.Bankroll -= amount
	g.player.Hands[0].Bet = amount
	g.phase = PhaseWaitingToDeal
	return nil
}

// Deal gives player and dealer two cards each, alternating, then
// resolves naturals: both natural is a push with the bet returned, a
// player natural pays 3:2 on top of the stake, a dealer natural takes
// the bet. Without naturals play passes to the player's first hand.
func (g *Game) Deal() error {
	if g.phase != PhaseWaitingToDeal {
		return fmt.Errorf("%w: deal during %s", ErrWrongPhase, g.phase)
	}

	if g.shoe.EnsureCardsForPlayers(1) {
		g.emit(EventShoeReplaced, "")
	}

	for i := 0; i < 2; i++ {
		if card, ok := g.shoe.Draw(); ok {
			g.player.AddCardToHand(card, 0)
		}
		if card, ok := g.shoe.Draw(); ok {
			g.dealer.AddCardToHand(card, 0)
		}
	}

	playerHand := g.player.Hands[0]
	dealerHand := g.dealer.Hands[0]

	if playerHand.IsNaturalBlackjack() {
		if dealerHand.IsNaturalBlackjack() {
			g.player.Bankroll += playerHand.Bet
			playerHand.Outcome = OutcomePush
			g.completeRound("push")
			return nil
		}
		g.player.Bankroll += playerHand.Bet * 2.5
		playerHand.Outcome = OutcomeBlackjack
		g.completeRound("blackjack")
		return nil
	}

	if dealerHand.IsNaturalBlackjack() {
		playerHand.Outcome = OutcomeLoss
		g.completeRound("dealer blackjack")
		return nil
	}

	g.activeHand = 0
	g.phase = PhasePlayerTurn
	return nil
}

// PlayerAction applies one player decision to the hand at handIndex,
// which must be the active hand.
func (g *Game) PlayerAction(action Action, handIndex int) error {
	if g.phase != PhasePlayerTurn {
		return fmt.Errorf("%w: %s during %s", ErrWrongPhase, action, g.phase)
	}
	if handIndex != g.activeHand {
		return fmt.Errorf("%w: got %d, active is %d", ErrNoActiveHand, handIndex, g.activeHand)
	}

	switch action {
	case ActionHit:
		return g.hit(handIndex)
	case ActionStand:
		g.advanceHandOrDealer(handIndex)
		return nil
	case ActionDouble:
		return g.double(handIndex)
	case ActionSplit:
		return g.split(handIndex)
	}
	return fmt.Errorf("%w: %q", ErrUnknownAction, action)
}

func (g *Game) hit(handIndex int) error {
	card, ok := g.shoe.Draw()
	if !ok {
		return ErrShoeEmpty
	}
	g.player.AddCardToHand(card, handIndex)
	hand := g.player.Hands[handIndex]

	if hand.IsBusted() {
		hand.Outcome = OutcomeLoss
		if len(g.player.Hands) > handIndex+1 {
			g.supplementNextHand(handIndex)
			return nil
		}
		// Nothing left to compare, the dealer never plays.
		g.completeRound("player bust")
		return nil
	}

	if hand.IsBlackjack() {
		// 21 cannot improve, auto-stand.
		g.advanceHandOrDealer(handIndex)
		return nil
	}

	return nil
}

func (g *Game) double(handIndex int) error {
	card, ok := g.shoe.Draw()
	if !ok {
		return ErrShoeEmpty
	}
	g.player.AddCardToHand(card, handIndex)

	hand := g.player.Hands[handIndex]
	g.player.Bankroll -= hand.Bet
	hand.DoubleBet()

	// One card only, then the turn moves on even on a bust.
	g.advanceHandOrDealer(handIndex)
	return nil
}

func (g *Game) split(handIndex int) error {
	hand := g.player.Hands[handIndex]
	if !hand.CanSplit() {
		return ErrCannotSplit
	}

	splitCard := hand.Cards[1]
	hand.Cards = hand.Cards[:1]

	g.player.Bankroll -= hand.Bet
	newHand := NewHandWithCard(splitCard, hand.Bet)

	hands := append(g.player.Hands, nil)
	copy(hands[handIndex+2:], hands[handIndex+1:])
	hands[handIndex+1] = newHand
	g.player.Hands = hands

	// The original hand is filled back to two cards right away, the
	// new hand gets its second card only when play reaches it.
	if card, ok := g.shoe.Draw(); ok {
		g.player.AddCardToHand(card, handIndex)
	}
	return nil
}

// advanceHandOrDealer moves play to the next split hand, giving it the
// supplemental card it is still missing, or hands the round to the
// dealer when no hands remain.
func (g *Game) advanceHandOrDealer(handIndex int) {
	if len(g.player.Hands) > handIndex+1 {
		g.supplementNextHand(handIndex)
		return
	}
	g.phase = PhaseDealerTurn
}

func (g *Game) supplementNextHand(handIndex int) {
	if card, ok := g.shoe.Draw(); ok {
		g.player.AddCardToHand(card, handIndex+1)
	}
	g.activeHand = handIndex + 1
	g.phase = PhasePlayerTurn
}

// AdvanceDealer plays one dealer step: on 16 or below the dealer draws
// a card, where busting settles the round and any other total leaves
// the dealer's turn open for the next step; on 17 or above the dealer
// stands and the round settles. Callers loop until the phase changes.
func (g *Game) AdvanceDealer() error {
	if g.phase != PhaseDealerTurn {
		return fmt.Errorf("%w: dealer play during %s", ErrWrongPhase, g.phase)
	}

	if g.dealer.Hands[0].BestValue() <= 16 {
		card, ok := g.shoe.Draw()
		if !ok {
			return ErrShoeEmpty
		}
		g.dealer.AddCardToHand(card, 0)
		g.emit(EventDealerDraw, card.String())

		if g.dealer.Hands[0].IsBusted() {
			g.settle()
		}
		return nil
	}

	g.settle()
	return nil
}

// settle writes the outcome of every player hand and pays the
// bankroll: a busted hand loses its stake, a win returns the stake
// doubled and a push returns the stake alone.
func (g *Game) settle() {
	dealerHand := g.dealer.Hands[0]
	dealerValue := dealerHand.BestValue()

	for _, hand := range g.player.Hands {
		playerValue := hand.BestValue()
		switch {
		case hand.IsBusted():
			hand.Outcome = OutcomeLoss
		case dealerHand.IsBusted():
			g.player.Bankroll += hand.Bet * 2
			hand.Outcome = OutcomeWin
		case dealerValue > playerValue:
			hand.Outcome = OutcomeLoss
		case playerValue > dealerValue:
			g.player.Bankroll += hand.Bet * 2
			hand.Outcome = OutcomeWin
		default:
			g.player.Bankroll += hand.Bet
			hand.Outcome = OutcomePush
		}
	}

	g.completeRound(fmt.Sprintf("dealer %d", dealerValue))
}

func (g *Game) completeRound(detail string) {
	g.phase = PhaseRoundComplete
	g.emit(EventRoundSettled, detail)
}

// NextRound clears the table for a fresh bet. The bankroll carries
// over and the shoe keeps shrinking until replenishment swaps it out.
func (g *Game) NextRound() error {
	if g.phase != PhaseRoundComplete {
		return fmt.Errorf("%w: next round during %s", ErrWrongPhase, g.phase)
	}

	g.player.ResetHands()
	g.dealer.ResetHands()
	g.activeHand = 0
	g.phase = PhaseWaitingForBet
	return nil
}

// Manager keeps one Game per chat so concurrent players never share a
// shoe or a bankroll.
type Manager struct {
	games map[int64]*Game
	mu    sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		games: make(map[int64]*Game),
	}
}

func (m *Manager) Get(chatID int64) *Game {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.games[chatID]
}

func (m *Manager) Set(chatID int64, g *Game) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games[chatID] = g
}

func (m *Manager) Delete(chatID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.games, chatID)
}
