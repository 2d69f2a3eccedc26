package game

import (
	"sort"
	"strings"
)

const blackjackValue = 21

// Outcome is how a settled hand ended. Empty until settlement.
type Outcome string

const (
	OutcomeWin       Outcome = "WIN"
	OutcomeLoss      Outcome = "LOSS"
	OutcomePush      Outcome = "PUSH"
	OutcomeBlackjack Outcome = "BLACKJACK"
)

// Hand is one betting position: its cards in deal order, the money
// riding on it and, once the round is over, its outcome.
type Hand struct {
	Bet     float64 `json:"bet"`
	Cards   []Card  `json:"cards"`
	Outcome Outcome `json:"outcome,omitempty"`
}

func NewHand() *Hand {
	return &Hand{Cards: make([]Card, 0, 10)}
}

func NewHandWithBet(bet float64) *Hand {
	h := NewHand()
	h.Bet = bet
	return h
}

// NewHandWithCard seeds a hand with a single card and a bet, the shape
// a split produces.
func NewHandWithCard(card Card, bet float64) *Hand {
	h := NewHandWithBet(bet)
	h.Cards = append(h.Cards, card)
	return h
}

func (h *Hand) AddCard(card Card) {
	h.Cards = append(h.Cards, card)
}

func (h *Hand) DoubleBet() {
	h.Bet *= 2
}

// CanSplit reports whether the hand is exactly two cards of one rank.
func (h *Hand) CanSplit() bool {
	return len(h.Cards) == 2 && h.Cards[0].Rank == h.Cards[1].Rank
}

// PossibleValues returns every total the hand can count for, sorted
// ascending with duplicates removed. Each ace branches into 1 or 11
// independently, so two aces give {2, 12, 22}.
func (h *Hand) PossibleValues() []int {
	total := 0
	aces := 0
	for _, card := range h.Cards {
		if card.Rank == Ace {
			aces++
			continue
		}
		total += card.Rank.Values()[0]
	}

	values := []int{total}
	for i := 0; i < aces; i++ {
		branched := make([]int, 0, len(values)*2)
		for _, v := range values {
			branched = append(branched, v+1, v+11)
		}
		values = branched
	}

	sort.Ints(values)
	deduped := values[:1]
	for _, v := range values[1:] {
		if v != deduped[len(deduped)-1] {
			deduped = append(deduped, v)
		}
	}
	return deduped
}

// BestValue returns the highest total that does not bust, or the
// lowest total when every count is over 21.
func (h *Hand) BestValue() int {
	values := h.PossibleValues()
	for i := len(values) - 1; i >= 0; i-- {
		if values[i] <= blackjackValue {
			return values[i]
		}
	}
	return values[0]
}

// IsNaturalBlackjack reports a two-card 21, the only hand that pays 3:2.
func (h *Hand) IsNaturalBlackjack() bool {
	return len(h.Cards) == 2 && h.BestValue() == blackjackValue
}

// IsBlackjack reports any 21, including totals reached by hitting.
func (h *Hand) IsBlackjack() bool {
	return h.BestValue() == blackjackValue
}

// IsBusted reports whether every possible count is over 21.
func (h *Hand) IsBusted() bool {
	for _, v := range h.PossibleValues() {
		if v <= blackjackValue {
			return false
		}
	}
	return true
}

func (h *Hand) String() string {
	parts := make([]string, len(h.Cards))
	for i, card := range h.Cards {
		parts[i] = card.String()
	}
	return strings.Join(parts, " ")
}

// Clone returns an independent copy, used by snapshots so callers can
// never reach back into live round state.
func (h *Hand) Clone() *Hand {
	cp := *h
	cp.Cards = append([]Card(nil), h.Cards...)
	return &cp
}
