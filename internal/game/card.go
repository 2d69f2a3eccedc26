package game

import (
	"encoding/json"
	"strconv"
)

type Suit int

const (
	Clubs Suit = iota
	Diamonds
	Hearts
	Spades
)

var suits = []Suit{Clubs, Diamonds, Hearts, Spades}

func (s Suit) String() string {
	switch s {
	case Clubs:
		return "♣"
	case Diamonds:
		return "♦"
	case Hearts:
		return "♥"
	case Spades:
		return "♠"
	}
	return "?"
}

type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

var ranks = []Rank{Two, Three, Four, Five, Six, Seven, Eight, Nine, Ten, Jack, Queen, King, Ace}

// Values returns every score a rank can count for. An ace counts as
// 1 or 11, face cards count as 10.
func (r Rank) Values() []int {
	switch {
	case r == Ace:
		return []int{1, 11}
	case r >= Ten:
		return []int{10}
	default:
		return []int{int(r)}
	}
}

func (r Rank) String() string {
	switch r {
	case Jack:
		return "J"
	case Queen:
		return "Q"
	case King:
		return "K"
	case Ace:
		return "A"
	}
	return strconv.Itoa(int(r))
}

type Card struct {
	Rank Rank
	Suit Suit
}

func NewCard(rank Rank, suit Suit) Card {
	return Card{Rank: rank, Suit: suit}
}

func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

func (c Card) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Rank string `json:"rank"`
		Suit string `json:"suit"`
	}{c.Rank.String(), c.Suit.String()})
}
