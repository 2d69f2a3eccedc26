package game

import "math/rand"

const deckSize = 52

// Shoe holds the undealt cards of one or more 52-card decks together
// with everything dealt since the last shoe change, like the dealing
// shoe on a casino table.
type Shoe struct {
	cards     []Card
	discarded []Card
	numDecks  int
}

// NewShoe builds an unshuffled shoe: each deck laid out rank by rank,
// all four suits within a rank, deck after deck.
func NewShoe(numDecks int) *Shoe {
	capacity := deckSize * numDecks
	cards := make([]Card, 0, capacity)
	for d := 0; d < numDecks; d++ {
		for _, rank := range ranks {
			for _, suit := range suits {
				cards = append(cards, NewCard(rank, suit))
			}
		}
	}

	return &Shoe{
		cards:     cards,
		discarded: make([]Card, 0, capacity),
		numDecks:  numDecks,
	}
}

// Shuffle permutes the undealt cards only, discards stay where they are.
func (s *Shoe) Shuffle() {
	rand.Shuffle(len(s.cards), func(i, j int) {
		s.cards[i], s.cards[j] = s.cards[j], s.cards[i]
	})
}

// Draw removes the top card and moves it to the discard pile. The
// second return is false when the shoe is out of cards.
func (s *Shoe) Draw() (Card, bool) {
	if len(s.cards) == 0 {
		return Card{}, false
	}

	card := s.cards[len(s.cards)-1]
	s.cards = s.cards[:len(s.cards)-1]
	s.discarded = append(s.discarded, card)
	return card, true
}

// EnsureCardsForPlayers swaps in a fresh shuffled shoe when the
// remaining cards cannot cover the coming deal. Minimum is
// (players + dealer) * 2 initial cards * 2 headroom for hits and
// splits. Reports whether a swap happened.
func (s *Shoe) EnsureCardsForPlayers(numPlayers int) bool {
	minNeeded := (numPlayers + 1) * 2 * 2
	if len(s.cards) >= minNeeded {
		return false
	}

	fresh := NewShoe(s.numDecks)
	s.cards = fresh.cards
	s.discarded = s.discarded[:0]
	s.Shuffle()
	return true
}

func (s *Shoe) Remaining() int {
	return len(s.cards)
}

func (s *Shoe) Discarded() int {
	return len(s.discarded)
}

func (s *Shoe) NumDecks() int {
	return s.numDecks
}
