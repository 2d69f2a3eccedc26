package game

import "testing"

func TestNewShoeSize(t *testing.T) {
	for decks := 1; decks <= 8; decks++ {
		shoe := NewShoe(decks)
		if got := shoe.Remaining(); got != 52*decks {
			t.Errorf("NewShoe(%d).Remaining() = %d, want %d", decks, got, 52*decks)
		}
		if got := shoe.Discarded(); got != 0 {
			t.Errorf("NewShoe(%d).Discarded() = %d, want 0", decks, got)
		}
	}
}

func TestNewShoeComposition(t *testing.T) {
	const decks = 3
	shoe := NewShoe(decks)

	rankCount := make(map[Rank]int)
	suitCount := make(map[Suit]int)
	for _, c := range shoe.cards {
		rankCount[c.Rank]++
		suitCount[c.Suit]++
	}

	if len(rankCount) != 13 {
		t.Fatalf("distinct ranks = %d, want 13", len(rankCount))
	}
	if len(suitCount) != 4 {
		t.Fatalf("distinct suits = %d, want 4", len(suitCount))
	}
	for rank, n := range rankCount {
		if n != 4*decks {
			t.Errorf("rank %s appears %d times, want %d", rank, n, 4*decks)
		}
	}
	for suit, n := range suitCount {
		if n != 13*decks {
			t.Errorf("suit %s appears %d times, want %d", suit, n, 13*decks)
		}
	}
}

func TestShuffleKeepsCards(t *testing.T) {
	shoe := NewShoe(4)
	before := append([]Card(nil), shoe.cards...)

	shoe.Shuffle()

	if len(shoe.cards) != len(before) {
		t.Fatalf("shuffle changed card count: %d -> %d", len(before), len(shoe.cards))
	}

	count := make(map[Card]int)
	for _, c := range before {
		count[c]++
	}
	for _, c := range shoe.cards {
		count[c]--
	}
	for card, n := range count {
		if n != 0 {
			t.Errorf("card %s count off by %d after shuffle", card, n)
		}
	}

	// A 208-card shoe landing back in factory order is not a thing.
	same := true
	for i := range before {
		if shoe.cards[i] != before[i] {
			same = false
			break
		}
	}
	if same {
		t.Error("shuffle left the shoe in its original order")
	}
}

func TestDrawMovesToDiscard(t *testing.T) {
	shoe := NewShoe(1)

	card, ok := shoe.Draw()
	if !ok {
		t.Fatal("Draw() from a full shoe failed")
	}
	if shoe.Remaining() != 51 || shoe.Discarded() != 1 {
		t.Errorf("after one draw: remaining %d discarded %d", shoe.Remaining(), shoe.Discarded())
	}
	// Draw takes the top card, not a random one.
	if card != (Card{Ace, Spades}) {
		t.Errorf("first draw from unshuffled shoe = %s, want A♠", card)
	}
}

func TestDrawToEmpty(t *testing.T) {
	shoe := NewShoe(2)

	drawn := 0
	for {
		if _, ok := shoe.Draw(); !ok {
			break
		}
		drawn++
	}

	if drawn != 104 {
		t.Errorf("drew %d cards, want 104", drawn)
	}
	if shoe.Remaining() != 0 || shoe.Discarded() != 104 {
		t.Errorf("after exhausting: remaining %d discarded %d", shoe.Remaining(), shoe.Discarded())
	}

	if _, ok := shoe.Draw(); ok {
		t.Error("Draw() from an empty shoe reported ok")
	}
}

func TestConservationAcrossDraws(t *testing.T) {
	shoe := NewShoe(6)
	shoe.Shuffle()

	for i := 0; i < 100; i++ {
		shoe.Draw()
		if total := shoe.Remaining() + shoe.Discarded(); total != 6*52 {
			t.Fatalf("after %d draws remaining+discarded = %d, want %d", i+1, total, 6*52)
		}
	}
}

func TestEnsureCardsForPlayersKeepsFullShoe(t *testing.T) {
	shoe := NewShoe(1)
	if shoe.EnsureCardsForPlayers(1) {
		t.Error("full shoe should not be replaced")
	}
	if shoe.Remaining() != 52 {
		t.Errorf("Remaining() = %d, want 52", shoe.Remaining())
	}
}

func TestEnsureCardsForPlayersReplenishes(t *testing.T) {
	shoe := NewShoe(1)
	// One player needs (1+1)*2*2 = 8 cards; leave 7.
	for i := 0; i < 45; i++ {
		shoe.Draw()
	}
	if shoe.Remaining() != 7 {
		t.Fatalf("setup: remaining %d, want 7", shoe.Remaining())
	}

	if !shoe.EnsureCardsForPlayers(1) {
		t.Fatal("low shoe was not replaced")
	}
	if shoe.Remaining() != 52 {
		t.Errorf("fresh shoe Remaining() = %d, want 52", shoe.Remaining())
	}
	if shoe.Discarded() != 0 {
		t.Errorf("fresh shoe Discarded() = %d, want 0", shoe.Discarded())
	}
}

func TestEnsureCardsForPlayersThreshold(t *testing.T) {
	shoe := NewShoe(1)
	// Exactly the minimum on hand, no swap.
	for i := 0; i < 44; i++ {
		shoe.Draw()
	}
	if shoe.Remaining() != 8 {
		t.Fatalf("setup: remaining %d, want 8", shoe.Remaining())
	}
	if shoe.EnsureCardsForPlayers(1) {
		t.Error("shoe at the exact minimum should not be replaced")
	}

	shoe.Draw()
	if !shoe.EnsureCardsForPlayers(1) {
		t.Error("shoe below the minimum should be replaced")
	}
}
