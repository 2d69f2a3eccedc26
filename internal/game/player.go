package game

// Player holds the hands in play and the money behind them. The dealer
// is a Player that never bets and keeps a single hand.
type Player struct {
	Hands    []*Hand
	Bankroll float64
}

func NewPlayer(bankroll float64) *Player {
	return &Player{
		Hands:    []*Hand{NewHand()},
		Bankroll: bankroll,
	}
}

// AddCardToHand appends a card to the hand at index. An out-of-range
// index leaves the player untouched.
func (p *Player) AddCardToHand(card Card, index int) {
	if index < 0 || index >= len(p.Hands) {
		return
	}
	p.Hands[index].AddCard(card)
}

// ResetHands puts the player back to a single empty hand for the next
// round. The bankroll carries over.
func (p *Player) ResetHands() {
	p.Hands = []*Hand{NewHand()}
}

func (p *Player) cloneHands() []*Hand {
	hands := make([]*Hand, len(p.Hands))
	for i, h := range p.Hands {
		hands[i] = h.Clone()
	}
	return hands
}
