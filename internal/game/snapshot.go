package game

// Snapshot is a phase-tagged copy of the table, safe to render or
// serialize after the game has moved on. Fields are filled per phase:
// betting phases carry money only, play phases add the hands and the
// active hand cursor.
type Snapshot struct {
	Phase           Phase   `json:"phase"`
	PlayerName      string  `json:"playerName"`
	Bankroll        float64 `json:"bankroll"`
	Bet             float64 `json:"bet,omitempty"`
	DealerHand      *Hand   `json:"dealerHand,omitempty"`
	PlayerHands     []*Hand `json:"playerHands,omitempty"`
	ActiveHandIndex int     `json:"activeHandIndex"`
}

func (g *Game) Snapshot() Snapshot {
	snap := Snapshot{
		Phase:      g.phase,
		PlayerName: g.settings.PlayerName,
		Bankroll:   g.player.Bankroll,
	}

	switch g.phase {
	case PhaseWaitingToDeal:
		snap.Bet = g.player.Hands[0].Bet
	case PhasePlayerTurn:
		snap.DealerHand = g.dealer.Hands[0].Clone()
		snap.PlayerHands = g.player.cloneHands()
		snap.ActiveHandIndex = g.activeHand
	case PhaseDealerTurn, PhaseRoundComplete:
		snap.DealerHand = g.dealer.Hands[0].Clone()
		snap.PlayerHands = g.player.cloneHands()
	}

	return snap
}

// ActiveHand returns the hand the cursor points at, or false outside
// the player's turn.
func (s Snapshot) ActiveHand() (*Hand, bool) {
	if s.Phase != PhasePlayerTurn || s.ActiveHandIndex >= len(s.PlayerHands) {
		return nil, false
	}
	return s.PlayerHands[s.ActiveHandIndex], true
}
