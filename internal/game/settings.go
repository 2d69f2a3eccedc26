package game

import (
	"errors"
	"strings"
)

const (
	MinDeckCount = 1
	MaxDeckCount = 8

	// DefaultDeckCount is the six-deck shoe most tables run.
	DefaultDeckCount = 6

	// DefaultBankroll is the stake a player sits down with when the
	// settings do not say otherwise.
	DefaultBankroll = 10_000.0
)

var (
	ErrEmptyPlayerName = errors.New("player name cannot be empty")
	ErrDeckCount       = errors.New("deck count must be between 1 and 8")
)

// Settings configure a single-seat table.
type Settings struct {
	PlayerName string
	DeckCount  int
	Bankroll   float64
}

func NewSettings(playerName string, deckCount int) Settings {
	return Settings{
		PlayerName: playerName,
		DeckCount:  deckCount,
		Bankroll:   DefaultBankroll,
	}
}

func DefaultSettings(playerName string) Settings {
	return NewSettings(playerName, DefaultDeckCount)
}

func (s Settings) Validate() error {
	if strings.TrimSpace(s.PlayerName) == "" {
		return ErrEmptyPlayerName
	}
	if s.DeckCount < MinDeckCount || s.DeckCount > MaxDeckCount {
		return ErrDeckCount
	}
	return nil
}
