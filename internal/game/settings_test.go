package game

import (
	"errors"
	"testing"
)

func TestSettingsValidate(t *testing.T) {
	tests := []struct {
		name     string
		settings Settings
		wantErr  error
	}{
		{"valid", NewSettings("Alice", 6), nil},
		{"one deck", NewSettings("Bob", 1), nil},
		{"eight decks", NewSettings("Bob", 8), nil},
		{"empty name", NewSettings("", 6), ErrEmptyPlayerName},
		{"whitespace name", NewSettings("   ", 6), ErrEmptyPlayerName},
		{"zero decks", NewSettings("Alice", 0), ErrDeckCount},
		{"nine decks", NewSettings("Alice", 9), ErrDeckCount},
		{"negative decks", NewSettings("Alice", -1), ErrDeckCount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.settings.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings("Alice")
	if s.DeckCount != DefaultDeckCount {
		t.Errorf("DeckCount = %d, want %d", s.DeckCount, DefaultDeckCount)
	}
	if s.Bankroll != DefaultBankroll {
		t.Errorf("Bankroll = %v, want %v", s.Bankroll, DefaultBankroll)
	}
	if err := s.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}
