package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DECK_COUNT", "")
	t.Setenv("START_BALANCE", "")
	t.Setenv("SHOE_SWAP_DELAY", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DeckCount != 6 {
		t.Errorf("DeckCount = %d, want 6", cfg.DeckCount)
	}
	if cfg.StartBalance != 10_000 {
		t.Errorf("StartBalance = %v, want 10000", cfg.StartBalance)
	}
	if cfg.ShoeSwapDelay != 2*time.Second {
		t.Errorf("ShoeSwapDelay = %v, want 2s", cfg.ShoeSwapDelay)
	}
	if cfg.BlackjackPays != 2.5 {
		t.Errorf("BlackjackPays = %v, want 2.5", cfg.BlackjackPays)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DECK_COUNT", "4")
	t.Setenv("START_BALANCE", "2500.50")
	t.Setenv("MIN_BET", "1")
	t.Setenv("SHOE_SWAP_DELAY", "150ms")
	t.Setenv("HTTP_ADDR", ":9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.DeckCount != 4 {
		t.Errorf("DeckCount = %d, want 4", cfg.DeckCount)
	}
	if cfg.StartBalance != 2500.50 {
		t.Errorf("StartBalance = %v, want 2500.50", cfg.StartBalance)
	}
	if cfg.MinBet != 1 {
		t.Errorf("MinBet = %v, want 1", cfg.MinBet)
	}
	if cfg.ShoeSwapDelay != 150*time.Millisecond {
		t.Errorf("ShoeSwapDelay = %v, want 150ms", cfg.ShoeSwapDelay)
	}
	if cfg.HTTPAddr != ":9090" {
		t.Errorf("HTTPAddr = %q, want :9090", cfg.HTTPAddr)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("DECK_COUNT", "six")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted DECK_COUNT=six")
	}

	t.Setenv("DECK_COUNT", "")
	t.Setenv("SHOE_SWAP_DELAY", "fast")
	if _, err := Load(); err == nil {
		t.Error("Load() accepted SHOE_SWAP_DELAY=fast")
	}
}
