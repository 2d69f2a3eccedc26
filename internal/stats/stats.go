package stats

import (
	"database/sql"
	"fmt"

	"github.com/freesidejockey/blackjack-engine/internal/game"
)

// Profile is the persistent record behind one chat: the bankroll that
// survives restarts plus lifetime counters.
type Profile struct {
	ChatID     int64
	Name       string
	Balance    float64
	Wins       int
	Losses     int
	Pushes     int
	Blackjacks int
	Games      int
	LastBet    float64
}

type Leader struct {
	Name    string
	Balance float64
	Wins    int
	Games   int
	WinRate float64
}

type Repository interface {
	GetOrCreate(chatID int64, name string, startBalance, defaultBet float64) (*Profile, error)
	Save(profile *Profile) error
	TopByBalance(limit int) ([]Leader, error)
}

type SQLiteRepository struct {
	db *sql.DB
}

func NewRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

func (r *SQLiteRepository) GetOrCreate(chatID int64, name string, startBalance, defaultBet float64) (*Profile, error) {
	profile := &Profile{ChatID: chatID}

	err := r.db.QueryRow(`
		SELECT name, balance, wins, losses, pushes, blackjacks, games, last_bet
		FROM profiles WHERE chat_id = ?
	`, chatID).Scan(
		&profile.Name, &profile.Balance, &profile.Wins, &profile.Losses,
		&profile.Pushes, &profile.Blackjacks, &profile.Games, &profile.LastBet,
	)

	if err == sql.ErrNoRows {
		profile.Name = name
		profile.Balance = startBalance
		profile.LastBet = defaultBet

		_, err = r.db.Exec(`
			INSERT INTO profiles (chat_id, name, balance, last_bet)
			VALUES (?, ?, ?, ?)
		`, chatID, profile.Name, profile.Balance, profile.LastBet)

		if err != nil {
			return nil, fmt.Errorf("failed to create profile: %w", err)
		}
		return profile, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	if name != "" && name != profile.Name {
		profile.Name = name
	}

	return profile, nil
}

func (r *SQLiteRepository) Save(profile *Profile) error {
	_, err := r.db.Exec(`
		UPDATE profiles SET
			name = ?, balance = ?, wins = ?, losses = ?, pushes = ?,
			blackjacks = ?, games = ?, last_bet = ?, updated_at = CURRENT_TIMESTAMP
		WHERE chat_id = ?
	`, profile.Name, profile.Balance, profile.Wins, profile.Losses, profile.Pushes,
		profile.Blackjacks, profile.Games, profile.LastBet, profile.ChatID)

	if err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) TopByBalance(limit int) ([]Leader, error) {
	rows, err := r.db.Query(`
		SELECT name, balance, wins, games
		FROM profiles
		WHERE games > 0
		ORDER BY balance DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var leaders []Leader
	for rows.Next() {
		var l Leader
		if err := rows.Scan(&l.Name, &l.Balance, &l.Wins, &l.Games); err != nil {
			return nil, err
		}
		if l.Games > 0 {
			l.WinRate = float64(l.Wins) / float64(l.Games) * 100
		}
		leaders = append(leaders, l)
	}

	return leaders, rows.Err()
}

// RecordRound folds one settled round into the profile: the bankroll
// from the snapshot becomes the new balance and every hand's outcome
// bumps its counter. Naturals count as wins too.
func (p *Profile) RecordRound(snap game.Snapshot) {
	if snap.Phase != game.PhaseRoundComplete {
		return
	}

	p.Games++
	p.Balance = snap.Bankroll
	for _, hand := range snap.PlayerHands {
		switch hand.Outcome {
		case game.OutcomeWin:
			p.Wins++
		case game.OutcomeBlackjack:
			p.Wins++
			p.Blackjacks++
		case game.OutcomeLoss:
			p.Losses++
		case game.OutcomePush:
			p.Pushes++
		}
	}
}

func (p *Profile) CanAfford(amount float64) bool {
	return p.Balance >= amount
}

func (p *Profile) WinRate() float64 {
	if p.Games == 0 {
		return 0
	}
	return float64(p.Wins) / float64(p.Games) * 100
}
