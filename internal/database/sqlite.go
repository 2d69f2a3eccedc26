package database

import (
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type DB struct {
	*sql.DB
}

func New(path string) (*DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err = db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	if err = migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate: %w", err)
	}

	return &DB{db}, nil
}

func migrate(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		chat_id INTEGER PRIMARY KEY,
		name TEXT NOT NULL DEFAULT '',
		balance REAL NOT NULL DEFAULT 10000,
		wins INTEGER NOT NULL DEFAULT 0,
		losses INTEGER NOT NULL DEFAULT 0,
		pushes INTEGER NOT NULL DEFAULT 0,
		blackjacks INTEGER NOT NULL DEFAULT 0,
		games INTEGER NOT NULL DEFAULT 0,
		last_bet REAL NOT NULL DEFAULT 100,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_profiles_balance ON profiles(balance);
	CREATE INDEX IF NOT EXISTS idx_profiles_games ON profiles(games);
	`

	_, err := db.Exec(schema)
	return err
}
