package store

import (
	"sync"

	"github.com/google/uuid"

	"github.com/freesidejockey/blackjack-engine/internal/game"
)

// Session owns one game exclusively. The engine itself is not safe
// for concurrent use, so every command and snapshot goes through Do.
type Session struct {
	ID   string
	game *game.Game
	mu   sync.Mutex
}

// Do runs fn with exclusive access to the session's game.
func (s *Session) Do(fn func(*game.Game) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(s.game)
}

// Store keeps the live sessions of the HTTP surface keyed by id.
type Store struct {
	sessions map[string]*Session
	mu       sync.RWMutex
}

func New() *Store {
	return &Store{
		sessions: make(map[string]*Session),
	}
}

func (s *Store) Create(g *game.Game) *Session {
	session := &Session{
		ID:   uuid.NewString(),
		game: g,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	return session
}

func (s *Store) Get(id string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	return session, ok
}

func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}
