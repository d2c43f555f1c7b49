package store

import (
	"sync"

	"mlb-scoreboard-service/internal/domain/games"
)

// MemoryStore keeps the latest scoreboard snapshot per date.
type MemoryStore struct {
	mu     sync.RWMutex
	boards map[string]games.Scoreboard
}

// NewMemoryStore constructs an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		boards: make(map[string]games.Scoreboard),
	}
}

// Scoreboard returns a copy of the stored scoreboard for date.
func (s *MemoryStore) Scoreboard(date string) (games.Scoreboard, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	board, ok := s.boards[date]
	if !ok {
		return games.Scoreboard{}, false
	}
	return copyBoard(board), true
}

// SetScoreboard replaces the snapshot for the scoreboard's date.
func (s *MemoryStore) SetScoreboard(board games.Scoreboard) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.boards[board.Date] = copyBoard(board)
}

// Dates lists the dates currently held.
func (s *MemoryStore) Dates() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]string, 0, len(s.boards))
	for d := range s.boards {
		out = append(out, d)
	}
	return out
}

// Prune drops every snapshot except the one for keep.
func (s *MemoryStore) Prune(keep string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for d := range s.boards {
		if d != keep {
			delete(s.boards, d)
		}
	}
}

func copyBoard(board games.Scoreboard) games.Scoreboard {
	out := board
	out.Games = make([]games.Game, len(board.Games))
	copy(out.Games, board.Games)
	return out
}
