package server

import (
	"sync"

	"judgement/internal/engine"
)

// Store holds the canonical committed Game snapshot per game id. It is
// injected into the session layer rather than reached as a package global
// so tests and alternative backends can swap it out. Implementations must
// be safe for concurrent use.
type Store interface {
	Get(id string) (*engine.Game, bool)
	Put(g *engine.Game)
	List() []string
}

type MemoryStore struct {
	mu    sync.RWMutex
	games map[string]*engine.Game
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{games: map[string]*engine.Game{}}
}

func (s *MemoryStore) Get(id string) (*engine.Game, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.games[id]
	return g, ok
}

func (s *MemoryStore) Put(g *engine.Game) {
	s.mu.Lock()
	s.games[g.ID] = g
	s.mu.Unlock()
}

func (s *MemoryStore) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.games))
	for id := range s.games {
		ids = append(ids, id)
	}
	return ids
}
