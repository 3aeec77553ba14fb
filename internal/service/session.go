package service

import (
	"context"
	"sync"

	"github.com/alexanderramin/reschool/internal/domain"
	"github.com/alexanderramin/reschool/internal/eschool"
)

// Session caches the /state response shared by every service. It is safe
// for concurrent use by bubbletea commands.
type Session struct {
	mu    sync.RWMutex
	state *domain.State
}

// NewSession returns an empty session.
func NewSession() *Session { return &Session{} }

func (s *Session) Set(st *domain.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = st
}

func (s *Session) Get() *domain.State {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

func (s *Session) Clear() { s.Set(nil) }

// ensure returns the cached state, fetching it on first use.
func (s *Session) ensure(ctx context.Context, api eschool.API) (*domain.State, error) {
	if st := s.Get(); st != nil {
		return st, nil
	}
	st, err := api.State(ctx)
	if err != nil {
		return nil, err
	}
	s.Set(st)
	return st, nil
}
