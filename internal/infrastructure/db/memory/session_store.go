package memory

import (
	"context"
	"sync"
	"time"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

type sessionEntry struct {
	session domain.Session
	exp     time.Time
}

// SessionStore keeps sessions in process memory with a per-entry expiry.
type SessionStore struct {
	mu sync.Mutex
	m  map[string]sessionEntry
}

func NewSessionStore() *SessionStore {
	return &SessionStore{m: make(map[string]sessionEntry)}
}

func (s *SessionStore) Get(_ context.Context, id string) (*domain.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.m[id]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	if time.Now().After(e.exp) {
		delete(s.m, id)
		return nil, domain.ErrSessionNotFound
	}
	sess := e.session
	return &sess, nil
}

func (s *SessionStore) Rotate(_ context.Context, previousID string, next *domain.Session, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if previousID != "" {
		delete(s.m, previousID)
	}
	s.m[next.ID] = sessionEntry{session: *next, exp: time.Now().Add(ttl)}
	return nil
}

func (s *SessionStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	delete(s.m, id)
	s.mu.Unlock()
	return nil
}
