package memory

import (
	"context"
	"sync"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// AuthEventRepository appends auth events to a slice.
type AuthEventRepository struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func NewAuthEventRepository() *AuthEventRepository {
	return &AuthEventRepository{}
}

func (r *AuthEventRepository) Insert(_ context.Context, event *domain.AuthEvent) error {
	r.mu.Lock()
	r.events = append(r.events, *event)
	r.mu.Unlock()
	return nil
}

// Events returns a copy of the recorded events.
func (r *AuthEventRepository) Events() []domain.AuthEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEvent, len(r.events))
	copy(out, r.events)
	return out
}
