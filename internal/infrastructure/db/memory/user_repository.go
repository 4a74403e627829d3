package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// UserRepository is an in-memory credential store.
type UserRepository struct {
	mu    sync.RWMutex
	users map[string]domain.User
}

func NewUserRepository() *UserRepository {
	return &UserRepository{users: make(map[string]domain.User)}
}

func (r *UserRepository) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	r.mu.RLock()
	u, ok := r.users[username]
	r.mu.RUnlock()
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return &u, nil
}

func (r *UserRepository) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	u := *user
	u.ID = uuid.NewString()
	r.users[u.Username] = u
	return &u, nil
}
