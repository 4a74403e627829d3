package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// UserRepository is the credential store. FindByUsername returns
// domain.ErrUserNotFound when absent; Create returns domain.ErrUsernameTaken
// when the username is already stored.
type UserRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}
