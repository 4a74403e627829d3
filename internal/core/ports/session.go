package ports

import (
	"context"
	"time"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// SessionStore persists sessions by identifier.
type SessionStore interface {
	// Get returns domain.ErrSessionNotFound for unknown or expired ids.
	Get(ctx context.Context, id string) (*domain.Session, error)
	// Rotate stores next and removes previousID in one atomic step.
	// An empty previousID only stores next.
	Rotate(ctx context.Context, previousID string, next *domain.Session, ttl time.Duration) error
	// Delete removes id. Deleting an unknown id is not an error.
	Delete(ctx context.Context, id string) error
}

// SessionManager owns the session lifecycle.
type SessionManager interface {
	Start(ctx context.Context, prior domain.Session, identity domain.Identity) (domain.Session, error)
	End(ctx context.Context, session domain.Session) error
	Current(ctx context.Context, id string) (domain.Session, error)
}
