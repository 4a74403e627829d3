package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

// SessionManager creates, regenerates and destroys server-side sessions.
type SessionManager struct {
	store  ports.SessionStore
	ttl    time.Duration
	events ports.AuthEventRecorder
	log    zerolog.Logger
}

// NewSessionManager returns a manager whose sessions live for ttl
// (24h when ttl <= 0). events may be nil.
func NewSessionManager(store ports.SessionStore, ttl time.Duration, events ports.AuthEventRecorder, log zerolog.Logger) *SessionManager {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &SessionManager{store: store, ttl: ttl, events: events, log: log}
}

// TTL is the lifetime given to new sessions.
func (m *SessionManager) TTL() time.Duration {
	return m.ttl
}

// Start binds identity to a freshly issued identifier and discards prior.
// On failure nothing is changed and the caller keeps prior.
func (m *SessionManager) Start(ctx context.Context, prior domain.Session, identity domain.Identity) (domain.Session, error) {
	next := domain.Session{
		ID:        uuid.NewString(),
		User:      &identity,
		CreatedAt: time.Now().UTC(),
	}

	if err := m.store.Rotate(ctx, prior.ID, &next, m.ttl); err != nil {
		return prior, fmt.Errorf("%w: rotate session: %w", domain.ErrSessionStore, err)
	}

	m.log.Debug().Str("username", identity.Username).Msg("session started")
	return next, nil
}

// End destroys the session. Ending an anonymous or already ended session is
// a no-op.
func (m *SessionManager) End(ctx context.Context, session domain.Session) error {
	if session.ID == "" {
		return nil
	}

	if err := m.store.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("%w: delete session: %w", domain.ErrSessionStore, err)
	}

	if session.User != nil && m.events != nil {
		m.events.Enqueue(domain.AuthEvent{
			Username:   session.User.Username,
			Kind:       domain.AuthEventLoggedOut,
			OccurredAt: time.Now().UTC(),
		})
	}
	return nil
}

// Current resolves id to its session, or domain.Anonymous when id is empty,
// unknown or expired.
func (m *SessionManager) Current(ctx context.Context, id string) (domain.Session, error) {
	if id == "" {
		return domain.Anonymous, nil
	}

	sess, err := m.store.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return domain.Anonymous, nil
		}
		return domain.Anonymous, fmt.Errorf("%w: load session: %w", domain.ErrSessionStore, err)
	}
	return *sess, nil
}
