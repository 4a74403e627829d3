package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// SessionStore keeps sessions as JSON values with a TTL.
// Key format: session:<id>
type SessionStore struct {
	client *redis.Client
}

// NewSessionStore creates a SessionStore wrapping the given Redis client.
func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Get loads a session. Expired keys are gone from Redis and report
// domain.ErrSessionNotFound like unknown ones.
func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	raw, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var sess domain.Session
	if err := json.Unmarshal(raw, &sess); err != nil {
		return nil, fmt.Errorf("session decode: %w", err)
	}
	return &sess, nil
}

// Rotate writes next and deletes previousID inside MULTI/EXEC, so readers
// see either the old session or the new one.
func (s *SessionStore) Rotate(ctx context.Context, previousID string, next *domain.Session, ttl time.Duration) error {
	raw, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		if previousID != "" {
			pipe.Del(ctx, s.key(previousID))
		}
		pipe.Set(ctx, s.key(next.ID), raw, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("session rotate: %w", err)
	}
	return nil
}

// Delete removes the session. DEL on a missing key is not an error.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(id string) string {
	return "session:" + id
}
