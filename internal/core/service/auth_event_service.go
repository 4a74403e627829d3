package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

type authEventService struct {
	repo ports.AuthEventRepository
	log  zerolog.Logger
}

// NewAuthEventService returns the processor behind the auth activity
// dispatcher.
func NewAuthEventService(repo ports.AuthEventRepository, log zerolog.Logger) ports.AuthEventService {
	return &authEventService{repo: repo, log: log}
}

func (s *authEventService) Process(ctx context.Context, event domain.AuthEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("username", event.Username).
		Str("kind", string(event.Kind)).
		Msg("auth event recorded")
	return nil
}
