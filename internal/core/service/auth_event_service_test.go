package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/infrastructure/db/memory"
)

func TestAuthEventService_Process(t *testing.T) {
	repo := memory.NewAuthEventRepository()
	svc := NewAuthEventService(repo, zerolog.Nop())

	event := domain.AuthEvent{Username: "alice1234", Kind: domain.AuthEventLoginFailed, OccurredAt: time.Now().UTC()}
	if err := svc.Process(context.Background(), event); err != nil {
		t.Fatalf("process: %v", err)
	}

	got := repo.Events()
	if len(got) != 1 || got[0].Username != "alice1234" || got[0].Kind != domain.AuthEventLoginFailed {
		t.Fatalf("unexpected events: %+v", got)
	}
}
