package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()

	if _, err := repo.FindByUsername(ctx, "alice1234"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	created, err := repo.Create(ctx, &domain.User{Username: "alice1234", PasswordHash: "digest", Role: domain.RoleManager})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected an id")
	}

	if _, err := repo.Create(ctx, &domain.User{Username: "alice1234", PasswordHash: "other"}); !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}

	found, err := repo.FindByUsername(ctx, "alice1234")
	if err != nil || found.PasswordHash != "digest" || found.Role != domain.RoleManager {
		t.Fatalf("unexpected user: %+v err=%v", found, err)
	}
}
