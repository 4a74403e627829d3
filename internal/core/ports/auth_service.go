package ports

import (
	"context"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

// PasswordHasher produces salted one-way digests.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	// Verify reports whether plaintext matches digest. It fails only with
	// domain.ErrInvalidDigestFormat.
	Verify(plaintext, digest string) (bool, error)
}

// AuthService registers and authenticates users. Returned users never carry
// the password hash.
type AuthService interface {
	Register(ctx context.Context, username, email, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, error)
}
