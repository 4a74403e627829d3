package service

import (
	"context"
	"errors"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// minCredentialLength is exclusive: a username or password must be longer.
const minCredentialLength = 8

// AuthService implements registration and login.
type AuthService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	events ports.AuthEventRecorder
	log    zerolog.Logger

	dummyOnce   sync.Once
	dummyDigest string
}

// NewAuthService wires the credential store and hasher. events may be nil.
func NewAuthService(repo ports.UserRepository, hasher ports.PasswordHasher, events ports.AuthEventRecorder, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, hasher: hasher, events: events, log: log}
}

func (s *AuthService) Register(ctx context.Context, username, email, password, role string) (*domain.User, error) {
	if utf8.RuneCountInString(username) <= minCredentialLength || utf8.RuneCountInString(password) <= minCredentialLength {
		return nil, domain.ErrCredentialTooShort
	}

	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return nil, domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	// The unique index on username still rejects a concurrent duplicate
	// that slipped past the lookup above.
	created, err := s.repo.Create(ctx, &domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		Role:         domain.ParseRole(role),
		CreatedAt:    time.Now().UTC(),
	})
	if err != nil {
		return nil, err
	}

	s.record(created.Username, domain.AuthEventRegistered)
	s.log.Info().Str("username", created.Username).Str("role", string(created.Role)).Msg("user registered")

	return created.Public(), nil
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.burnComparison(password)
			s.record(username, domain.AuthEventLoginFailed)
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return nil, err
	}
	if !ok {
		s.record(username, domain.AuthEventLoginFailed)
		return nil, domain.ErrPasswordMismatch
	}

	s.record(username, domain.AuthEventLoginSucceeded)
	return user.Public(), nil
}

// burnComparison spends one hash comparison so that an unknown username
// costs as much as a wrong password.
func (s *AuthService) burnComparison(password string) {
	s.dummyOnce.Do(func() {
		digest, err := s.hasher.Hash("inventory-system-placeholder")
		if err != nil {
			s.log.Warn().Err(err).Msg("placeholder digest unavailable")
			return
		}
		s.dummyDigest = digest
	})
	if s.dummyDigest != "" {
		_, _ = s.hasher.Verify(password, s.dummyDigest)
	}
}

func (s *AuthService) record(username string, kind domain.AuthEventKind) {
	if s.events == nil {
		return
	}
	s.events.Enqueue(domain.AuthEvent{Username: username, Kind: kind, OccurredAt: time.Now().UTC()})
}
