package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

type stubAuthRepo struct {
	users   map[string]*domain.User
	findErr error
}

func newStubAuthRepo() *stubAuthRepo {
	return &stubAuthRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubAuthRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, exists := r.users[user.Username]; exists {
		return nil, domain.ErrUsernameTaken
	}
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = user.Username
	}
	r.users[copy.Username] = cloneUser(copy)
	return cloneUser(copy), nil
}

func (r *stubAuthRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if r.findErr != nil {
		return nil, r.findErr
	}
	u, ok := r.users[username]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

type recordingEvents struct {
	mu     sync.Mutex
	events []domain.AuthEvent
}

func (r *recordingEvents) Enqueue(event domain.AuthEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recordingEvents) kinds() []domain.AuthEventKind {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.AuthEventKind, 0, len(r.events))
	for _, e := range r.events {
		out = append(out, e.Kind)
	}
	return out
}

func newTestAuthService(repo *stubAuthRepo, events *recordingEvents) *AuthService {
	if events == nil {
		return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), nil, zerolog.Nop())
	}
	return NewAuthService(repo, NewBcryptHasher(bcrypt.MinCost), events, zerolog.Nop())
}

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubAuthRepo()
	events := &recordingEvents{}
	svc := newTestAuthService(repo, events)

	user, err := svc.Register(context.Background(), "alice1234", "alice@example.com", "password1", "Manager")
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash != "" {
		t.Fatalf("returned user must not carry the hash")
	}
	if user.Role != domain.RoleManager || user.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", user)
	}

	stored := repo.users["alice1234"]
	if stored.PasswordHash == "" || stored.PasswordHash == "password1" {
		t.Fatalf("expected stored digest, got %q", stored.PasswordHash)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("password1")); err != nil {
		t.Fatalf("stored digest does not verify: %v", err)
	}
	if got := events.kinds(); len(got) != 1 || got[0] != domain.AuthEventRegistered {
		t.Fatalf("unexpected events: %v", got)
	}
}

func TestAuthService_Register_LengthBoundary(t *testing.T) {
	cases := []struct {
		name     string
		username string
		password string
		wantErr  bool
	}{
		{"both nine", "abcdefghi", "123456789", false},
		{"username eight", "abcdefgh", "123456789", true},
		{"password eight", "abcdefghi", "12345678", true},
		{"empty", "", "", true},
		{"multibyte nine runes", "ñañañañañ", "contraseñ", false},
		{"multibyte eight runes", "ñañañaña", "123456789", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			repo := newStubAuthRepo()
			svc := newTestAuthService(repo, nil)

			_, err := svc.Register(context.Background(), tc.username, "", tc.password, "")
			if tc.wantErr {
				if !errors.Is(err, domain.ErrCredentialTooShort) {
					t.Fatalf("expected ErrCredentialTooShort, got %v", err)
				}
				if len(repo.users) != 0 {
					t.Fatalf("nothing should be stored")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestAuthService_Register_RoleCoercion(t *testing.T) {
	for _, role := range []string{"", "manager", "Admin", "Store Keeper"} {
		repo := newStubAuthRepo()
		svc := newTestAuthService(repo, nil)

		user, err := svc.Register(context.Background(), "keeper1234", "", "password1", role)
		if err != nil {
			t.Fatalf("role %q: %v", role, err)
		}
		if user.Role != domain.RoleStoreKeeper {
			t.Fatalf("role %q: expected Store Keeper, got %q", role, user.Role)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubAuthRepo()
	svc := newTestAuthService(repo, nil)

	if _, err := svc.Register(context.Background(), "alice1234", "", "password1", ""); err != nil {
		t.Fatalf("first register: %v", err)
	}
	original := repo.users["alice1234"].PasswordHash

	_, err := svc.Register(context.Background(), "alice1234", "", "different1", "Manager")
	if !errors.Is(err, domain.ErrUsernameTaken) {
		t.Fatalf("expected ErrUsernameTaken, got %v", err)
	}
	if repo.users["alice1234"].PasswordHash != original || repo.users["alice1234"].Role != domain.RoleStoreKeeper {
		t.Fatalf("existing record must be unchanged")
	}
}

func TestAuthService_Register_StoreFailure(t *testing.T) {
	repo := newStubAuthRepo()
	repo.findErr = errors.Join(domain.ErrPersistence, errors.New("connection reset"))
	svc := newTestAuthService(repo, nil)

	_, err := svc.Register(context.Background(), "alice1234", "", "password1", "")
	if !errors.Is(err, domain.ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}

func TestAuthService_Login(t *testing.T) {
	repo := newStubAuthRepo()
	events := &recordingEvents{}
	svc := newTestAuthService(repo, events)

	if _, err := svc.Register(context.Background(), "keeper1234", "", "password1", "Store Keeper"); err != nil {
		t.Fatalf("register: %v", err)
	}

	user, err := svc.Login(context.Background(), "keeper1234", "password1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "keeper1234" || user.Role != domain.RoleStoreKeeper || user.PasswordHash != "" {
		t.Fatalf("unexpected user: %+v", user)
	}

	if _, err := svc.Login(context.Background(), "keeper1234", "password2"); !errors.Is(err, domain.ErrPasswordMismatch) {
		t.Fatalf("expected ErrPasswordMismatch, got %v", err)
	}
	if _, err := svc.Login(context.Background(), "nobody123", "password1"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	want := []domain.AuthEventKind{
		domain.AuthEventRegistered,
		domain.AuthEventLoginSucceeded,
		domain.AuthEventLoginFailed,
		domain.AuthEventLoginFailed,
	}
	got := events.kinds()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestAuthService_Login_CorruptDigest(t *testing.T) {
	repo := newStubAuthRepo()
	repo.users["broken1234"] = &domain.User{Username: "broken1234", PasswordHash: "not-a-bcrypt-digest"}
	svc := newTestAuthService(repo, nil)

	_, err := svc.Login(context.Background(), "broken1234", "password1")
	if !errors.Is(err, domain.ErrInvalidDigestFormat) {
		t.Fatalf("expected ErrInvalidDigestFormat, got %v", err)
	}
	if strings.Contains(err.Error(), "password1") {
		t.Fatalf("error must not echo the password")
	}
}
