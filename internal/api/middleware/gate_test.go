package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/core/domain"
)

func testPolicy(t *testing.T) AccessPolicy {
	t.Helper()
	p, err := NewAccessPolicy([]string{"/dashboard", "/products", "/products/*"}, []string{"/dashboard"}, "/login")
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	return p
}

func sessionAs(role domain.Role) domain.Session {
	return domain.Session{ID: "sid", User: &domain.Identity{Username: "alice", Role: role}}
}

func TestAccessPolicy_Decide(t *testing.T) {
	p := testPolicy(t)

	cases := []struct {
		name string
		path string
		sess domain.Session
		want Decision
	}{
		{"public path anonymous", "/", domain.Anonymous, Allow},
		{"login anonymous", "/auth/login", domain.Anonymous, Allow},
		{"dashboard anonymous", "/dashboard", domain.Anonymous, RedirectToLogin},
		{"products anonymous", "/products", domain.Anonymous, RedirectToLogin},
		{"product item anonymous", "/products/42", domain.Anonymous, RedirectToLogin},
		{"dashboard store keeper", "/dashboard", sessionAs(domain.RoleStoreKeeper), Forbidden},
		{"dashboard manager", "/dashboard", sessionAs(domain.RoleManager), Allow},
		{"products store keeper", "/products", sessionAs(domain.RoleStoreKeeper), Allow},
		{"product item manager", "/products/42", sessionAs(domain.RoleManager), Allow},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := p.Decide(tc.path, tc.sess); got != tc.want {
				t.Fatalf("Decide(%q) = %s, want %s", tc.path, got, tc.want)
			}
		})
	}
}

func TestAccessPolicy_ManagerOnlyImpliesProtected(t *testing.T) {
	p, err := NewAccessPolicy(nil, []string{"/reports"}, "/login")
	if err != nil {
		t.Fatalf("policy: %v", err)
	}
	if got := p.Decide("/reports", domain.Anonymous); got != RedirectToLogin {
		t.Fatalf("expected redirect, got %s", got)
	}
}

func TestNewAccessPolicy_BadPattern(t *testing.T) {
	if _, err := NewAccessPolicy([]string{"/products/["}, nil, "/login"); err == nil {
		t.Fatalf("expected error for malformed pattern")
	}
}

func runGate(t *testing.T, target string, sess *domain.Session) (*httptest.ResponseRecorder, bool, echo.Context) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if sess != nil {
		c.Set(sessionKey, *sess)
	}

	called := false
	handler := Gate(testPolicy(t))(func(c echo.Context) error {
		called = true
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec, called, c
}

func TestGate_RedirectsAnonymous(t *testing.T) {
	rec, called, _ := runGate(t, "/dashboard", nil)
	if called {
		t.Fatalf("next handler should not run")
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get(echo.HeaderLocation); loc != "/login" {
		t.Fatalf("expected redirect to /login, got %q", loc)
	}
}

func TestGate_ForbidsStoreKeeperOnDashboard(t *testing.T) {
	sess := sessionAs(domain.RoleStoreKeeper)
	rec, called, _ := runGate(t, "/dashboard", &sess)
	if called {
		t.Fatalf("next handler should not run")
	}
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestGate_TrailingSlashStillProtected(t *testing.T) {
	rec, called, _ := runGate(t, "/dashboard/", nil)
	if called || rec.Code != http.StatusFound {
		t.Fatalf("expected redirect, got %d (called=%v)", rec.Code, called)
	}
}

func TestGate_AllowsManagerAndExposesIdentity(t *testing.T) {
	sess := sessionAs(domain.RoleManager)
	rec, called, c := runGate(t, "/dashboard", &sess)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d (called=%v)", rec.Code, called)
	}
	id, ok := IdentityFrom(c)
	if !ok || id.Username != "alice" || id.Role != domain.RoleManager {
		t.Fatalf("unexpected identity: %+v (ok=%v)", id, ok)
	}
}

func TestGate_PublicPathPassesAnonymous(t *testing.T) {
	rec, called, c := runGate(t, "/", nil)
	if !called || rec.Code != http.StatusOK {
		t.Fatalf("expected pass-through, got %d", rec.Code)
	}
	if _, ok := IdentityFrom(c); ok {
		t.Fatalf("anonymous request should not carry an identity")
	}
}

func TestGate_EscapedSlashStillProtected(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPut, "/products/abc%2Fdef", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Gate(testPolicy(t))(func(c echo.Context) error {
		t.Fatalf("should not reach next handler")
		return nil
	})
	if err := handler(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
}
