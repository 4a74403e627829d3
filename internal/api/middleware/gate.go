package middleware

import (
	"fmt"
	"net/http"
	"net/url"
	"path"

	"github.com/labstack/echo/v4"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/core/domain"
)

// Decision is the outcome of the access policy for one request, ordered
// from least to most strict.
type Decision int

const (
	Allow Decision = iota
	RedirectToLogin
	Forbidden
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case RedirectToLogin:
		return "redirect"
	case Forbidden:
		return "forbidden"
	default:
		return fmt.Sprintf("decision(%d)", int(d))
	}
}

// AccessPolicy lists the protected path patterns and the patterns that
// additionally need the Manager role. Patterns use path.Match syntax.
type AccessPolicy struct {
	Protected   []string
	ManagerOnly []string
	LoginPath   string
}

// NewAccessPolicy validates every pattern up front.
func NewAccessPolicy(protected, managerOnly []string, loginPath string) (AccessPolicy, error) {
	for _, p := range append(append([]string{}, protected...), managerOnly...) {
		if _, err := path.Match(p, "/"); err != nil {
			return AccessPolicy{}, fmt.Errorf("access pattern %q: %w", p, err)
		}
	}
	return AccessPolicy{Protected: protected, ManagerOnly: managerOnly, LoginPath: loginPath}, nil
}

// Protects reports whether reqPath needs an authenticated session. A
// Manager-only pattern is protected even if Protected omits it.
func (p AccessPolicy) Protects(reqPath string) bool {
	return matchAny(p.Protected, reqPath) || matchAny(p.ManagerOnly, reqPath)
}

// Decide evaluates the policy in order: unprotected paths pass, anonymous
// sessions are sent to login, Manager-only paths reject other roles.
func (p AccessPolicy) Decide(reqPath string, sess domain.Session) Decision {
	if !p.Protects(reqPath) {
		return Allow
	}
	if !sess.Authenticated() {
		return RedirectToLogin
	}
	if matchAny(p.ManagerOnly, reqPath) && !sess.User.IsManager() {
		return Forbidden
	}
	return Allow
}

// decideRequest evaluates both the decoded path and the escaped path the
// router dispatches on, and keeps the stricter outcome.
func (p AccessPolicy) decideRequest(u *url.URL, sess domain.Session) (Decision, bool) {
	decision, protected := Allow, false
	for _, candidate := range []string{u.Path, u.EscapedPath()} {
		reqPath := path.Clean("/" + candidate)
		if !p.Protects(reqPath) {
			continue
		}
		protected = true
		decision = max(decision, p.Decide(reqPath, sess))
	}
	return decision, protected
}

func matchAny(patterns []string, reqPath string) bool {
	for _, pattern := range patterns {
		if ok, _ := path.Match(pattern, reqPath); ok {
			return true
		}
	}
	return false
}

// Gate enforces policy using the session placed by Session. Allowed requests
// on protected paths see the bound identity through IdentityFrom.
func Gate(policy AccessPolicy) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sess := SessionFrom(c)
			decision, protected := policy.decideRequest(c.Request().URL, sess)
			if protected {
				metrics.GateDecisionsTotal.WithLabelValues(decision.String()).Inc()
			}

			switch decision {
			case RedirectToLogin:
				return c.Redirect(http.StatusFound, policy.LoginPath)
			case Forbidden:
				return c.JSON(http.StatusForbidden, map[string]string{"error": "access denied"})
			}

			if sess.User != nil {
				c.Set(identityKey, *sess.User)
			}
			return next(c)
		}
	}
}
