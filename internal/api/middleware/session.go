package middleware

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"

	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

const (
	sessionKey  = "session"
	identityKey = "identity"
)

// SessionConfig configures the Session middleware.
type SessionConfig struct {
	// Skipper bypasses the session lookup; skipped requests are anonymous.
	Skipper echomiddleware.Skipper
}

// Session resolves the request's session from its cookie and stores it in
// the context. A session store failure aborts the request.
func Session(manager ports.SessionManager, codec *CookieCodec) echo.MiddlewareFunc {
	return SessionWithConfig(manager, codec, SessionConfig{})
}

// SessionWithConfig is Session with a skipper, used to keep health checks and
// metrics independent of the session store.
func SessionWithConfig(manager ports.SessionManager, codec *CookieCodec, cfg SessionConfig) echo.MiddlewareFunc {
	if cfg.Skipper == nil {
		cfg.Skipper = echomiddleware.DefaultSkipper
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if cfg.Skipper(c) {
				return next(c)
			}
			sess, err := manager.Current(c.Request().Context(), codec.Decode(c.Request()))
			if err != nil {
				return err
			}
			c.Set(sessionKey, sess)
			return next(c)
		}
	}
}

// SessionFrom returns the session resolved by Session, or domain.Anonymous.
func SessionFrom(c echo.Context) domain.Session {
	sess, ok := c.Get(sessionKey).(domain.Session)
	if !ok {
		return domain.Anonymous
	}
	return sess
}

// IdentityFrom returns the identity exposed by Gate on protected paths.
func IdentityFrom(c echo.Context) (domain.Identity, bool) {
	id, ok := c.Get(identityKey).(domain.Identity)
	return id, ok
}
