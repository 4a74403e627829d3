package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/stockwise/inventory-system/internal/api/metrics"
	"github.com/stockwise/inventory-system/internal/api/middleware"
	"github.com/stockwise/inventory-system/internal/core/domain"
	"github.com/stockwise/inventory-system/internal/core/ports"
)

// invalidLogin is returned for both unknown usernames and wrong passwords.
const invalidLogin = "invalid username or password"

type AuthHandler struct {
	authService ports.AuthService
	sessions    ports.SessionManager
	cookies     *middleware.CookieCodec
	sessionTTL  time.Duration
	loginPath   string
	log         zerolog.Logger
}

func NewAuthHandler(
	authService ports.AuthService,
	sessions ports.SessionManager,
	cookies *middleware.CookieCodec,
	sessionTTL time.Duration,
	loginPath string,
	log zerolog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		cookies:     cookies,
		sessionTTL:  sessionTTL,
		loginPath:   loginPath,
		log:         log,
	}
}

// Home reports the identity bound to the caller's session, or null.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Success      200  {object}  homeResponse
// @Router       / [get]
func (h *AuthHandler) Home(c echo.Context) error {
	return c.JSON(http.StatusOK, homeResponse{User: middleware.SessionFrom(c).User})
}

// LoginEntry is where unauthenticated callers are sent. It tells the client
// where to post credentials.
//
// @Summary      Login entry point
// @Tags         auth
// @Produce      json
// @Success      200  {object}  loginEntryResponse
// @Router       /login [get]
func (h *AuthHandler) LoginEntry(c echo.Context) error {
	return c.JSON(http.StatusOK, loginEntryResponse{
		Message:  "login required",
		LoginURL: "/auth/login",
		User:     middleware.SessionFrom(c).User,
	})
}

// Register creates a new user account and signs it in.
//
// @Summary      Register a new user
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      409   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Email, req.Password, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrCredentialTooShort):
			metrics.AuthAttemptsTotal.WithLabelValues("register", "too_short").Inc()
			return c.JSON(http.StatusBadRequest, errorBody{Error: err.Error()})
		case errors.Is(err, domain.ErrUsernameTaken):
			metrics.AuthAttemptsTotal.WithLabelValues("register", "username_taken").Inc()
			return c.JSON(http.StatusConflict, errorBody{Error: err.Error()})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("register", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("register", "success").Inc()

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, userResponse{User: user})
}

// Login authenticates a user and binds it to a fresh session.
//
// @Summary      Login
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  userResponse
// @Failure      400   {object}  errorBody
// @Failure      401   {object}  errorBody
// @Failure      500   {object}  errorBody
// @Router       /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, errorBody{Error: "invalid payload"})
	}

	user, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) || errors.Is(err, domain.ErrPasswordMismatch) {
			metrics.AuthAttemptsTotal.WithLabelValues("login", "invalid_credentials").Inc()
			return c.JSON(http.StatusUnauthorized, errorBody{Error: invalidLogin})
		}
		metrics.AuthAttemptsTotal.WithLabelValues("login", "error").Inc()
		return err
	}
	metrics.AuthAttemptsTotal.WithLabelValues("login", "success").Inc()

	if err := h.startSession(c, user); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, userResponse{User: user})
}

// Logout ends the caller's session and redirects to the login page.
//
// @Summary      Logout
// @Tags         auth
// @Success      302
// @Failure      500  {object}  errorBody
// @Router       /logout [get]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.sessions.End(c.Request().Context(), middleware.SessionFrom(c)); err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("end", "error").Inc()
		return err
	}
	metrics.SessionOperationsTotal.WithLabelValues("end", "ok").Inc()

	c.SetCookie(h.cookies.Clear())
	return c.Redirect(http.StatusFound, h.loginPath)
}

// startSession regenerates the caller's session bound to user and sets the
// new cookie. The prior session identifier is invalidated by the manager.
func (h *AuthHandler) startSession(c echo.Context, user *domain.User) error {
	sess, err := h.sessions.Start(c.Request().Context(), middleware.SessionFrom(c), user.Identity())
	if err != nil {
		metrics.SessionOperationsTotal.WithLabelValues("start", "error").Inc()
		return err
	}
	metrics.SessionOperationsTotal.WithLabelValues("start", "ok").Inc()

	cookie, err := h.cookies.Encode(sess.ID, h.sessionTTL)
	if err != nil {
		h.log.Error().Err(err).Msg("failed to sign session cookie")
		return err
	}
	c.SetCookie(cookie)
	return nil
}
