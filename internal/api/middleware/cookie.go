package middleware

import (
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// SessionCookieName is the cookie carrying the signed session identifier.
const SessionCookieName = "inventory.sid"

// CookieCodec signs session identifiers into the session cookie and reads
// them back. The cookie only carries the identifier; session content stays
// server-side.
type CookieCodec struct {
	secret []byte
	secure bool
}

// NewCookieCodec returns a codec signing with secret. secure sets the
// cookie's Secure attribute and is off only for local development.
func NewCookieCodec(secret string, secure bool) *CookieCodec {
	return &CookieCodec{secret: []byte(secret), secure: secure}
}

// Encode returns the cookie for sessionID, valid for ttl.
func (cc *CookieCodec) Encode(sessionID string, ttl time.Duration) (*http.Cookie, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		ID:        sessionID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(cc.secret)
	if err != nil {
		return nil, err
	}

	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    signed,
		Path:     "/",
		Expires:  now.Add(ttl),
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Decode returns the session identifier from r, or "" when the cookie is
// missing, expired, or not signed with our secret.
func (cc *CookieCodec) Decode(r *http.Request) string {
	cookie, err := r.Cookie(SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	claims := &jwt.RegisteredClaims{}
	tkn, err := jwt.ParseWithClaims(cookie.Value, claims, func(token *jwt.Token) (interface{}, error) {
		return cc.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil || !tkn.Valid {
		return ""
	}
	return claims.ID
}

// Clear returns a cookie that removes the session cookie from the client.
func (cc *CookieCodec) Clear() *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cc.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
