package domain

import "time"

// Identity is the public part of a user kept in a session.
type Identity struct {
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// IsManager reports whether the identity carries the Manager role.
func (i Identity) IsManager() bool {
	return i.Role == RoleManager
}

// Session is server-side state keyed by an opaque identifier. A session is
// either anonymous (User == nil) or bound to exactly one identity.
type Session struct {
	ID        string    `json:"id"`
	User      *Identity `json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Anonymous is the state of a request without a live session.
var Anonymous = Session{}

// Authenticated reports whether an identity is bound to the session.
func (s Session) Authenticated() bool {
	return s.User != nil
}
