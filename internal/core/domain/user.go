package domain

import "time"

// Role is the coarse authorization label attached to a user.
type Role string

const (
	RoleManager     Role = "Manager"
	RoleStoreKeeper Role = "Store Keeper"
)

// ParseRole accepts only the exact "Manager" label; everything else,
// including the empty string, becomes a store keeper.
func ParseRole(s string) Role {
	if Role(s) == RoleManager {
		return RoleManager
	}
	return RoleStoreKeeper
}

// User models a registered account.
type User struct {
	ID           string    `json:"id,omitempty"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Public returns a copy of u without the password hash.
func (u *User) Public() *User {
	if u == nil {
		return nil
	}
	clone := *u
	clone.PasswordHash = ""
	return &clone
}

// Identity returns the snapshot bound to a session.
func (u *User) Identity() Identity {
	return Identity{Username: u.Username, Role: u.Role}
}
