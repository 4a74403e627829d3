package domain

import "time"

// AuthEventKind enumerates the recorded authentication outcomes.
type AuthEventKind string

const (
	AuthEventRegistered     AuthEventKind = "registered"
	AuthEventLoginSucceeded AuthEventKind = "login_succeeded"
	AuthEventLoginFailed    AuthEventKind = "login_failed"
	AuthEventLoggedOut      AuthEventKind = "logged_out"
)

// AuthEvent is one entry of the authentication activity trail.
type AuthEvent struct {
	Username   string        `bson:"username"`
	Kind       AuthEventKind `bson:"kind"`
	OccurredAt time.Time     `bson:"occurred_at"`
}
