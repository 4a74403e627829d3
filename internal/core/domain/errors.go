package domain

import "errors"

// Authentication and session failures. Boundaries match on these with
// errors.Is and pick the user-facing message themselves.
var (
	ErrCredentialTooShort  = errors.New("username or password too short")
	ErrUsernameTaken       = errors.New("username already exists")
	ErrUserNotFound        = errors.New("user not found")
	ErrPasswordMismatch    = errors.New("passwords do not match")
	ErrInvalidDigestFormat = errors.New("invalid password digest format")
	ErrSessionStore        = errors.New("session store failure")
	ErrForbidden           = errors.New("access forbidden")
)

// Storage failures. Repositories wrap the driver error as
// fmt.Errorf("%w: %w", ErrPersistence, err) so the cause is kept.
var (
	ErrPersistence     = errors.New("persistence failure")
	ErrProductNotFound = errors.New("product not found")
	ErrSessionNotFound = errors.New("session not found")
)
