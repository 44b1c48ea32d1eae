package domain

import "errors"

// Sentinel errors shared by the repositories, services and handlers.
// Match them with errors.Is; repositories wrap them with context.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidID          = errors.New("invalid id")
	ErrValidation         = errors.New("validation error")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrStoreUnavailable   = errors.New("store unavailable")
)
