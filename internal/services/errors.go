package services

import "errors"

// Sentinel errors the handlers translate into HTTP statuses.
var (
	ErrNotFound           = errors.New("not found")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email already registered")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrDuplicateWord      = errors.New("word already exists in vocabulary")
	ErrNoSession          = errors.New("chat session not found or expired")
	ErrNoDetails          = errors.New("no feedback details for session")
	ErrInvalidResetToken  = errors.New("password reset token invalid or expired")
)
