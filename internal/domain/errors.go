package domain

import "errors"

// Authentication errors
var (
	ErrAuthNotConfigured = errors.New("authentication is not configured")
	ErrMalformedProfile  = errors.New("identity provider returned a malformed profile")
	ErrInvalidState      = errors.New("invalid state parameter")
	ErrSessionExpired    = errors.New("browser session expired")
)

// Record errors
var (
	ErrSessionNotFound  = errors.New("practice session not found")
	ErrNotSessionOwner  = errors.New("practice session belongs to another user")
	ErrInvalidDate      = errors.New("date must be in YYYY-MM-DD format")
	ErrInvalidDuration  = errors.New("duration must be between 1 and 300 minutes")
	ErrInvalidIntensity = errors.New("invalid intensity")
	ErrInvalidMood      = errors.New("invalid mood")
	ErrInvalidCalories  = errors.New("calories must be non-negative")
)
