package model

import "errors"

// Common errors used across the application
var (
	// Record validation errors
	ErrEmptyGameID        = errors.New("game id cannot be empty")
	ErrDuplicateGame      = errors.New("game record already exists")
	ErrInvalidAttempts    = errors.New("attempts must be between 1 and 50")
	ErrGuessCountMismatch = errors.New("guesses length must match attempts")
	ErrTargetOutOfRange   = errors.New("target number must be between 1 and 1000")
	ErrGuessOutOfRange    = errors.New("guess must be between 1 and 1000")
	ErrInvalidDifficulty  = errors.New("unrecognized difficulty level")

	// Payment errors
	ErrInsufficientPayment = errors.New("insufficient payment for storage")

	// Authorization errors
	ErrNotOwner = errors.New("only the owner can perform this action")
	ErrNotAdmin = errors.New("only the owner or an admin can perform this action")

	// Admin roster errors
	ErrAlreadyAdmin  = errors.New("account is already an admin")
	ErrAdminNotFound = errors.New("account is not an admin")

	// Lookup errors
	ErrGameNotFound   = errors.New("game record not found")
	ErrPlayerNotFound = errors.New("player stats not found")
)
