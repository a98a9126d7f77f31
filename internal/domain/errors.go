package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// User errors
	ErrUserNotFound  = errors.New("user not found")
	ErrUsernameTaken = errors.New("username already taken")

	// Transfer errors
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrSameAccount       = errors.New("cannot transfer to yourself")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrTransferNotFound  = errors.New("transfer not found")

	// ErrTransferConflict is returned when a transfer keeps losing to
	// concurrent transactions even after all retries.
	ErrTransferConflict = errors.New("transfer aborted by concurrent activity")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
