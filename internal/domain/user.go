package domain

import "time"

// User represents an account holder. Each user owns exactly one account,
// addressable by the user's unique username.
type User struct {
	ID             string
	Username       string
	Email          string
	Name           string
	HashedPassword string
	AccountID      string
	CreatedAt      time.Time
}
