package model

import "time"

// UserID uniquely identifies a user across the system
type UserID string

// User is the minimal identity record. Everything matchmaking cares about
// lives on the Profile; this only anchors authentication.
type User struct {
	ID        UserID
	CreatedAt time.Time
}

// RegisteredUser holds a user's login credentials.
// Stored separately so credential data never travels with profile reads.
type RegisteredUser struct {
	UserID       UserID
	Username     string // login username (immutable)
	PasswordHash string // bcrypt hash
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
