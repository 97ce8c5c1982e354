package core

import (
	"context"
	"time"
)

// User represents someone who can sign in to the back office.
type User struct {
	ID           int
	Username     string
	Email        string
	PasswordHash string
	Role         string
	IsActive     bool
	CreatedAt    time.Time
}

// UserService provides user lookup operations.
type UserService interface {
	// GetByUsername finds an active user by username.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID returns a user by primary key.
	GetByID(ctx context.Context, userID int) (*User, error)
}
