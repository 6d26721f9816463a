package model

import (
	"github.com/google/uuid"
	"time"
)

type User struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// AuthResult is returned by successful registration and login.
type AuthResult struct {
	User      User
	Token     string
	ExpiresAt time.Time
}
