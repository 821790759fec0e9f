package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a registered account. The email doubles as the login name;
// Username defaults to the email and only differs for Google-provisioned
// accounts, which also carry an empty password hash.
type User struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	Username     string    `json:"username" db:"username"`
	PasswordHash string    `json:"-" db:"password_hash"` // Hidden from JSON responses
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
