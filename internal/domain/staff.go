package domain

import (
	"time"

	"github.com/google/uuid"
)

// Staff is an administrator account for the dashboard.
type Staff struct {
	ID           uuid.UUID `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	Role         string    `json:"role" db:"role"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// RefreshToken is a stored, revocable token backing JWT renewal.
type RefreshToken struct {
	ID        uuid.UUID `json:"id" db:"id"`
	StaffID   uuid.UUID `json:"staff_id" db:"staff_id"`
	Token     string    `json:"token" db:"token"`
	ExpiresAt time.Time `json:"expires_at" db:"expires_at"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Revoked   bool      `json:"revoked" db:"revoked"`
}
