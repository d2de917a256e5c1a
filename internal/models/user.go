package models

import (
	"time"

	"github.com/google/uuid"
)

// User owns exactly one Board. The session token is stored hashed; the raw
// token only ever travels back to the client that signed in.
type User struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Email            string    `gorm:"size:255;not null;uniqueIndex" json:"email"`
	PasswordHash     string    `gorm:"not null" json:"-"`
	SessionTokenHash *string   `gorm:"size:64;index" json:"-"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
