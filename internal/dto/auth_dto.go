package dto

import (
	"time"

	"github.com/google/uuid"
)

// Credentials is the envelope the client sends for both sign-up and sign-in.
type Credentials struct {
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type SignUpRequest struct {
	Credentials Credentials `json:"credentials"`
}

type SignInRequest struct {
	Credentials Credentials `json:"credentials"`
}

type ChangePasswordRequest struct {
	Passwords Passwords `json:"passwords"`
}

type Passwords struct {
	Old string `json:"old"`
	New string `json:"new"`
}

// UserResponse carries the session token once, at sign-in; the hash stays
// server-side.
type UserResponse struct {
	ID        uuid.UUID `json:"id"`
	Email     string    `json:"email"`
	Token     string    `json:"token,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type SignInResponse struct {
	User  UserResponse   `json:"user"`
	Board *BoardResponse `json:"board"`
}

type ErrorResponse struct {
	Error   bool   `json:"error"`
	Message string `json:"message"`
}

type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	DB        string `json:"db"`
}
