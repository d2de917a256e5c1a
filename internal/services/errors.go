package services

import "errors"

var (
	// ErrNotFound means a referenced board, column, cell or user id does not
	// resolve to a live document.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the document exists but is owned by someone else.
	ErrForbidden = errors.New("owned by another user")

	// ErrUnauthenticated means no user holds the presented session token.
	ErrUnauthenticated = errors.New("invalid or expired session token")

	ErrEmailTaken = errors.New("email already registered")

	// ErrInvalidCredentials deliberately covers both "unknown email" and
	// "wrong password" so the response never leaks which one failed. It also
	// covers malformed sign-up/change-password params.
	ErrInvalidCredentials = errors.New("invalid email or password")

	ErrInvalidInput = errors.New("missing required fields")

	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrConflict is surfaced when a multi-document transaction could not be
	// applied atomically; the client should re-fetch the board.
	ErrConflict = errors.New("conflicting concurrent update")
)
