package domain

import "errors"

// Sentinel errors shared across services. The API error handler maps
// each to a fixed HTTP status.
var (
	// ErrUnauthorized covers every login failure mode (unknown user,
	// inactive account, wrong password) so that responses cannot be used
	// to enumerate accounts.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrInvalidToken marks an access or refresh token that failed
	// signature, structure, or expiry checks.
	ErrInvalidToken = errors.New("invalid token")

	// ErrForbidden is returned on any denied RBAC check. It carries no
	// detail about which role would have been sufficient.
	ErrForbidden = errors.New("forbidden")

	ErrBadRequest   = errors.New("bad request")
	ErrUserNotFound = errors.New("user not found")
	ErrNoteNotFound = errors.New("note not found")
	ErrUserExists   = errors.New("user already exists")

	// ErrUserHasNotes blocks account deletion while dependent notes exist.
	ErrUserHasNotes = errors.New("user has assigned notes")
)
