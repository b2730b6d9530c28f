// Package apperr defines the error taxonomy shared by services and handlers.
// Services return these; the HTTP layer maps them to status codes and keeps
// storage/render detail out of user-visible responses.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidToken is returned for a malformed or badly-signed session token.
	ErrInvalidToken = errors.New("invalid session token")

	// ErrTokenExpired is returned when the token's embedded expiry has passed.
	ErrTokenExpired = errors.New("session token expired")

	// ErrInvalidCredentials covers both unknown-username and wrong-password
	// so responses never reveal which one failed.
	ErrInvalidCredentials = errors.New("either username or password don't match, invalid credentials")

	// ErrLoginDisabled is returned while an admin-initiated password reset is
	// pending. Deliberately distinct from ErrInvalidCredentials, and only
	// reachable after the username is confirmed to exist.
	ErrLoginDisabled = errors.New("login disabled for this username, contact webmaster")

	// ErrForbidden means authenticated but lacking the required privilege.
	ErrForbidden = errors.New("insufficient privilege")

	// ErrRegistrationDisabled is returned when self-registration is turned
	// off in the site configuration.
	ErrRegistrationDisabled = errors.New("registration not enabled, contact site admin")

	// ErrSelfDelete is returned when a webmaster tries to delete their own
	// account. Distinct so the UI can send them back to the edit view.
	ErrSelfDelete = errors.New("cannot delete your own account")

	// ErrDuplicateUsername is returned on registration collisions.
	ErrDuplicateUsername = errors.New("username already exists, try a new username")
)

// ValidationError reports bad, missing or oversized input. Field names the
// offending input so feedback can point at it.
type ValidationError struct {
	Field string
	Msg   string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Msg
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Msg)
}

// Validation builds a field-specific *ValidationError.
func Validation(field, msg string) error {
	return &ValidationError{Field: field, Msg: msg}
}

// IsValidation reports whether err is (or wraps) a *ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// RenderError wraps a markdown parse or sanitization failure. Treated as a
// request-level failure, never fatal to the process.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return "failed to process markdown content: " + e.Err.Error()
}

func (e *RenderError) Unwrap() error { return e.Err }
