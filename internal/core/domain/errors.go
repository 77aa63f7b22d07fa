package domain

import (
	"errors"
	"strings"
)

var (
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidRole        = errors.New("invalid role")

	ErrTokenMissing = errors.New("token missing")
	ErrTokenExpired = errors.New("token expired")
	ErrTokenInvalid = errors.New("token invalid")

	ErrForbidden       = errors.New("access forbidden")
	ErrPatientNotFound = errors.New("patient not found")

	ErrGatewayUnavailable = errors.New("text generation service unavailable")
	ErrGatewayTimeout     = errors.New("text generation service timed out")
)

// ValidationError names the required fields missing from a write request.
// It is always raised before anything is persisted.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "missing required fields: " + strings.Join(e.Fields, ", ")
}
