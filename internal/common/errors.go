// Package common defines shared sentinel errors used across the notekeeper
// storage, service and CLI layers. Callers should use errors.Is to match
// these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound = errors.New("not found")
	ErrStorage  = errors.New("storage error")

	// Account errors.
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNoUsers            = errors.New("no users found")

	// Session errors.
	ErrNoSession = errors.New("no user logged in")

	// Form validation errors.
	ErrValidation = errors.New("validation error")
)
