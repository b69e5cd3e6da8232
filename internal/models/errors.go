package models

import "errors"

// Common errors used throughout the application
var (
	ErrRegistrationNotFound = errors.New("registration not found")
	ErrFormNotFound         = errors.New("form not found")
	ErrAdminNotFound        = errors.New("admin not found")
	ErrInvalidInput         = errors.New("invalid input")
	ErrInvalidCredentials   = errors.New("invalid credentials")
	ErrDuplicateEntry       = errors.New("duplicate entry")
)
