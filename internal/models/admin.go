package models

import (
	"errors"
	"strings"
	"time"
)

// Admin represents an administrator account used for session login
type Admin struct {
	ID           int64     `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// AdminCreateRequest represents a request to create an admin account
type AdminCreateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates admin creation data
func (req *AdminCreateRequest) Validate() error {
	if err := validateRegistrantEmail(req.Email); err != nil {
		return err
	}

	return validateAdminPassword(req.Password)
}

func validateAdminPassword(password string) error {
	if strings.TrimSpace(password) == "" {
		return errors.New("password is required")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}

	return nil
}
