package models

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// RegistrationStatus represents the lifecycle status of a registration
type RegistrationStatus string

const (
	RegistrationActive    RegistrationStatus = "active"
	RegistrationCheckedIn RegistrationStatus = "checked-in"
	RegistrationRevoked   RegistrationStatus = "revoked"
)

// Registration represents a single event registration and its ticket state
type Registration struct {
	ID           string             `json:"id" db:"id"`
	Name         string             `json:"name" db:"name"`
	Email        string             `json:"email" db:"email"`
	Phone        string             `json:"phone" db:"phone"`
	Organization string             `json:"organization" db:"organization"`
	GroupSize    int                `json:"group_size" db:"group_size"`
	FormID       *int64             `json:"form_id,omitempty" db:"form_id"`
	HasQR        bool               `json:"has_qr" db:"has_qr"`
	QRCodeData   string             `json:"qr_code_data,omitempty" db:"qr_code_data"`
	Scans        int                `json:"scans" db:"scans"`
	MaxScans     int                `json:"max_scans" db:"max_scans"`
	Status       RegistrationStatus `json:"status" db:"status"`
	CreatedAt    time.Time          `json:"created_at" db:"created_at"`
}

// RegistrationCreateRequest represents a request to create a registration
type RegistrationCreateRequest struct {
	Name         string `json:"name"`
	Email        string `json:"email"`
	Phone        string `json:"phone"`
	Organization string `json:"organization"`
	GroupSize    int    `json:"group_size"`
	FormID       *int64 `json:"form_id,omitempty"`
	MaxScans     int    `json:"max_scans"`
}

// RegistrationStats aggregates ticket metrics over a set of registrations
type RegistrationStats struct {
	Total      int `json:"total"`
	WithQR     int `json:"with_qr"`
	TotalScans int `json:"total_scans"`
	Active     int `json:"active"`
}

// ScanResult is the outcome of verifying a scanned ticket.
// Registration is present whenever the ticket was found, valid or not.
type ScanResult struct {
	Valid        bool          `json:"valid"`
	Registration *Registration `json:"registration,omitempty"`
	Message      string        `json:"message"`
}

var registrationEmailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates registration creation data
func (req *RegistrationCreateRequest) Validate() error {
	if err := validateRegistrantName(req.Name); err != nil {
		return err
	}

	if err := validateRegistrantEmail(req.Email); err != nil {
		return err
	}

	if err := validateGroupSize(req.GroupSize); err != nil {
		return err
	}

	return validateMaxScans(req.MaxScans)
}

func validateRegistrantName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errors.New("name is required")
	}

	if len(name) > 255 {
		return errors.New("name must be less than 255 characters")
	}

	return nil
}

func validateRegistrantEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !registrationEmailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

func validateGroupSize(size int) error {
	if size < 1 {
		return errors.New("group size must be at least 1")
	}

	return nil
}

func validateMaxScans(maxScans int) error {
	if maxScans < 1 {
		return errors.New("max scans must be at least 1")
	}

	return nil
}

// IsRevoked reports whether the registration can no longer be scanned
func (r *Registration) IsRevoked() bool {
	return r.Status == RegistrationRevoked
}

// ScansRemaining returns the number of scans left before the ticket is fully used
func (r *Registration) ScansRemaining() int {
	remaining := r.MaxScans - r.Scans
	if remaining < 0 {
		return 0
	}
	return remaining
}
