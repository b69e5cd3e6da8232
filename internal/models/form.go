package models

import (
	"errors"
	"strings"
	"time"
)

// Field types accepted in an event form definition
const (
	FieldTypeText   = "text"
	FieldTypeEmail  = "email"
	FieldTypePhone  = "phone"
	FieldTypeNumber = "number"
	FieldTypeSelect = "select"
)

// FormField is one input in an event form definition
type FormField struct {
	Label    string   `json:"label"`
	Type     string   `json:"type"`
	Required bool     `json:"required"`
	Options  []string `json:"options,omitempty"`
}

// EventForm represents a registration form definition.
// At most one form is published at a time; the published form is the one
// accepting public registrations.
type EventForm struct {
	ID          int64       `json:"id" db:"id"`
	Title       string      `json:"title" db:"title"`
	Description string      `json:"description" db:"description"`
	Fields      []FormField `json:"fields" db:"fields"`
	Published   bool        `json:"published" db:"published"`
	CreatedAt   time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at" db:"updated_at"`
}

// EventFormCreateRequest represents a request to create an event form
type EventFormCreateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
}

// EventFormUpdateRequest represents a request to update an event form
type EventFormUpdateRequest struct {
	Title       string      `json:"title"`
	Description string      `json:"description"`
	Fields      []FormField `json:"fields"`
}

// Validate validates event form creation data
func (req *EventFormCreateRequest) Validate() error {
	if err := validateFormTitle(req.Title); err != nil {
		return err
	}

	return validateFormFields(req.Fields)
}

// Validate validates event form update data
func (req *EventFormUpdateRequest) Validate() error {
	if err := validateFormTitle(req.Title); err != nil {
		return err
	}

	return validateFormFields(req.Fields)
}

func validateFormTitle(title string) error {
	if strings.TrimSpace(title) == "" {
		return errors.New("form title is required")
	}

	if len(title) > 255 {
		return errors.New("form title must be less than 255 characters")
	}

	return nil
}

func validateFormFields(fields []FormField) error {
	for _, field := range fields {
		if strings.TrimSpace(field.Label) == "" {
			return errors.New("form field label is required")
		}

		switch field.Type {
		case FieldTypeText, FieldTypeEmail, FieldTypePhone, FieldTypeNumber:
		case FieldTypeSelect:
			if len(field.Options) == 0 {
				return errors.New("select field requires at least one option")
			}
		default:
			return errors.New("invalid form field type")
		}
	}

	return nil
}
