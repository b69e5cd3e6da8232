package models

import (
	"strings"
	"testing"
)

func TestEventFormCreateRequestValidate(t *testing.T) {
	tests := []struct {
		name    string
		req     EventFormCreateRequest
		wantErr string
	}{
		{
			name: "valid form",
			req: EventFormCreateRequest{
				Title: "Annual Meetup",
				Fields: []FormField{
					{Label: "Full name", Type: FieldTypeText, Required: true},
					{Label: "Shirt size", Type: FieldTypeSelect, Options: []string{"S", "M", "L"}},
				},
			},
		},
		{
			name:    "missing title",
			req:     EventFormCreateRequest{Title: "  "},
			wantErr: "form title is required",
		},
		{
			name:    "title too long",
			req:     EventFormCreateRequest{Title: strings.Repeat("t", 256)},
			wantErr: "form title must be less than 255 characters",
		},
		{
			name: "field without label",
			req: EventFormCreateRequest{
				Title:  "Meetup",
				Fields: []FormField{{Label: "", Type: FieldTypeText}},
			},
			wantErr: "form field label is required",
		},
		{
			name: "select field without options",
			req: EventFormCreateRequest{
				Title:  "Meetup",
				Fields: []FormField{{Label: "Shirt size", Type: FieldTypeSelect}},
			},
			wantErr: "select field requires at least one option",
		},
		{
			name: "unknown field type",
			req: EventFormCreateRequest{
				Title:  "Meetup",
				Fields: []FormField{{Label: "Photo", Type: "file"}},
			},
			wantErr: "invalid form field type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.req.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}

			if err == nil {
				t.Fatalf("Validate() expected error %q, got nil", tt.wantErr)
			}
			if err.Error() != tt.wantErr {
				t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
			}
		})
	}
}
