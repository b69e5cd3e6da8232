package models

import (
	"strings"
	"testing"
)

func TestRegistrationCreateRequestValidate(t *testing.T) {
	valid := RegistrationCreateRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		GroupSize: 1,
		MaxScans:  1,
	}

	tests := []struct {
		name    string
		mutate  func(req *RegistrationCreateRequest)
		wantErr string
	}{
		{
			name:   "valid request",
			mutate: func(req *RegistrationCreateRequest) {},
		},
		{
			name:    "missing name",
			mutate:  func(req *RegistrationCreateRequest) { req.Name = "   " },
			wantErr: "name is required",
		},
		{
			name:    "name too long",
			mutate:  func(req *RegistrationCreateRequest) { req.Name = strings.Repeat("a", 256) },
			wantErr: "name must be less than 255 characters",
		},
		{
			name:    "missing email",
			mutate:  func(req *RegistrationCreateRequest) { req.Email = "" },
			wantErr: "email is required",
		},
		{
			name:    "invalid email",
			mutate:  func(req *RegistrationCreateRequest) { req.Email = "not-an-email" },
			wantErr: "email format is invalid",
		},
		{
			name:    "zero group size",
			mutate:  func(req *RegistrationCreateRequest) { req.GroupSize = 0 },
			wantErr: "group size must be at least 1",
		},
		{
			name:    "negative group size",
			mutate:  func(req *RegistrationCreateRequest) { req.GroupSize = -3 },
			wantErr: "group size must be at least 1",
		},
		{
			name:    "zero max scans",
			mutate:  func(req *RegistrationCreateRequest) { req.MaxScans = 0 },
			wantErr: "max scans must be at least 1",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := valid
			tt.mutate(&req)

			err := req.Validate()
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

func TestRegistrationScansRemaining(t *testing.T) {
	tests := []struct {
		name     string
		scans    int
		maxScans int
		want     int
	}{
		{"unused ticket", 0, 3, 3},
		{"partially used", 2, 3, 1},
		{"fully used", 3, 3, 0},
		{"over limit clamps to zero", 5, 3, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Registration{Scans: tt.scans, MaxScans: tt.maxScans}
			if got := r.ScansRemaining(); got != tt.want {
				t.Errorf("ScansRemaining() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestRegistrationIsRevoked(t *testing.T) {
	r := Registration{Status: RegistrationActive}
	if r.IsRevoked() {
		t.Error("active registration reported as revoked")
	}

	r.Status = RegistrationRevoked
	if !r.IsRevoked() {
		t.Error("revoked registration not reported as revoked")
	}
}
