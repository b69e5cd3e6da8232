package repositories

import (
	"errors"
	"testing"

	"event-registration-backend/internal/models"
)

func TestAdminRepositoryCreateAndGet(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db.DB)

	admin, err := repo.Create("admin@example.com", "$argon2id$fake-hash")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	fetched, err := repo.GetByEmail("admin@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if fetched == nil || fetched.ID != admin.ID {
		t.Fatalf("expected to find created admin, got %+v", fetched)
	}

	missing, err := repo.GetByEmail("nobody@example.com")
	if err != nil {
		t.Fatalf("GetByEmail() error: %v", err)
	}
	if missing != nil {
		t.Errorf("expected nil for unknown admin, got %+v", missing)
	}
}

func TestAdminRepositoryDuplicateEmail(t *testing.T) {
	db := setupTestDB(t)
	repo := NewAdminRepository(db.DB)

	if _, err := repo.Create("admin@example.com", "hash"); err != nil {
		t.Fatalf("Create() error: %v", err)
	}

	_, err := repo.Create("admin@example.com", "hash")
	if err == nil {
		t.Fatal("expected duplicate email to fail")
	}
	if !errors.Is(err, models.ErrDuplicateEntry) {
		t.Errorf("expected ErrDuplicateEntry, got %v", err)
	}
}
