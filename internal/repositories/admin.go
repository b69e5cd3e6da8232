package repositories

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"event-registration-backend/internal/models"
)

// AdminRepository handles admin account data operations
type AdminRepository struct {
	db *sql.DB
}

// NewAdminRepository creates a new admin repository
func NewAdminRepository(db *sql.DB) *AdminRepository {
	return &AdminRepository{db: db}
}

// Create creates a new admin account with an already-hashed password
func (r *AdminRepository) Create(email, passwordHash string) (*models.Admin, error) {
	now := time.Now().UTC()

	result, err := r.db.Exec(
		"INSERT INTO admins (email, password_hash, created_at) VALUES (?, ?, ?)",
		email, passwordHash, now,
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, fmt.Errorf("%w: admin email already exists", models.ErrDuplicateEntry)
		}
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create admin: %w", err)
	}

	return &models.Admin{
		ID:           id,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    now,
	}, nil
}

// GetByEmail retrieves an admin by email, returning (nil, nil) when it does not exist
func (r *AdminRepository) GetByEmail(email string) (*models.Admin, error) {
	admin := &models.Admin{}

	err := r.db.QueryRow(
		"SELECT id, email, password_hash, created_at FROM admins WHERE email = ?",
		email,
	).Scan(&admin.ID, &admin.Email, &admin.PasswordHash, &admin.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get admin: %w", err)
	}

	return admin, nil
}
