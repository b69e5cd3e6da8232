package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"event-registration-backend/internal/models"

	"github.com/google/uuid"
)

// ScanOutcome classifies the result of a scan attempt
type ScanOutcome int

const (
	ScanAccepted ScanOutcome = iota
	ScanNotFound
	ScanRevoked
	ScanLimitReached
)

// RegistrationRepository handles registration data operations
type RegistrationRepository struct {
	db *sql.DB
}

// NewRegistrationRepository creates a new registration repository
func NewRegistrationRepository(db *sql.DB) *RegistrationRepository {
	return &RegistrationRepository{db: db}
}

const registrationColumns = "id, name, email, phone, organization, group_size, form_id, has_qr, qr_code_data, scans, max_scans, status, created_at"

// Create creates a new registration with a fresh id, zero scans and no QR code
func (r *RegistrationRepository) Create(req *models.RegistrationCreateRequest) (*models.Registration, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	registration := &models.Registration{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		Phone:        req.Phone,
		Organization: req.Organization,
		GroupSize:    req.GroupSize,
		FormID:       req.FormID,
		HasQR:        false,
		Scans:        0,
		MaxScans:     req.MaxScans,
		Status:       models.RegistrationActive,
		CreatedAt:    time.Now().UTC(),
	}

	query := `
		INSERT INTO registrations (id, name, email, phone, organization, group_size, form_id, has_qr, qr_code_data, scans, max_scans, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, 0, '', 0, ?, ?, ?)`

	_, err := r.db.Exec(
		query,
		registration.ID,
		registration.Name,
		registration.Email,
		registration.Phone,
		registration.Organization,
		registration.GroupSize,
		registration.FormID,
		registration.MaxScans,
		registration.Status,
		registration.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create registration: %w", err)
	}

	return registration, nil
}

// GetByID retrieves a registration by id, returning (nil, nil) when it does not exist
func (r *RegistrationRepository) GetByID(id string) (*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations WHERE id = ?"

	registration, err := scanRegistration(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get registration: %w", err)
	}

	return registration, nil
}

// GetAll retrieves all registrations, newest first
func (r *RegistrationRepository) GetAll() ([]*models.Registration, error) {
	query := "SELECT " + registrationColumns + " FROM registrations ORDER BY created_at DESC, rowid DESC"

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

// GetByFormID retrieves registrations for a form, newest first. Rows with no
// form id are included under every form: legacy registrations created before
// forms existed must stay visible in each form's report.
func (r *RegistrationRepository) GetByFormID(formID int64) ([]*models.Registration, error) {
	query := "SELECT " + registrationColumns + ` FROM registrations
		WHERE form_id = ? OR form_id IS NULL
		ORDER BY created_at DESC, rowid DESC`

	rows, err := r.db.Query(query, formID)
	if err != nil {
		return nil, fmt.Errorf("failed to list registrations for form: %w", err)
	}
	defer rows.Close()

	return collectRegistrations(rows)
}

// GetFormStats aggregates ticket metrics for a form using the same form-or-legacy
// match as GetByFormID. All metrics are zero when nothing matches.
func (r *RegistrationRepository) GetFormStats(formID int64) (*models.RegistrationStats, error) {
	query := statsQuery + " WHERE form_id = ? OR form_id IS NULL"
	return r.queryStats(query, formID)
}

// Stats aggregates ticket metrics over all registrations
func (r *RegistrationRepository) Stats() (*models.RegistrationStats, error) {
	return r.queryStats(statsQuery)
}

const statsQuery = `
	SELECT
		COUNT(*),
		COALESCE(SUM(CASE WHEN has_qr = 1 THEN 1 ELSE 0 END), 0),
		COALESCE(SUM(scans), 0),
		COALESCE(SUM(CASE WHEN status IN ('active', 'checked-in') THEN 1 ELSE 0 END), 0)
	FROM registrations`

func (r *RegistrationRepository) queryStats(query string, args ...any) (*models.RegistrationStats, error) {
	stats := &models.RegistrationStats{}
	err := r.db.QueryRow(query, args...).Scan(&stats.Total, &stats.WithQR, &stats.TotalScans, &stats.Active)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate registration stats: %w", err)
	}
	return stats, nil
}

// SetQRCode binds a QR payload to a registration. Returns false without error
// when the registration does not exist or already has a QR code, so issuing
// twice is a safe no-op.
func (r *RegistrationRepository) SetQRCode(id, data string) (bool, error) {
	result, err := r.db.Exec(
		"UPDATE registrations SET qr_code_data = ?, has_qr = 1 WHERE id = ? AND has_qr = 0",
		data, id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to set QR code: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to set QR code: %w", err)
	}

	return affected > 0, nil
}

// Revoke marks a registration revoked. Returns false when it does not exist.
// A revoked registration never becomes active again.
func (r *RegistrationRepository) Revoke(id string) (bool, error) {
	result, err := r.db.Exec("UPDATE registrations SET status = ? WHERE id = ?", models.RegistrationRevoked, id)
	if err != nil {
		return false, fmt.Errorf("failed to revoke registration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to revoke registration: %w", err)
	}

	return affected > 0, nil
}

// Delete removes a registration. Returns false when nothing was deleted.
func (r *RegistrationRepository) Delete(id string) (bool, error) {
	result, err := r.db.Exec("DELETE FROM registrations WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete registration: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to delete registration: %w", err)
	}

	return affected > 0, nil
}

// RecordScan performs the read-check-increment sequence for one ticket as a
// single transaction. The checks run in a fixed order: existence, revocation,
// scan limit; only then is the counter incremented. The guarded UPDATE makes
// two concurrent scans of the same ticket serialize instead of both passing
// the limit check.
func (r *RegistrationRepository) RecordScan(id string) (ScanOutcome, *models.Registration, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return ScanNotFound, nil, fmt.Errorf("failed to start scan transaction: %w", err)
	}
	defer tx.Rollback()

	query := "SELECT " + registrationColumns + " FROM registrations WHERE id = ?"
	registration, err := scanRegistration(tx.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return ScanNotFound, nil, nil
		}
		return ScanNotFound, nil, fmt.Errorf("failed to read registration for scan: %w", err)
	}

	if registration.IsRevoked() {
		return ScanRevoked, registration, nil
	}

	if registration.Scans >= registration.MaxScans {
		return ScanLimitReached, registration, nil
	}

	result, err := tx.Exec(`
		UPDATE registrations
		SET scans = scans + 1,
		    status = CASE WHEN scans + 1 >= max_scans THEN 'checked-in' ELSE status END
		WHERE id = ? AND status != 'revoked' AND scans < max_scans`,
		id,
	)
	if err != nil {
		return ScanNotFound, registration, fmt.Errorf("failed to record scan: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ScanNotFound, registration, fmt.Errorf("failed to record scan: %w", err)
	}
	if affected == 0 {
		// Lost a race with another scan that exhausted the budget first.
		return ScanLimitReached, registration, nil
	}

	updated, err := scanRegistration(tx.QueryRow(query, id))
	if err != nil {
		return ScanNotFound, registration, fmt.Errorf("failed to reload registration after scan: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return ScanNotFound, registration, fmt.Errorf("failed to commit scan: %w", err)
	}

	return ScanAccepted, updated, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRegistration(row rowScanner) (*models.Registration, error) {
	registration := &models.Registration{}
	var formID sql.NullInt64

	err := row.Scan(
		&registration.ID,
		&registration.Name,
		&registration.Email,
		&registration.Phone,
		&registration.Organization,
		&registration.GroupSize,
		&formID,
		&registration.HasQR,
		&registration.QRCodeData,
		&registration.Scans,
		&registration.MaxScans,
		&registration.Status,
		&registration.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if formID.Valid {
		registration.FormID = &formID.Int64
	}

	return registration, nil
}

func collectRegistrations(rows *sql.Rows) ([]*models.Registration, error) {
	registrations := []*models.Registration{}

	for rows.Next() {
		registration, err := scanRegistration(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan registration row: %w", err)
		}
		registrations = append(registrations, registration)
	}

	return registrations, rows.Err()
}
