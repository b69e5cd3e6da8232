package repositories

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"event-registration-backend/internal/models"
)

// FormRepository handles event form data operations
type FormRepository struct {
	db *sql.DB
}

// NewFormRepository creates a new form repository
func NewFormRepository(db *sql.DB) *FormRepository {
	return &FormRepository{db: db}
}

const formColumns = "id, title, description, fields, published, created_at, updated_at"

// Create creates a new event form, unpublished
func (r *FormRepository) Create(req *models.EventFormCreateRequest) (*models.EventForm, error) {
	if err := req.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	fields, err := marshalFields(req.Fields)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	result, err := r.db.Exec(
		"INSERT INTO event_forms (title, description, fields, published, created_at, updated_at) VALUES (?, ?, ?, 0, ?, ?)",
		req.Title, req.Description, fields, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("failed to create form: %w", err)
	}

	return &models.EventForm{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Fields:      req.Fields,
		Published:   false,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetByID retrieves a form by id, returning (nil, nil) when it does not exist
func (r *FormRepository) GetByID(id int64) (*models.EventForm, error) {
	query := "SELECT " + formColumns + " FROM event_forms WHERE id = ?"

	form, err := scanForm(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get form: %w", err)
	}

	return form, nil
}

// GetAll retrieves all forms, newest first
func (r *FormRepository) GetAll() ([]*models.EventForm, error) {
	rows, err := r.db.Query("SELECT " + formColumns + " FROM event_forms ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, fmt.Errorf("failed to list forms: %w", err)
	}
	defer rows.Close()

	forms := []*models.EventForm{}
	for rows.Next() {
		form, err := scanForm(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan form row: %w", err)
		}
		forms = append(forms, form)
	}

	return forms, rows.Err()
}

// Update replaces a form's definition. Returns false when the form does not exist.
func (r *FormRepository) Update(id int64, req *models.EventFormUpdateRequest) (bool, error) {
	if err := req.Validate(); err != nil {
		return false, fmt.Errorf("%w: %s", models.ErrInvalidInput, err.Error())
	}

	fields, err := marshalFields(req.Fields)
	if err != nil {
		return false, err
	}

	result, err := r.db.Exec(
		"UPDATE event_forms SET title = ?, description = ?, fields = ?, updated_at = ? WHERE id = ?",
		req.Title, req.Description, fields, time.Now().UTC(), id,
	)
	if err != nil {
		return false, fmt.Errorf("failed to update form: %w", err)
	}

	return rowsWereAffected(result)
}

// Delete removes a form. Returns false when nothing was deleted.
func (r *FormRepository) Delete(id int64) (bool, error) {
	result, err := r.db.Exec("DELETE FROM event_forms WHERE id = ?", id)
	if err != nil {
		return false, fmt.Errorf("failed to delete form: %w", err)
	}

	return rowsWereAffected(result)
}

// Publish makes this form the published one, unpublishing any other form in
// the same transaction so at most one form is ever published. Returns false
// when the form does not exist.
func (r *FormRepository) Publish(id int64) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, fmt.Errorf("failed to start publish transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now().UTC()

	if _, err := tx.Exec("UPDATE event_forms SET published = 0, updated_at = ? WHERE published = 1 AND id != ?", now, id); err != nil {
		return false, fmt.Errorf("failed to unpublish current form: %w", err)
	}

	result, err := tx.Exec("UPDATE event_forms SET published = 1, updated_at = ? WHERE id = ?", now, id)
	if err != nil {
		return false, fmt.Errorf("failed to publish form: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to publish form: %w", err)
	}
	if affected == 0 {
		return false, nil
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit publish: %w", err)
	}

	return true, nil
}

// Unpublish clears the published flag unconditionally. Returns false when the
// form does not exist.
func (r *FormRepository) Unpublish(id int64) (bool, error) {
	result, err := r.db.Exec("UPDATE event_forms SET published = 0, updated_at = ? WHERE id = ?", time.Now().UTC(), id)
	if err != nil {
		return false, fmt.Errorf("failed to unpublish form: %w", err)
	}

	return rowsWereAffected(result)
}

// GetPublished retrieves the single published form, (nil, nil) when none is published
func (r *FormRepository) GetPublished() (*models.EventForm, error) {
	query := "SELECT " + formColumns + " FROM event_forms WHERE published = 1 LIMIT 1"

	form, err := scanForm(r.db.QueryRow(query))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get published form: %w", err)
	}

	return form, nil
}

func marshalFields(fields []models.FormField) (string, error) {
	if fields == nil {
		fields = []models.FormField{}
	}

	data, err := json.Marshal(fields)
	if err != nil {
		return "", fmt.Errorf("failed to encode form fields: %w", err)
	}

	return string(data), nil
}

func scanForm(row rowScanner) (*models.EventForm, error) {
	form := &models.EventForm{}
	var fields string

	err := row.Scan(
		&form.ID,
		&form.Title,
		&form.Description,
		&fields,
		&form.Published,
		&form.CreatedAt,
		&form.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(fields), &form.Fields); err != nil {
		return nil, fmt.Errorf("failed to decode form fields: %w", err)
	}

	return form, nil
}

func rowsWereAffected(result sql.Result) (bool, error) {
	affected, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read affected rows: %w", err)
	}
	return affected > 0, nil
}
