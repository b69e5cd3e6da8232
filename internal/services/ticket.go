package services

import (
	"bytes"
	"encoding/json"
	"fmt"

	"event-registration-backend/internal/models"
	"event-registration-backend/internal/repositories"
	"event-registration-backend/internal/utils"

	"github.com/yeqown/go-qrcode"
)

// Scan messages surfaced directly by the scanning UI. Each outcome keeps a
// distinct, short, human-readable string.
const (
	MessageScanAccepted     = "scan accepted"
	MessageTicketNotFound   = "ticket not found"
	MessageTicketRevoked    = "ticket revoked"
	MessageScanLimitReached = "scan limit reached"
	MessageInvalidCode      = "invalid ticket code"
)

// RegistrationStore interface for registration data operations
type RegistrationStore interface {
	Create(req *models.RegistrationCreateRequest) (*models.Registration, error)
	GetByID(id string) (*models.Registration, error)
	GetAll() ([]*models.Registration, error)
	GetByFormID(formID int64) ([]*models.Registration, error)
	GetFormStats(formID int64) (*models.RegistrationStats, error)
	Stats() (*models.RegistrationStats, error)
	SetQRCode(id, data string) (bool, error)
	Revoke(id string) (bool, error)
	Delete(id string) (bool, error)
	RecordScan(id string) (repositories.ScanOutcome, *models.Registration, error)
}

// TicketService handles QR issuance and entry verification
type TicketService struct {
	store RegistrationStore
	qrKey []byte
}

// NewTicketService creates a new ticket service. qrKey is the AES key used to
// seal QR payloads.
func NewTicketService(store RegistrationStore, qrKey []byte) *TicketService {
	return &TicketService{store: store, qrKey: qrKey}
}

// qrPayload is the plaintext embedded in a ticket QR code before sealing
type qrPayload struct {
	RegistrationID string `json:"registrationId"`
}

// CreateRegistration creates a new registration with no QR issued yet
func (s *TicketService) CreateRegistration(req *models.RegistrationCreateRequest) (*models.Registration, error) {
	return s.store.Create(req)
}

// GetRegistration retrieves a registration, (nil, nil) when it does not exist
func (s *TicketService) GetRegistration(id string) (*models.Registration, error) {
	return s.store.GetByID(id)
}

// ListRegistrations retrieves all registrations, newest first
func (s *TicketService) ListRegistrations() ([]*models.Registration, error) {
	return s.store.GetAll()
}

// ListRegistrationsByForm retrieves a form's registrations, including legacy
// rows that predate forms
func (s *TicketService) ListRegistrationsByForm(formID int64) ([]*models.Registration, error) {
	return s.store.GetByFormID(formID)
}

// GenerateQRCode issues the QR payload for a registration and binds it. The
// payload is the registration id sealed with AES-GCM so codes cannot be
// forged from a guessed id. Returns ok=false without error when the
// registration is missing or already has a QR code; the bound payload never
// changes after the first successful call.
func (s *TicketService) GenerateQRCode(id string) (string, bool, error) {
	raw, err := json.Marshal(qrPayload{RegistrationID: id})
	if err != nil {
		return "", false, fmt.Errorf("failed to encode QR payload: %w", err)
	}

	payload, err := utils.EncryptMessage(s.qrKey, string(raw))
	if err != nil {
		return "", false, fmt.Errorf("failed to seal QR payload: %w", err)
	}

	ok, err := s.store.SetQRCode(id, payload)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, nil
	}

	return payload, true, nil
}

// VerifyAndScan unseals a scanned code and records the entry it represents
func (s *TicketService) VerifyAndScan(code string) (*models.ScanResult, error) {
	plaintext, err := utils.DecryptMessage(s.qrKey, code)
	if err != nil {
		return &models.ScanResult{Valid: false, Message: MessageInvalidCode}, nil
	}

	var payload qrPayload
	if err := json.Unmarshal([]byte(plaintext), &payload); err != nil || payload.RegistrationID == "" {
		return &models.ScanResult{Valid: false, Message: MessageInvalidCode}, nil
	}

	return s.VerifyAndScanID(payload.RegistrationID)
}

// VerifyAndScanID records one entry against a ticket. Checks run in a fixed
// order: existence, revocation, scan limit; revocation always wins over
// limit-exhaustion messaging, and the limit is checked before any state
// changes. On the scan that exhausts the budget the ticket moves to
// checked-in; earlier scans of a group ticket leave it active.
func (s *TicketService) VerifyAndScanID(id string) (*models.ScanResult, error) {
	outcome, registration, err := s.store.RecordScan(id)
	if err != nil {
		return nil, err
	}

	switch outcome {
	case ScanNotFound:
		return &models.ScanResult{Valid: false, Message: MessageTicketNotFound}, nil
	case ScanRevoked:
		return &models.ScanResult{Valid: false, Registration: registration, Message: MessageTicketRevoked}, nil
	case ScanLimitReached:
		return &models.ScanResult{Valid: false, Registration: registration, Message: MessageScanLimitReached}, nil
	default:
		return &models.ScanResult{Valid: true, Registration: registration, Message: MessageScanAccepted}, nil
	}
}

// Outcome aliases keep the switch above readable without importing the
// repository package at every call site.
const (
	ScanAccepted     = repositories.ScanAccepted
	ScanNotFound     = repositories.ScanNotFound
	ScanRevoked      = repositories.ScanRevoked
	ScanLimitReached = repositories.ScanLimitReached
)

// RevokeQRCode permanently invalidates a ticket. The QR binding stays in
// place; every later scan fails with the revoked message regardless of the
// remaining scan budget. Returns false when the registration does not exist.
func (s *TicketService) RevokeQRCode(id string) (bool, error) {
	return s.store.Revoke(id)
}

// DeleteRegistration removes a registration. Returns false when nothing was deleted.
func (s *TicketService) DeleteRegistration(id string) (bool, error) {
	return s.store.Delete(id)
}

// Stats aggregates ticket metrics over all registrations
func (s *TicketService) Stats() (*models.RegistrationStats, error) {
	return s.store.Stats()
}

// FormStats aggregates ticket metrics for one form, legacy rows included
func (s *TicketService) FormStats(formID int64) (*models.RegistrationStats, error) {
	return s.store.GetFormStats(formID)
}

// QRCodeImage renders the stored QR payload as an image. Returns (nil, nil)
// when the registration does not exist or has no QR code issued.
func (s *TicketService) QRCodeImage(id string) ([]byte, error) {
	registration, err := s.store.GetByID(id)
	if err != nil {
		return nil, err
	}
	if registration == nil || !registration.HasQR {
		return nil, nil
	}

	qrc, err := qrcode.New(registration.QRCodeData)
	if err != nil {
		return nil, fmt.Errorf("failed to build QR code: %w", err)
	}

	var buf bytes.Buffer
	if err := qrc.SaveTo(&buf); err != nil {
		return nil, fmt.Errorf("failed to render QR code: %w", err)
	}

	return buf.Bytes(), nil
}
