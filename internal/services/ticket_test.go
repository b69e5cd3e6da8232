package services

import (
	"encoding/hex"
	"sync"
	"testing"

	"event-registration-backend/internal/database"
	"event-registration-backend/internal/models"
	"event-registration-backend/internal/repositories"
)

func setupTicketService(t *testing.T) (*TicketService, *repositories.RegistrationRepository) {
	t.Helper()

	db, err := database.NewConnection(database.Config{Path: ":memory:"})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations(); err != nil {
		t.Fatalf("failed to run migrations: %v", err)
	}

	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("failed to decode test key: %v", err)
	}

	repo := repositories.NewRegistrationRepository(db.DB)
	return NewTicketService(repo, key), repo
}

func createTicket(t *testing.T, service *TicketService, maxScans int) *models.Registration {
	t.Helper()

	registration, err := service.CreateRegistration(&models.RegistrationCreateRequest{
		Name:      "Jane Doe",
		Email:     "jane@example.com",
		GroupSize: maxScans,
		MaxScans:  maxScans,
	})
	if err != nil {
		t.Fatalf("failed to create registration: %v", err)
	}
	return registration
}

func TestVerifyAndScanGroupTicketLifecycle(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 3)

	for want := 1; want <= 3; want++ {
		result, err := service.VerifyAndScanID(registration.ID)
		if err != nil {
			t.Fatalf("VerifyAndScanID() error: %v", err)
		}
		if !result.Valid {
			t.Fatalf("scan %d: expected valid, got %q", want, result.Message)
		}
		if result.Message != MessageScanAccepted {
			t.Errorf("scan %d: message = %q", want, result.Message)
		}
		if result.Registration.Scans != want {
			t.Errorf("scan %d: scans = %d", want, result.Registration.Scans)
		}
		if want < 3 && result.Registration.Status != models.RegistrationActive {
			t.Errorf("scan %d: status = %q, want active", want, result.Registration.Status)
		}
		if want == 3 && result.Registration.Status != models.RegistrationCheckedIn {
			t.Errorf("final scan: status = %q, want checked-in", result.Registration.Status)
		}
	}

	result, err := service.VerifyAndScanID(registration.ID)
	if err != nil {
		t.Fatalf("VerifyAndScanID() error: %v", err)
	}
	if result.Valid {
		t.Error("fourth scan must be refused")
	}
	if result.Message != MessageScanLimitReached {
		t.Errorf("fourth scan message = %q, want %q", result.Message, MessageScanLimitReached)
	}
	if result.Registration == nil {
		t.Error("limit refusal should still include the registration")
	}
}

func TestVerifyAndScanNotFound(t *testing.T) {
	service, _ := setupTicketService(t)

	result, err := service.VerifyAndScanID("no-such-ticket")
	if err != nil {
		t.Fatalf("VerifyAndScanID() error: %v", err)
	}
	if result.Valid {
		t.Error("unknown ticket must be refused")
	}
	if result.Message != MessageTicketNotFound {
		t.Errorf("message = %q, want %q", result.Message, MessageTicketNotFound)
	}
	if result.Registration != nil {
		t.Error("not-found result must not carry a registration")
	}
}

func TestVerifyAndScanRevokedWinsOverBudget(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 5)

	ok, err := service.RevokeQRCode(registration.ID)
	if err != nil || !ok {
		t.Fatalf("RevokeQRCode() ok=%v err=%v", ok, err)
	}

	result, err := service.VerifyAndScanID(registration.ID)
	if err != nil {
		t.Fatalf("VerifyAndScanID() error: %v", err)
	}
	if result.Valid {
		t.Error("revoked ticket must be refused")
	}
	if result.Message != MessageTicketRevoked {
		t.Errorf("message = %q, want %q", result.Message, MessageTicketRevoked)
	}

	// Revocation is permanent regardless of remaining budget.
	for i := 0; i < 3; i++ {
		result, err := service.VerifyAndScanID(registration.ID)
		if err != nil {
			t.Fatalf("VerifyAndScanID() error: %v", err)
		}
		if result.Valid {
			t.Fatal("revoked ticket became scannable again")
		}
	}
}

func TestRevokeQRCodeMissing(t *testing.T) {
	service, _ := setupTicketService(t)

	ok, err := service.RevokeQRCode("no-such-ticket")
	if err != nil {
		t.Fatalf("RevokeQRCode() error: %v", err)
	}
	if ok {
		t.Error("revoking a missing ticket should report false")
	}
}

func TestGenerateQRCodeIsIdempotent(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 1)

	payload, generated, err := service.GenerateQRCode(registration.ID)
	if err != nil {
		t.Fatalf("GenerateQRCode() error: %v", err)
	}
	if !generated || payload == "" {
		t.Fatalf("expected a generated payload, got generated=%v", generated)
	}

	_, generated, err = service.GenerateQRCode(registration.ID)
	if err != nil {
		t.Fatalf("second GenerateQRCode() error: %v", err)
	}
	if generated {
		t.Error("second GenerateQRCode() must be a no-op")
	}

	fetched, err := service.GetRegistration(registration.ID)
	if err != nil {
		t.Fatalf("GetRegistration() error: %v", err)
	}
	if !fetched.HasQR || fetched.QRCodeData != payload {
		t.Errorf("QR binding changed: hasQR=%v", fetched.HasQR)
	}
}

func TestGenerateQRCodeMissingRegistration(t *testing.T) {
	service, _ := setupTicketService(t)

	_, generated, err := service.GenerateQRCode("no-such-ticket")
	if err != nil {
		t.Fatalf("GenerateQRCode() error: %v", err)
	}
	if generated {
		t.Error("generating for a missing registration should report a no-op")
	}
}

func TestVerifyAndScanRoundTripsSealedCode(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 1)

	payload, generated, err := service.GenerateQRCode(registration.ID)
	if err != nil || !generated {
		t.Fatalf("GenerateQRCode() generated=%v err=%v", generated, err)
	}

	result, err := service.VerifyAndScan(payload)
	if err != nil {
		t.Fatalf("VerifyAndScan() error: %v", err)
	}
	if !result.Valid {
		t.Fatalf("expected valid scan, got %q", result.Message)
	}
	if result.Registration.ID != registration.ID {
		t.Errorf("scanned wrong registration: %s", result.Registration.ID)
	}
}

func TestVerifyAndScanRejectsGarbageCode(t *testing.T) {
	service, _ := setupTicketService(t)

	for _, code := range []string{"", "zzzz", "deadbeef"} {
		result, err := service.VerifyAndScan(code)
		if err != nil {
			t.Fatalf("VerifyAndScan(%q) error: %v", code, err)
		}
		if result.Valid {
			t.Errorf("VerifyAndScan(%q) accepted garbage", code)
		}
		if result.Message != MessageInvalidCode {
			t.Errorf("VerifyAndScan(%q) message = %q", code, result.Message)
		}
	}
}

func TestConcurrentScansNeverExceedLimit(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 3)

	const attempts = 12

	var wg sync.WaitGroup
	results := make([]*models.ScanResult, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			result, err := service.VerifyAndScanID(registration.ID)
			if err != nil {
				t.Errorf("VerifyAndScanID() error: %v", err)
				return
			}
			results[i] = result
		}(i)
	}
	wg.Wait()

	accepted := 0
	for _, result := range results {
		if result != nil && result.Valid {
			accepted++
		}
	}
	if accepted != 3 {
		t.Errorf("accepted %d scans, want exactly 3", accepted)
	}

	final, err := service.GetRegistration(registration.ID)
	if err != nil {
		t.Fatalf("GetRegistration() error: %v", err)
	}
	if final.Scans > final.MaxScans {
		t.Errorf("scans %d exceeded max %d", final.Scans, final.MaxScans)
	}
	if final.Status != models.RegistrationCheckedIn {
		t.Errorf("status = %q, want checked-in", final.Status)
	}
}

func TestQRCodeImage(t *testing.T) {
	service, _ := setupTicketService(t)
	registration := createTicket(t, service, 1)

	image, err := service.QRCodeImage(registration.ID)
	if err != nil {
		t.Fatalf("QRCodeImage() error: %v", err)
	}
	if image != nil {
		t.Error("expected no image before a QR code is issued")
	}

	if _, generated, err := service.GenerateQRCode(registration.ID); err != nil || !generated {
		t.Fatalf("GenerateQRCode() generated=%v err=%v", generated, err)
	}

	image, err = service.QRCodeImage(registration.ID)
	if err != nil {
		t.Fatalf("QRCodeImage() error: %v", err)
	}
	if len(image) == 0 {
		t.Error("expected rendered image bytes")
	}
}
