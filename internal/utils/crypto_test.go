package utils

import (
	"encoding/hex"
	"strings"
	"testing"
)

func TestHashAndVerifyPassword(t *testing.T) {
	hash, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$v=19$") {
		t.Errorf("unexpected hash format: %s", hash)
	}

	ok, err := VerifyPassword("correct-horse", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error: %v", err)
	}
	if !ok {
		t.Error("correct password rejected")
	}

	ok, err = VerifyPassword("wrong-password", hash)
	if err != nil {
		t.Fatalf("VerifyPassword() error: %v", err)
	}
	if ok {
		t.Error("wrong password accepted")
	}
}

func TestHashPasswordProducesUniqueSalts(t *testing.T) {
	first, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	second, err := HashPassword("correct-horse")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}

	if first == second {
		t.Error("two hashes of the same password must differ")
	}
}

func TestVerifyPasswordRejectsMalformedHash(t *testing.T) {
	tests := []string{
		"",
		"plain-text",
		"$argon2id$v=19$m=65536,t=3,p=2$only-five-parts",
		"$bcrypt$v=19$m=65536,t=3,p=2$c2FsdA$aGFzaA",
	}

	for _, hash := range tests {
		if _, err := VerifyPassword("password", hash); err == nil {
			t.Errorf("expected error for malformed hash %q", hash)
		}
	}
}

func TestEncryptDecryptMessage(t *testing.T) {
	key, err := hex.DecodeString("000102030405060708090a0b0c0d0e0f101112131415161718191a1b1c1d1e1f")
	if err != nil {
		t.Fatalf("failed to decode key: %v", err)
	}

	sealed, err := EncryptMessage(key, `{"registrationId":"abc-123"}`)
	if err != nil {
		t.Fatalf("EncryptMessage() error: %v", err)
	}

	plaintext, err := DecryptMessage(key, sealed)
	if err != nil {
		t.Fatalf("DecryptMessage() error: %v", err)
	}
	if plaintext != `{"registrationId":"abc-123"}` {
		t.Errorf("round trip produced %q", plaintext)
	}
}

func TestEncryptMessageIsNondeterministic(t *testing.T) {
	key := make([]byte, 32)

	first, err := EncryptMessage(key, "payload")
	if err != nil {
		t.Fatalf("EncryptMessage() error: %v", err)
	}
	second, err := EncryptMessage(key, "payload")
	if err != nil {
		t.Fatalf("EncryptMessage() error: %v", err)
	}

	if first == second {
		t.Error("sealed payloads must use fresh nonces")
	}
}

func TestDecryptMessageRejectsTampering(t *testing.T) {
	key := make([]byte, 32)

	sealed, err := EncryptMessage(key, "payload")
	if err != nil {
		t.Fatalf("EncryptMessage() error: %v", err)
	}

	// Flip the last hex digit.
	tampered := sealed[:len(sealed)-1]
	if strings.HasSuffix(sealed, "0") {
		tampered += "1"
	} else {
		tampered += "0"
	}

	if _, err := DecryptMessage(key, tampered); err == nil {
		t.Error("tampered ciphertext accepted")
	}

	if _, err := DecryptMessage(key, "not-hex"); err == nil {
		t.Error("non-hex input accepted")
	}

	if _, err := DecryptMessage(key, "abcd"); err == nil {
		t.Error("truncated ciphertext accepted")
	}

	wrongKey := make([]byte, 32)
	wrongKey[0] = 1
	if _, err := DecryptMessage(wrongKey, sealed); err == nil {
		t.Error("wrong key accepted")
	}
}
