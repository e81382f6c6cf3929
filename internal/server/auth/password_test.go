package auth

import (
	"errors"
	"testing"

	"ecoscan/internal/common"
)

func TestHashAndCheckPassword(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}
	if hash == "correct horse" {
		t.Fatalf("hash must not equal the plaintext")
	}

	if err := CheckPassword(hash, "correct horse"); err != nil {
		t.Fatalf("CheckPassword error: %v", err)
	}
}

func TestCheckPassword_Mismatch(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret-one")
	if err != nil {
		t.Fatalf("HashPassword error: %v", err)
	}

	err = CheckPassword(hash, "secret-two")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}
}

func TestCheckPassword_GarbageHash(t *testing.T) {
	t.Parallel()

	err := CheckPassword("not-a-bcrypt-hash", "anything")
	if !errors.Is(err, common.ErrorUnauthorized) {
		t.Fatalf("expected common.ErrorUnauthorized, got %v", err)
	}
}
