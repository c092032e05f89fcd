package auth

import (
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func TestCheckPassword_PlainSecret(t *testing.T) {
	if !CheckPassword("sommer2026", "sommer2026") {
		t.Error("matching plain secret must verify")
	}
	if CheckPassword("sommer2026", "winter2026") {
		t.Error("mismatched candidate must not verify")
	}
}

func TestCheckPassword_BcryptSecret(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("sommer2026"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("failed to generate hash: %v", err)
	}

	if !CheckPassword(string(hash), "sommer2026") {
		t.Error("correct password must verify against a bcrypt secret")
	}
	if CheckPassword(string(hash), "winter2026") {
		t.Error("wrong password must not verify against a bcrypt secret")
	}
}

func TestCheckPassword_EmptySecretRejectsEverything(t *testing.T) {
	if CheckPassword("", "") {
		t.Error("an unset secret must never verify, not even an empty candidate")
	}
}
