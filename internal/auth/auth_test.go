package auth

import (
	"errors"
	"testing"
	"time"
)

func TestPasswordHashAndCheck(t *testing.T) {
	hash, err := HashPassword("correct horse battery staple")
	if err != nil {
		t.Fatalf("HashPassword failed: %v", err)
	}
	if hash == "correct horse battery staple" {
		t.Error("Expected hash to differ from plaintext")
	}

	if err := CheckPassword(hash, "correct horse battery staple"); err != nil {
		t.Errorf("Expected matching password to verify, got %v", err)
	}
	if err := CheckPassword(hash, "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("Expected ErrInvalidCredentials, got %v", err)
	}
}

func TestTokenIssueAndVerify(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)

	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue failed: %v", err)
	}

	userID, err := manager.Verify(token)
	if err != nil {
		t.Fatalf("Verify failed: %v", err)
	}
	if userID != "user-1" {
		t.Errorf("Expected user-1, got %s", userID)
	}
}

func TestTokenExpired(t *testing.T) {
	manager := NewTokenManager("test-secret", -time.Minute)

	token, err := manager.Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := manager.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for expired token, got %v", err)
	}
}

func TestTokenWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a", time.Hour).Issue("user-1")
	if err != nil {
		t.Fatal(err)
	}

	if _, err := NewTokenManager("secret-b", time.Hour).Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken for wrong secret, got %v", err)
	}
}

func TestTokenGarbage(t *testing.T) {
	manager := NewTokenManager("test-secret", time.Hour)
	if _, err := manager.Verify("not.a.token"); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Expected ErrInvalidToken, got %v", err)
	}
}
