package auth

import (
	"testing"
	"time"
)

func TestGenerateAndValidate(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Generate(42, "admin")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if token == "" {
		t.Fatal("Generate returned an empty token")
	}

	claims, err := tm.Validate(token)
	if err != nil {
		t.Fatalf("Validate failed: %v", err)
	}
	if claims.UserID != 42 {
		t.Errorf("UserID = %d, want 42", claims.UserID)
	}
	if claims.Role != "admin" {
		t.Errorf("Role = %q, want admin", claims.Role)
	}
}

func TestValidateExpiredToken(t *testing.T) {
	tm := NewTokenManager("test-secret")
	tm.ttl = -time.Minute // already expired at issuance

	token, err := tm.Generate(7, "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := tm.Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate on expired token: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Generate(7, "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if _, err := NewTokenManager("secret-b").Validate(token); err != ErrInvalidToken {
		t.Errorf("Validate with wrong secret: err = %v, want ErrInvalidToken", err)
	}
}

func TestValidateGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	for _, bad := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := tm.Validate(bad); err != ErrInvalidToken {
			t.Errorf("Validate(%q): err = %v, want ErrInvalidToken", bad, err)
		}
	}
}

func TestTamperedTokenFails(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Generate(7, "user")
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	// Flip a character in the signature part.
	tampered := token[:len(token)-2] + "xx"
	if _, err := tm.Validate(tampered); err != ErrInvalidToken {
		t.Errorf("Validate on tampered token: err = %v, want ErrInvalidToken", err)
	}
}
