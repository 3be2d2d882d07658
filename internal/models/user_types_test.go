package models

import "testing"

func TestPasswordSetAndMatches(t *testing.T) {
	var p Password
	if err := p.Set("password123"); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	if p.Hash == "password123" {
		t.Fatal("stored hash equals the plaintext password")
	}
	if p.Hash == "" {
		t.Fatal("Set produced an empty hash")
	}

	match, err := p.Matches("password123")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if !match {
		t.Error("correct password did not match")
	}

	match, err = p.Matches("wrong-password")
	if err != nil {
		t.Fatalf("Matches failed: %v", err)
	}
	if match {
		t.Error("wrong password matched")
	}
}
