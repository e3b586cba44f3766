package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/splitbuddy/splitbuddy/internal/user"
)

var testUser = &user.User{
	ID:    "6f1f9a2e-8f5b-4a77-9c3d-2f8f0b1d4c55",
	Name:  "Alice",
	Email: "alice@example.com",
}

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(testUser)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	claims, err := m.Validate(token)
	if err != nil {
		t.Fatalf("Validate() error: %v", err)
	}
	if claims.UserID != testUser.ID {
		t.Errorf("UserID = %s, want %s", claims.UserID, testUser.ID)
	}
	if claims.Email != testUser.Email {
		t.Errorf("Email = %s, want %s", claims.Email, testUser.Email)
	}
	if claims.Name != testUser.Name {
		t.Errorf("Name = %s, want %s", claims.Name, testUser.Name)
	}
	if claims.Issuer != issuer {
		t.Errorf("Issuer = %s, want %s", claims.Issuer, issuer)
	}
}

func TestJWTManagerRejectsExpiredToken(t *testing.T) {
	m := NewJWTManager("test-secret", -time.Minute)

	token, err := m.Generate(testUser)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate(expired) error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManagerRejectsWrongSecret(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)
	other := NewJWTManager("different-secret", time.Hour)

	token, err := m.Generate(testUser)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	if _, err := other.Validate(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("Validate with wrong secret error = %v, want %v", err, ErrInvalidToken)
	}
}

func TestJWTManagerRejectsGarbage(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	for _, token := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := m.Validate(token); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("Validate(%q) error = %v, want %v", token, err, ErrInvalidToken)
		}
	}
}

func TestValidateTokenReturnsIdentity(t *testing.T) {
	m := NewJWTManager("test-secret", time.Hour)

	token, err := m.Generate(testUser)
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}

	identity, err := m.ValidateToken(token)
	if err != nil {
		t.Fatalf("ValidateToken() error: %v", err)
	}
	if identity.UserID != testUser.ID || identity.Email != testUser.Email || identity.Name != testUser.Name {
		t.Errorf("ValidateToken() = %+v, want fields from %+v", identity, testUser)
	}
}
