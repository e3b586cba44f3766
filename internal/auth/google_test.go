package auth

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"
)

func newTokenInfoServer(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("id_token") == "" {
			t.Error("tokeninfo request missing id_token parameter")
		}
		w.WriteHeader(status)
		fmt.Fprint(w, body)
	}))
}

func futureExp() string {
	return strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10)
}

func TestVerifyIDToken(t *testing.T) {
	body := `{
		"aud": "client-id",
		"iss": "accounts.google.com",
		"sub": "108977",
		"email": "alice@example.com",
		"email_verified": "true",
		"name": "Alice",
		"exp": "` + futureExp() + `"
	}`
	server := newTokenInfoServer(t, http.StatusOK, body)
	defer server.Close()

	v := NewGoogleVerifier("client-id")
	v.endpoint = server.URL

	profile, err := v.VerifyIDToken(context.Background(), "some-token")
	if err != nil {
		t.Fatalf("VerifyIDToken() error: %v", err)
	}
	if profile.GoogleID != "108977" {
		t.Errorf("GoogleID = %s, want 108977", profile.GoogleID)
	}
	if profile.Email != "alice@example.com" {
		t.Errorf("Email = %s, want alice@example.com", profile.Email)
	}
	if !profile.EmailVerified {
		t.Error("EmailVerified = false, want true")
	}
}

func TestVerifyIDTokenRejections(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
	}{
		{
			name:   "google rejects the token",
			status: http.StatusBadRequest,
			body:   `{"error": "invalid_token"}`,
		},
		{
			name:   "audience mismatch",
			status: http.StatusOK,
			body:   `{"aud": "someone-else", "iss": "accounts.google.com", "exp": "` + futureExp() + `"}`,
		},
		{
			name:   "wrong issuer",
			status: http.StatusOK,
			body:   `{"aud": "client-id", "iss": "evil.example.com", "exp": "` + futureExp() + `"}`,
		},
		{
			name:   "expired token",
			status: http.StatusOK,
			body:   `{"aud": "client-id", "iss": "accounts.google.com", "exp": "100"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := newTokenInfoServer(t, tt.status, tt.body)
			defer server.Close()

			v := NewGoogleVerifier("client-id")
			v.endpoint = server.URL

			if _, err := v.VerifyIDToken(context.Background(), "some-token"); !errors.Is(err, ErrInvalidGoogleToken) {
				t.Errorf("VerifyIDToken() error = %v, want %v", err, ErrInvalidGoogleToken)
			}
		})
	}
}

func TestVerifyIDTokenEmptyToken(t *testing.T) {
	v := NewGoogleVerifier("client-id")
	if _, err := v.VerifyIDToken(context.Background(), ""); !errors.Is(err, ErrInvalidGoogleToken) {
		t.Errorf("VerifyIDToken(\"\") error = %v, want %v", err, ErrInvalidGoogleToken)
	}
}
