package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

var ErrInvalidGoogleToken = errors.New("invalid Google ID token")

// GoogleUser is the profile extracted from a verified Google ID token.
type GoogleUser struct {
	GoogleID      string
	Email         string
	Name          string
	Picture       string
	EmailVerified bool
}

// GoogleVerifier verifies client-side Google OAuth ID tokens against
// Google's tokeninfo endpoint.
type GoogleVerifier struct {
	clientID   string
	endpoint   string
	httpClient *http.Client
}

// NewGoogleVerifier creates a verifier bound to the given OAuth client ID.
func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		endpoint:   tokenInfoURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// tokenInfo is the subset of Google's tokeninfo response we validate.
// All fields come back as strings.
type tokenInfo struct {
	Aud           string `json:"aud"`
	Iss           string `json:"iss"`
	Sub           string `json:"sub"`
	Email         string `json:"email"`
	EmailVerified string `json:"email_verified"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
	Exp           string `json:"exp"`
}

// VerifyIDToken checks the token with Google and returns the user profile.
func (v *GoogleVerifier) VerifyIDToken(ctx context.Context, idToken string) (*GoogleUser, error) {
	if idToken == "" {
		return nil, ErrInvalidGoogleToken
	}

	reqURL := v.endpoint + "?id_token=" + url.QueryEscape(idToken)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build tokeninfo request: %w", err)
	}

	resp, err := v.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tokeninfo request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrInvalidGoogleToken
	}

	var info tokenInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("failed to decode tokeninfo response: %w", err)
	}

	if info.Aud != v.clientID {
		return nil, fmt.Errorf("%w: audience mismatch", ErrInvalidGoogleToken)
	}
	if info.Iss != "accounts.google.com" && info.Iss != "https://accounts.google.com" {
		return nil, fmt.Errorf("%w: wrong issuer", ErrInvalidGoogleToken)
	}
	if exp, err := strconv.ParseInt(info.Exp, 10, 64); err != nil || time.Now().Unix() >= exp {
		return nil, fmt.Errorf("%w: token expired", ErrInvalidGoogleToken)
	}

	return &GoogleUser{
		GoogleID:      info.Sub,
		Email:         info.Email,
		Name:          info.Name,
		Picture:       info.Picture,
		EmailVerified: info.EmailVerified == "true",
	}, nil
}
