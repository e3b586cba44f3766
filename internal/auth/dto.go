package auth

import "github.com/splitbuddy/splitbuddy/internal/user"

// GoogleAuthRequest carries the Google ID token obtained by the client
type GoogleAuthRequest struct {
	IDToken string `json:"id_token" validate:"required"`
}

// AuthResponse is returned after a successful login or refresh
type AuthResponse struct {
	AccessToken string             `json:"access_token"`
	TokenType   string             `json:"token_type"`
	ExpiresIn   int                `json:"expires_in"`
	User        *user.UserResponse `json:"user,omitempty"`
}
