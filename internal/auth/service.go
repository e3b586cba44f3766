package auth

import (
	"context"
	"errors"

	"github.com/splitbuddy/splitbuddy/internal/user"
)

var ErrUserNotFound = errors.New("user not found")

// Service handles the Google login flow and session issuance
type Service struct {
	users    *user.Repository
	jwt      *JWTManager
	verifier *GoogleVerifier
}

// NewService creates a new auth service
func NewService(users *user.Repository, jwt *JWTManager, verifier *GoogleVerifier) *Service {
	return &Service{users: users, jwt: jwt, verifier: verifier}
}

// Login verifies a Google ID token, gets or creates the matching user, and
// issues a backend session token
func (s *Service) Login(ctx context.Context, idToken string) (string, *user.User, error) {
	profile, err := s.verifier.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", nil, err
	}

	u, err := s.getOrCreateUser(ctx, profile)
	if err != nil {
		return "", nil, err
	}

	token, err := s.jwt.Generate(u)
	if err != nil {
		return "", nil, err
	}

	return token, u, nil
}

// Refresh issues a fresh session token for an already-authenticated user
func (s *Service) Refresh(ctx context.Context, userID string) (string, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}
	if u == nil {
		return "", ErrUserNotFound
	}
	return s.jwt.Generate(u)
}

// GetUser loads the authenticated user's profile
func (s *Service) GetUser(ctx context.Context, userID string) (*user.User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUserNotFound
	}
	return u, nil
}

// TokenDuration exposes how long issued tokens last, for response bodies
func (s *Service) TokenDuration() int {
	return int(s.jwt.TokenDuration().Seconds())
}

// getOrCreateUser finds the user by email, keeping the stored name in sync
// with the Google profile, and creates the user on first login.
func (s *Service) getOrCreateUser(ctx context.Context, profile *GoogleUser) (*user.User, error) {
	name := profile.Name
	if name == "" {
		name = "Unknown"
	}

	existing, err := s.users.GetByEmail(ctx, profile.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.Name != name {
			updated, err := s.users.UpdateName(ctx, existing.ID, name)
			if err != nil {
				return nil, err
			}
			if updated != nil {
				return updated, nil
			}
		}
		return existing, nil
	}

	return s.users.Create(ctx, name, profile.Email)
}
