package user

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("user with this email already exists")
	ErrEmptySearch       = errors.New("either email or name parameter is required")
)

// Service handles user business logic
type Service struct {
	repo *Repository
}

// NewService creates a new user service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new user
func (s *Service) Create(ctx context.Context, req *CreateUserRequest) (*User, error) {
	existing, err := s.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	return s.repo.Create(ctx, req.Name, req.Email)
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id string) (*User, error) {
	user, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// Search finds users to add to groups by email or name
func (s *Service) Search(ctx context.Context, email, name string) ([]*User, error) {
	if email == "" && name == "" {
		return nil, ErrEmptySearch
	}
	return s.repo.Search(ctx, email, name)
}

// ListGroups returns the groups a user belongs to
func (s *Service) ListGroups(ctx context.Context, userID string) ([]*GroupSummary, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.repo.GetGroups(ctx, userID)
}
