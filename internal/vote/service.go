package vote

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrVoteNotFound = errors.New("vote not found")
	ErrItemNotFound = errors.New("item not found")
	ErrDuplicate    = errors.New("user has already voted on this item")
)

// Service handles vote business logic
type Service struct {
	repo *Repository
}

// NewService creates a new vote service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create records a vote
func (s *Service) Create(ctx context.Context, req *CreateVoteRequest) (*Vote, error) {
	exists, err := s.repo.ItemExists(ctx, req.ItemID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrItemNotFound
	}

	duplicate, err := s.repo.Exists(ctx, req.ItemID, req.UserID)
	if err != nil {
		return nil, err
	}
	if duplicate {
		return nil, ErrDuplicate
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves a vote by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Vote, error) {
	vote, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if vote == nil {
		return nil, ErrVoteNotFound
	}
	return vote, nil
}

// Delete removes a vote
func (s *Service) Delete(ctx context.Context, id string) error {
	deleted, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrVoteNotFound
	}
	return nil
}
