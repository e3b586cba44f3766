package item

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrItemNotFound  = errors.New("item not found")
	ErrBillNotFound  = errors.New("bill not found")
	ErrNegativePrice = errors.New("price cannot be negative")
	ErrNothingToDo   = errors.New("no valid fields to update")
)

// Service handles item business logic
type Service struct {
	repo *Repository
}

// NewService creates a new item service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create adds an item to a bill
func (s *Service) Create(ctx context.Context, req *CreateItemRequest) (*Item, error) {
	if req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	exists, err := s.repo.BillExists(ctx, req.BillID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, ErrBillNotFound
	}

	return s.repo.Create(ctx, req)
}

// GetByID retrieves an item by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Item, error) {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Update modifies an item's name, price, or tax/tip flag
func (s *Service) Update(ctx context.Context, id string, req *UpdateItemRequest) (*Item, error) {
	if req.Name == nil && req.Price == nil && req.IsTaxOrTip == nil {
		return nil, ErrNothingToDo
	}
	if req.Price != nil && req.Price.IsNegative() {
		return nil, ErrNegativePrice
	}

	item, err := s.repo.Update(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}
	return item, nil
}

// Delete removes an item and all its votes
func (s *Service) Delete(ctx context.Context, id string) error {
	item, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if item == nil {
		return ErrItemNotFound
	}
	return s.repo.Delete(ctx, id)
}

// ToggleVote records whether a user ate an item. A repeated call with the
// same user updates the existing vote instead of stacking a new one.
func (s *Service) ToggleVote(ctx context.Context, itemID string, req *ToggleVoteRequest) (*Vote, error) {
	item, err := s.repo.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, ErrItemNotFound
	}

	ate := true
	if req.Ate != nil {
		ate = *req.Ate
	}

	return s.repo.ToggleVote(ctx, itemID, req.UserID, ate)
}
