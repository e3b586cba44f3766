package group

import (
	"context"
	"errors"
)

// Common errors
var (
	ErrGroupNotFound      = errors.New("group not found")
	ErrMembershipNotFound = errors.New("group membership not found")
	ErrAlreadyMember      = errors.New("user is already a member of this group")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service with repository dependency injected
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group
func (s *Service) Create(ctx context.Context, req *CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, req.Name)
}

// GetByID retrieves a group by its ID
func (s *Service) GetByID(ctx context.Context, id string) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	return group, nil
}

// ListMembers returns all members of a group with user details
func (s *Service) ListMembers(ctx context.Context, groupID string) ([]*Member, error) {
	if _, err := s.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.GetMembers(ctx, groupID)
}

// ListBills returns all bills in a group with their totals
func (s *Service) ListBills(ctx context.Context, groupID string) ([]*BillSummary, error) {
	if _, err := s.GetByID(ctx, groupID); err != nil {
		return nil, err
	}
	return s.repo.GetBills(ctx, groupID)
}

// AddMember adds a user to a group
func (s *Service) AddMember(ctx context.Context, req *AddMemberRequest) (*Membership, error) {
	if _, err := s.GetByID(ctx, req.GroupID); err != nil {
		return nil, err
	}

	exists, err := s.repo.HasMember(ctx, req.GroupID, req.UserID)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrAlreadyMember
	}

	return s.repo.AddMember(ctx, req.GroupID, req.UserID)
}

// GetMember retrieves a membership by its ID
func (s *Service) GetMember(ctx context.Context, membershipID string) (*Membership, error) {
	membership, err := s.repo.GetMember(ctx, membershipID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, ErrMembershipNotFound
	}
	return membership, nil
}

// RemoveMember removes a user from a group by membership ID
func (s *Service) RemoveMember(ctx context.Context, membershipID string) error {
	removed, err := s.repo.RemoveMember(ctx, membershipID)
	if err != nil {
		return err
	}
	if !removed {
		return ErrMembershipNotFound
	}
	return nil
}
