package group

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// Common errors
var (
	ErrGroupNotFound = errors.New("group not found")
	ErrNotAuthorized = errors.New("not authorized to access this group")
)

// Service handles group business logic
type Service struct {
	repo *Repository
}

// NewService creates a new group service
func NewService(repo *Repository) *Service {
	return &Service{repo: repo}
}

// Create creates a new group owned by the given user
func (s *Service) Create(ctx context.Context, ownerID uuid.UUID, req *CreateGroupRequest) (*Group, error) {
	return s.repo.Create(ctx, ownerID, req)
}

// GetOwned retrieves a group and verifies the requesting user owns it.
// Every group-scoped endpoint goes through this check.
func (s *Service) GetOwned(ctx context.Context, id, userID uuid.UUID) (*Group, error) {
	group, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if group == nil {
		return nil, ErrGroupNotFound
	}
	if group.OwnerID != userID {
		return nil, ErrNotAuthorized
	}
	return group, nil
}

// ListByOwner retrieves all groups owned by a user with their stats
func (s *Service) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*GroupWithStats, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Update modifies a group the user owns
func (s *Service) Update(ctx context.Context, id, userID uuid.UUID, req *UpdateGroupRequest) (*Group, error) {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return nil, err
	}
	return s.repo.Update(ctx, id, req)
}

// Delete removes a group the user owns along with its expenses and splits
func (s *Service) Delete(ctx context.Context, id, userID uuid.UUID) error {
	if _, err := s.GetOwned(ctx, id, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}
