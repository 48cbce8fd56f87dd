package participant

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/group"
)

// Common errors
var (
	ErrParticipantNotFound = errors.New("participant not found")
	ErrGroupFull           = errors.New("maximum 4 participants allowed per group")
	ErrNameTaken           = errors.New("a participant with this name already exists in the group")
	ErrHasActivity         = errors.New("cannot remove a participant who appears in expenses")
)

// Service handles participant business logic
type Service struct {
	repo     *Repository
	groupSvc *group.Service
}

// NewService creates a new participant service
func NewService(repo *Repository, groupSvc *group.Service) *Service {
	return &Service{repo: repo, groupSvc: groupSvc}
}

// Create adds a participant to a group the user owns. The group limit and the
// name-uniqueness rule are enforced here; a display color is assigned from the
// palette when the request does not bring one.
func (s *Service) Create(ctx context.Context, groupID, userID uuid.UUID, req *CreateParticipantRequest) (*Participant, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, err
	}

	count, err := s.repo.CountByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	if count >= MaxPerGroup {
		return nil, ErrGroupFull
	}

	name := strings.TrimSpace(req.Name)
	existing, err := s.repo.GetByName(ctx, groupID, name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrNameTaken
	}

	color := ColorForIndex(count)
	if req.Color != nil && *req.Color != "" {
		color = *req.Color
	}

	return s.repo.Create(ctx, groupID, name, color, req.AvatarURL)
}

// ListByGroup retrieves all participants of a group the user owns
func (s *Service) ListByGroup(ctx context.Context, groupID, userID uuid.UUID) ([]*Participant, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, err
	}
	return s.repo.ListByGroup(ctx, groupID)
}

// Get retrieves one participant of a group the user owns
func (s *Service) Get(ctx context.Context, groupID, participantID, userID uuid.UUID) (*Participant, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, err
	}

	p, err := s.repo.GetByID(ctx, participantID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.GroupID != groupID {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

// Update modifies a participant of a group the user owns
func (s *Service) Update(ctx context.Context, groupID, participantID, userID uuid.UUID, req *UpdateParticipantRequest) (*Participant, error) {
	if _, err := s.Get(ctx, groupID, participantID, userID); err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		existing, err := s.repo.GetByName(ctx, groupID, name)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != participantID {
			return nil, ErrNameTaken
		}
		req.Name = &name
	}

	p, err := s.repo.Update(ctx, participantID, req)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrParticipantNotFound
	}
	return p, nil
}

// Delete removes a participant, provided they appear in no expense.
// Removing a paying or sharing participant would break the conservation of
// the group's balances.
func (s *Service) Delete(ctx context.Context, groupID, participantID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, groupID, participantID, userID); err != nil {
		return err
	}

	active, err := s.repo.HasExpenseActivity(ctx, participantID)
	if err != nil {
		return err
	}
	if active {
		return ErrHasActivity
	}

	return s.repo.Delete(ctx, participantID)
}
