package expense

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/expense/split"
	"github.com/splitmint/splitmint/internal/group"
	"github.com/splitmint/splitmint/internal/participant"
)

// Common errors
var (
	ErrExpenseNotFound       = errors.New("expense not found")
	ErrPayerNotInGroup       = errors.New("payer not found in this group")
	ErrParticipantNotInGroup = errors.New("split participant not found in this group")
	ErrFutureDate            = errors.New("expense date cannot be in the future")
	ErrBadDate               = errors.New("expense date must be in YYYY-MM-DD format")
)

// Service handles expense business logic
type Service struct {
	repo            *Repository
	participantRepo *participant.Repository
	groupSvc        *group.Service
	splitFactory    *split.Factory
}

// NewService creates a new expense service with dependencies injected
func NewService(repo *Repository, participantRepo *participant.Repository, groupSvc *group.Service, splitFactory *split.Factory) *Service {
	return &Service{
		repo:            repo,
		participantRepo: participantRepo,
		groupSvc:        groupSvc,
		splitFactory:    splitFactory,
	}
}

// Create records a new expense. The split shares are computed by the policy's
// strategy before anything is written; on any validation failure nothing is
// persisted. Payer and every split participant must belong to the group —
// the allocator itself never sees an id it should not accept.
func (s *Service) Create(ctx context.Context, groupID, userID uuid.UUID, req *CreateExpenseRequest) (*ExpenseWithSplits, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, err
	}

	expenseDate, err := time.Parse("2006-01-02", req.ExpenseDate)
	if err != nil {
		return nil, ErrBadDate
	}
	if expenseDate.After(time.Now()) {
		return nil, ErrFutureDate
	}

	strategy, err := s.splitFactory.CreateFromString(req.SplitPolicy)
	if err != nil {
		return nil, err
	}

	members, err := s.participantRepo.ListByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}
	memberIDs := make(map[uuid.UUID]bool, len(members))
	for _, m := range members {
		memberIDs[m.ID] = true
	}

	if !memberIDs[req.PayerID] {
		return nil, ErrPayerNotInGroup
	}

	entries := make([]split.Entry, len(req.Splits))
	for i, line := range req.Splits {
		if !memberIDs[line.ParticipantID] {
			return nil, ErrParticipantNotInGroup
		}
		entries[i] = line.ToEntry()
	}

	shares, err := strategy.Allocate(req.Amount, entries)
	if err != nil {
		return nil, err
	}

	e := &Expense{
		GroupID:     groupID,
		PayerID:     req.PayerID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		ExpenseDate: expenseDate,
		SplitPolicy: strategy.Policy(),
	}

	return s.repo.CreateWithSplits(ctx, e, shares)
}

// Get retrieves an expense with its splits, verifying group ownership
func (s *Service) Get(ctx context.Context, expenseID, userID uuid.UUID) (*ExpenseWithSplits, error) {
	e, err := s.repo.GetByID(ctx, expenseID)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}

	if _, err := s.groupSvc.GetOwned(ctx, e.GroupID, userID); err != nil {
		return nil, err
	}

	splits, err := s.repo.GetSplitsByExpenseID(ctx, expenseID)
	if err != nil {
		return nil, err
	}

	return &ExpenseWithSplits{Expense: e, Splits: splits}, nil
}

// List retrieves a filtered, paginated list of a group's expenses
func (s *Service) List(ctx context.Context, groupID, userID uuid.UUID, filter *ListFilter) ([]*Expense, int, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PerPage < 1 || filter.PerPage > 100 {
		filter.PerPage = 20
	}

	return s.repo.ListByGroup(ctx, groupID, filter)
}

// Update modifies an expense's description or category. Amount, payer and
// splits are immutable; recreating the expense is the only way to change them.
func (s *Service) Update(ctx context.Context, expenseID, userID uuid.UUID, req *UpdateExpenseRequest) (*Expense, error) {
	if _, err := s.Get(ctx, expenseID, userID); err != nil {
		return nil, err
	}

	e, err := s.repo.Update(ctx, expenseID, req)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, ErrExpenseNotFound
	}
	return e, nil
}

// Delete removes an expense and its splits
func (s *Service) Delete(ctx context.Context, expenseID, userID uuid.UUID) error {
	if _, err := s.Get(ctx, expenseID, userID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, expenseID)
}
