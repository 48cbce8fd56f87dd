package balance

import (
	"context"
	"errors"
	"sort"

	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/group"
)

// ErrParticipantNotFound is returned when a balance is requested for a
// participant outside the group
var ErrParticipantNotFound = errors.New("participant not found in this group")

// Service glues the pure engine to the snapshot repository. Balances are
// recomputed from the snapshot on every call and never cached, so they can
// never go stale relative to the underlying expenses.
type Service struct {
	repo     *Repository
	groupSvc *group.Service
}

// NewService creates a new balance service
func NewService(repo *Repository, groupSvc *group.Service) *Service {
	return &Service{repo: repo, groupSvc: groupSvc}
}

// GroupBalances returns the full balance picture of a group: one balance per
// participant (sorted by net balance, highest first), the informational
// balance matrix, and the settled flag.
func (s *Service) GroupBalances(ctx context.Context, groupID, userID uuid.UUID) ([]*ParticipantBalance, []Edge, bool, error) {
	balances, err := s.compute(ctx, groupID, userID)
	if err != nil {
		return nil, nil, false, err
	}

	matrix := Matrix(balances)
	settled := IsSettled(balances)

	sorted := make([]*ParticipantBalance, len(balances))
	copy(sorted, balances)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].NetBalance.GreaterThan(sorted[j].NetBalance)
	})

	return sorted, matrix, settled, nil
}

// SettlementPlan returns the greedy minimal-transaction settlement plan
func (s *Service) SettlementPlan(ctx context.Context, groupID, userID uuid.UUID) (*Plan, error) {
	balances, err := s.compute(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}
	return Settlements(balances), nil
}

// ParticipantBalance returns the balance of a single participant
func (s *Service) ParticipantBalance(ctx context.Context, groupID, participantID, userID uuid.UUID) (*ParticipantBalance, error) {
	balances, err := s.compute(ctx, groupID, userID)
	if err != nil {
		return nil, err
	}

	for _, b := range balances {
		if b.ParticipantID == participantID {
			return b, nil
		}
	}
	return nil, ErrParticipantNotFound
}

func (s *Service) compute(ctx context.Context, groupID, userID uuid.UUID) ([]*ParticipantBalance, error) {
	if _, err := s.groupSvc.GetOwned(ctx, groupID, userID); err != nil {
		return nil, err
	}

	participants, expenses, err := s.repo.Snapshot(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return Compute(participants, expenses), nil
}
