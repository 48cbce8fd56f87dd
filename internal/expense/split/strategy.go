package split

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Policy defines how an expense is divided among participants
type Policy string

const (
	PolicyEqual        Policy = "EQUAL"
	PolicyCustomAmount Policy = "CUSTOM_AMOUNT"
	PolicyPercentage   Policy = "PERCENTAGE"
)

// Entry represents one participant in a split with optional per-policy values
type Entry struct {
	ParticipantID uuid.UUID        `json:"participant_id"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`     // For CUSTOM_AMOUNT split
	Percentage    *decimal.Decimal `json:"percentage,omitempty"` // For PERCENTAGE split
}

// Share is the calculated monetary share for a single participant.
// For every strategy the shares of one expense sum exactly to its amount.
type Share struct {
	ParticipantID uuid.UUID        `json:"participant_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`
}

// Strategy is the interface that all split strategies must implement
type Strategy interface {
	// Allocate computes the share for every participant; the returned shares
	// sum exactly to total
	Allocate(total decimal.Decimal, entries []Entry) ([]Share, error)

	// Validate checks if the inputs are valid for this strategy
	Validate(total decimal.Decimal, entries []Entry) error

	// Policy returns the policy identifier for this strategy
	Policy() Policy
}

// Factory creates split strategies based on the requested policy
type Factory struct{}

// NewFactory creates a new factory instance
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns the appropriate strategy implementation based on the policy
func (f *Factory) Create(policy Policy) (Strategy, error) {
	switch policy {
	case PolicyEqual:
		return &EqualStrategy{}, nil
	case PolicyCustomAmount:
		return &CustomAmountStrategy{}, nil
	case PolicyPercentage:
		return &PercentageStrategy{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownPolicy, policy)
	}
}

// CreateFromString creates a strategy from a string policy (useful for API requests)
func (f *Factory) CreateFromString(policy string) (Strategy, error) {
	return f.Create(Policy(policy))
}

var (
	ErrUnknownPolicy        = errors.New("unknown split policy")
	ErrNoParticipants       = errors.New("at least one participant is required")
	ErrNonPositiveAmount    = errors.New("amount must be positive")
	ErrNonPositiveShare     = errors.New("each split amount must be positive")
	ErrMissingAmount        = errors.New("amount value required for all participants")
	ErrMissingPercentage    = errors.New("percentage value required for all participants")
	ErrPercentageOutOfRange = errors.New("percentage must be greater than 0 and at most 100")
	ErrDuplicateParticipant = errors.New("participant appears more than once in the split")
)

// SumMismatchError reports custom amounts that do not add up to the expense total.
// Both totals are carried so the client can show why the save was rejected.
type SumMismatchError struct {
	Expected decimal.Decimal
	Actual   decimal.Decimal
}

func (e *SumMismatchError) Error() string {
	return fmt.Sprintf("split amounts sum to %s, expected %s", e.Actual, e.Expected)
}

// PercentageSumError reports percentages whose total is outside the 100 ± 0.01 band.
type PercentageSumError struct {
	Total decimal.Decimal
}

func (e *PercentageSumError) Error() string {
	return fmt.Sprintf("percentages must sum to 100, got %s", e.Total)
}

var hundred = decimal.NewFromInt(100)

// percentageTolerance absorbs the rounding already baked into 2-decimal
// percentages; it is derived from the decimal precision, not a tunable.
var percentageTolerance = decimal.New(1, -2) // 0.01

// validateCommon runs the checks shared by every strategy
func validateCommon(total decimal.Decimal, entries []Entry) error {
	if len(entries) == 0 {
		return ErrNoParticipants
	}
	if total.Sign() <= 0 {
		return ErrNonPositiveAmount
	}
	seen := make(map[uuid.UUID]bool, len(entries))
	for _, e := range entries {
		if seen[e.ParticipantID] {
			return ErrDuplicateParticipant
		}
		seen[e.ParticipantID] = true
	}
	return nil
}
