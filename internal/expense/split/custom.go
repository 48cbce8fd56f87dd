package split

import "github.com/shopspring/decimal"

// =============================================================================
// CUSTOM AMOUNT SPLIT STRATEGY
// Each participant owes a caller-supplied exact amount (must sum to total)
// =============================================================================

// CustomAmountStrategy implements the Strategy interface for custom amount splits
type CustomAmountStrategy struct{}

// Policy returns the split policy identifier
func (s *CustomAmountStrategy) Policy() Policy {
	return PolicyCustomAmount
}

// Validate checks that every participant has a positive amount and that the
// amounts sum exactly to the total. There is no auto-adjustment: a mismatch
// is rejected with both sums so the caller can fix the request.
func (s *CustomAmountStrategy) Validate(total decimal.Decimal, entries []Entry) error {
	if err := validateCommon(total, entries); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, e := range entries {
		if e.Amount == nil {
			return ErrMissingAmount
		}
		if e.Amount.Sign() <= 0 {
			return ErrNonPositiveShare
		}
		sum = sum.Add(*e.Amount)
	}

	if !sum.Equal(total) {
		return &SumMismatchError{Expected: total, Actual: sum}
	}

	return nil
}

// Allocate returns the amounts exactly as supplied; validation has already
// guaranteed they sum to total
func (s *CustomAmountStrategy) Allocate(total decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(total, entries); err != nil {
		return nil, err
	}

	shares := make([]Share, len(entries))
	for i, e := range entries {
		shares[i] = Share{
			ParticipantID: e.ParticipantID,
			Amount:        *e.Amount,
		}
	}

	return shares, nil
}
