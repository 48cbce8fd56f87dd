package split

import "github.com/shopspring/decimal"

// =============================================================================
// PERCENTAGE SPLIT STRATEGY
// Divides the expense based on specified percentages for each participant
// =============================================================================

// PercentageStrategy implements the Strategy interface for percentage-based splits
type PercentageStrategy struct{}

// Policy returns the split policy identifier
func (s *PercentageStrategy) Policy() Policy {
	return PolicyPercentage
}

// Validate checks that every participant has a percentage in (0, 100] and
// that the percentages sum to 100 within a 0.01 tolerance. The tolerance
// exists because the percentages themselves are already rounded to 2 decimals
// and may not reach exactly 100.00.
func (s *PercentageStrategy) Validate(total decimal.Decimal, entries []Entry) error {
	if err := validateCommon(total, entries); err != nil {
		return err
	}

	sum := decimal.Zero
	for _, e := range entries {
		if e.Percentage == nil {
			return ErrMissingPercentage
		}
		if e.Percentage.Sign() <= 0 || e.Percentage.GreaterThan(hundred) {
			return ErrPercentageOutOfRange
		}
		sum = sum.Add(*e.Percentage)
	}

	if sum.Sub(hundred).Abs().GreaterThan(percentageTolerance) {
		return &PercentageSumError{Total: sum}
	}

	return nil
}

// Allocate computes each share as total * percentage / 100, banker's-rounded
// to 2 decimals. Per-line rounding can drift the sum from total by a cent or
// more, so the difference is pushed onto the first participant, same as the
// equal strategy; the shares always sum exactly to total.
func (s *PercentageStrategy) Allocate(total decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(total, entries); err != nil {
		return nil, err
	}

	shares := make([]Share, len(entries))
	allocated := decimal.Zero
	for i, e := range entries {
		pct := *e.Percentage
		amount := total.Mul(pct).Div(hundred).RoundBank(2)
		allocated = allocated.Add(amount)
		shares[i] = Share{
			ParticipantID: e.ParticipantID,
			Amount:        amount,
			Percentage:    &pct,
		}
	}

	drift := total.Sub(allocated)
	if !drift.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(drift)
	}

	return shares, nil
}
