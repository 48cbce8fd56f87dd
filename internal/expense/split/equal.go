package split

import "github.com/shopspring/decimal"

// =============================================================================
// EQUAL SPLIT STRATEGY
// Divides the expense equally among all participants
// =============================================================================

// EqualStrategy implements the Strategy interface for equal splits
type EqualStrategy struct{}

// Policy returns the split policy identifier
func (s *EqualStrategy) Policy() Policy {
	return PolicyEqual
}

// Validate checks if the inputs are valid for an equal split
func (s *EqualStrategy) Validate(total decimal.Decimal, entries []Entry) error {
	return validateCommon(total, entries)
}

// Allocate divides the total amount equally among all participants.
// Each share is the banker's-rounded quotient; whatever cent difference the
// rounding leaves is absorbed by the first participant, so the shares always
// sum exactly to total and the same participant absorbs it on every run.
func (s *EqualStrategy) Allocate(total decimal.Decimal, entries []Entry) ([]Share, error) {
	if err := s.Validate(total, entries); err != nil {
		return nil, err
	}

	n := decimal.NewFromInt(int64(len(entries)))
	base := total.Div(n).RoundBank(2)

	shares := make([]Share, len(entries))
	for i, e := range entries {
		shares[i] = Share{
			ParticipantID: e.ParticipantID,
			Amount:        base,
		}
	}

	// remainder = total - n*base, at most one cent per participant of drift
	remainder := total.Sub(base.Mul(n))
	if !remainder.IsZero() {
		shares[0].Amount = shares[0].Amount.Add(remainder)
	}

	return shares, nil
}
