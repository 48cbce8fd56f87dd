package split

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func ids(n int) []uuid.UUID {
	out := make([]uuid.UUID, n)
	for i := range out {
		out[i] = uuid.New()
	}
	return out
}

func sumShares(shares []Share) decimal.Decimal {
	sum := decimal.Zero
	for _, s := range shares {
		sum = sum.Add(s.Amount)
	}
	return sum
}

func TestEqualAllocate(t *testing.T) {
	tests := []struct {
		name    string
		total   string
		n       int
		want    []string
		wantErr error
	}{
		{
			name:  "hundred split three ways",
			total: "100.00",
			n:     3,
			want:  []string{"33.34", "33.33", "33.33"},
		},
		{
			name:  "ten split three ways",
			total: "10.00",
			n:     3,
			want:  []string{"3.34", "3.33", "3.33"},
		},
		{
			name:  "single participant owes everything",
			total: "42.50",
			n:     1,
			want:  []string{"42.50"},
		},
		{
			name:  "clean four-way split",
			total: "100.00",
			n:     4,
			want:  []string{"25.00", "25.00", "25.00", "25.00"},
		},
		{
			// 0.03/2 = 0.015 rounds half-to-even to 0.02, the negative
			// remainder lands on the first participant
			name:  "bankers rounding on the half cent",
			total: "0.03",
			n:     2,
			want:  []string{"0.01", "0.02"},
		},
		{
			name:    "no participants",
			total:   "100.00",
			n:       0,
			wantErr: ErrNoParticipants,
		},
		{
			name:    "zero amount",
			total:   "0.00",
			n:       2,
			wantErr: ErrNonPositiveAmount,
		},
		{
			name:    "negative amount",
			total:   "-5.00",
			n:       2,
			wantErr: ErrNonPositiveAmount,
		},
	}

	strategy := &EqualStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			entries := make([]Entry, tt.n)
			for i, id := range ids(tt.n) {
				entries[i] = Entry{ParticipantID: id}
			}

			shares, err := strategy.Allocate(dec(tt.total), entries)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate returned unexpected error: %v", err)
			}

			if len(shares) != len(tt.want) {
				t.Fatalf("got %d shares, want %d", len(shares), len(tt.want))
			}
			for i, w := range tt.want {
				if !shares[i].Amount.Equal(dec(w)) {
					t.Errorf("share[%d] = %s, want %s", i, shares[i].Amount, w)
				}
			}
			if !sumShares(shares).Equal(dec(tt.total)) {
				t.Errorf("shares sum to %s, want exactly %s", sumShares(shares), tt.total)
			}
		})
	}
}

func TestEqualAllocateDeterministic(t *testing.T) {
	strategy := &EqualStrategy{}
	entries := make([]Entry, 3)
	for i, id := range ids(3) {
		entries[i] = Entry{ParticipantID: id}
	}

	first, err := strategy.Allocate(dec("10.00"), entries)
	if err != nil {
		t.Fatalf("Allocate returned unexpected error: %v", err)
	}

	// Same input must produce the identical result on every invocation,
	// including which participant absorbs the rounding cent.
	for run := 0; run < 10; run++ {
		shares, err := strategy.Allocate(dec("10.00"), entries)
		if err != nil {
			t.Fatalf("Allocate returned unexpected error: %v", err)
		}
		for i := range shares {
			if shares[i].ParticipantID != first[i].ParticipantID || !shares[i].Amount.Equal(first[i].Amount) {
				t.Fatalf("run %d: share[%d] = %v, want %v", run, i, shares[i], first[i])
			}
		}
	}

	if !first[0].Amount.Equal(dec("3.34")) {
		t.Errorf("first participant absorbs the remainder: got %s, want 3.34", first[0].Amount)
	}
}

func TestCustomAmountAllocate(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	tests := []struct {
		name    string
		total   string
		entries []Entry
		wantErr error
	}{
		{
			name:  "exact sum accepted",
			total: "100.00",
			entries: []Entry{
				{ParticipantID: a, Amount: decPtr("60.00")},
				{ParticipantID: b, Amount: decPtr("40.00")},
			},
		},
		{
			name:  "sum mismatch rejected",
			total: "100.00",
			entries: []Entry{
				{ParticipantID: a, Amount: decPtr("40.00")},
				{ParticipantID: b, Amount: decPtr("40.00")},
			},
			wantErr: &SumMismatchError{},
		},
		{
			name:  "missing amount rejected",
			total: "100.00",
			entries: []Entry{
				{ParticipantID: a, Amount: decPtr("100.00")},
				{ParticipantID: b},
			},
			wantErr: ErrMissingAmount,
		},
		{
			name:  "zero entry rejected",
			total: "100.00",
			entries: []Entry{
				{ParticipantID: a, Amount: decPtr("100.00")},
				{ParticipantID: b, Amount: decPtr("0.00")},
			},
			wantErr: ErrNonPositiveShare,
		},
		{
			name:  "duplicate participant rejected",
			total: "100.00",
			entries: []Entry{
				{ParticipantID: a, Amount: decPtr("50.00")},
				{ParticipantID: a, Amount: decPtr("50.00")},
			},
			wantErr: ErrDuplicateParticipant,
		},
	}

	strategy := &CustomAmountStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Allocate(dec(tt.total), tt.entries)
			if tt.wantErr != nil {
				var mismatch *SumMismatchError
				if errors.As(tt.wantErr, &mismatch) {
					if !errors.As(err, &mismatch) {
						t.Fatalf("Allocate error = %v, want SumMismatchError", err)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate returned unexpected error: %v", err)
			}
			if !sumShares(shares).Equal(dec(tt.total)) {
				t.Errorf("shares sum to %s, want exactly %s", sumShares(shares), tt.total)
			}
		})
	}
}

func TestCustomAmountMismatchReportsBothSums(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	strategy := &CustomAmountStrategy{}

	_, err := strategy.Allocate(dec("100.00"), []Entry{
		{ParticipantID: a, Amount: decPtr("40.00")},
		{ParticipantID: b, Amount: decPtr("40.00")},
	})

	var mismatch *SumMismatchError
	if !errors.As(err, &mismatch) {
		t.Fatalf("Allocate error = %v, want SumMismatchError", err)
	}
	if !mismatch.Expected.Equal(dec("100.00")) {
		t.Errorf("Expected = %s, want 100.00", mismatch.Expected)
	}
	if !mismatch.Actual.Equal(dec("80.00")) {
		t.Errorf("Actual = %s, want 80.00", mismatch.Actual)
	}
}

func TestPercentageAllocate(t *testing.T) {
	a, b, c := uuid.New(), uuid.New(), uuid.New()

	tests := []struct {
		name    string
		total   string
		entries []Entry
		want    []string
		wantErr error
	}{
		{
			name:  "fifty fifty",
			total: "90.00",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("50.00")},
				{ParticipantID: b, Percentage: decPtr("50.00")},
			},
			want: []string{"45.00", "45.00"},
		},
		{
			name:  "sum of 99.99 inside tolerance",
			total: "90.00",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("50.00")},
				{ParticipantID: b, Percentage: decPtr("49.99")},
			},
			// 44.99 + 45.00 = 89.99; first participant absorbs the cent
			want: []string{"45.01", "44.99"},
		},
		{
			// per-line rounding drops a cent (0.03+0.03+0.03 = 0.09),
			// the first participant picks it back up
			name:  "rounding drift corrected on first participant",
			total: "0.10",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("33.33")},
				{ParticipantID: b, Percentage: decPtr("33.33")},
				{ParticipantID: c, Percentage: decPtr("33.34")},
			},
			want: []string{"0.04", "0.03", "0.03"},
		},
		{
			name:  "sum of 99.97 outside tolerance",
			total: "90.00",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("50.00")},
				{ParticipantID: b, Percentage: decPtr("49.97")},
			},
			wantErr: &PercentageSumError{},
		},
		{
			name:  "zero percentage rejected",
			total: "90.00",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("100.00")},
				{ParticipantID: b, Percentage: decPtr("0.00")},
			},
			wantErr: ErrPercentageOutOfRange,
		},
		{
			name:  "missing percentage rejected",
			total: "90.00",
			entries: []Entry{
				{ParticipantID: a, Percentage: decPtr("100.00")},
				{ParticipantID: b},
			},
			wantErr: ErrMissingPercentage,
		},
	}

	strategy := &PercentageStrategy{}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			shares, err := strategy.Allocate(dec(tt.total), tt.entries)
			if tt.wantErr != nil {
				var pctErr *PercentageSumError
				if errors.As(tt.wantErr, &pctErr) {
					if !errors.As(err, &pctErr) {
						t.Fatalf("Allocate error = %v, want PercentageSumError", err)
					}
					return
				}
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Allocate error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Allocate returned unexpected error: %v", err)
			}

			for i, w := range tt.want {
				if !shares[i].Amount.Equal(dec(w)) {
					t.Errorf("share[%d] = %s, want %s", i, shares[i].Amount, w)
				}
			}
			if !sumShares(shares).Equal(dec(tt.total)) {
				t.Errorf("shares sum to %s, want exactly %s", sumShares(shares), tt.total)
			}
		})
	}
}

func TestPercentageSharesKeepPercentages(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	strategy := &PercentageStrategy{}

	shares, err := strategy.Allocate(dec("200.00"), []Entry{
		{ParticipantID: a, Percentage: decPtr("75.00")},
		{ParticipantID: b, Percentage: decPtr("25.00")},
	})
	if err != nil {
		t.Fatalf("Allocate returned unexpected error: %v", err)
	}

	if shares[0].Percentage == nil || !shares[0].Percentage.Equal(dec("75.00")) {
		t.Errorf("share[0].Percentage = %v, want 75.00", shares[0].Percentage)
	}
	if shares[1].Percentage == nil || !shares[1].Percentage.Equal(dec("25.00")) {
		t.Errorf("share[1].Percentage = %v, want 25.00", shares[1].Percentage)
	}
}

func TestFactory(t *testing.T) {
	factory := NewFactory()

	for _, policy := range []Policy{PolicyEqual, PolicyCustomAmount, PolicyPercentage} {
		strategy, err := factory.Create(policy)
		if err != nil {
			t.Fatalf("Create(%s) returned error: %v", policy, err)
		}
		if strategy.Policy() != policy {
			t.Errorf("Create(%s).Policy() = %s", policy, strategy.Policy())
		}
	}

	if _, err := factory.CreateFromString("HALFSIES"); err == nil {
		t.Error("expected error for unknown policy")
	}
}
