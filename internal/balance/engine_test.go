package balance

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitmint/splitmint/internal/expense"
	"github.com/splitmint/splitmint/internal/participant"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func makeParticipants(names ...string) []*participant.Participant {
	out := make([]*participant.Participant, len(names))
	for i, name := range names {
		out[i] = &participant.Participant{
			ID:    uuid.New(),
			Name:  name,
			Color: participant.ColorForIndex(i),
		}
	}
	return out
}

// makeExpense builds an expense paid by payer and split over the given
// (participant, amount) pairs
func makeExpense(payer *participant.Participant, amount string, shares map[*participant.Participant]string) *expense.ExpenseWithSplits {
	e := &expense.Expense{
		ID:      uuid.New(),
		PayerID: payer.ID,
		Amount:  dec(amount),
	}
	ews := &expense.ExpenseWithSplits{Expense: e}
	for p, amt := range shares {
		ews.Splits = append(ews.Splits, &expense.Split{
			ID:            uuid.New(),
			ExpenseID:     e.ID,
			ParticipantID: p.ID,
			Amount:        dec(amt),
		})
	}
	return ews
}

// makeBalance builds a balance row directly for settlement tests
func makeBalance(name, net string) *ParticipantBalance {
	return &ParticipantBalance{
		ParticipantID: uuid.New(),
		Name:          name,
		NetBalance:    dec(net),
	}
}

func TestComputeBalances(t *testing.T) {
	ps := makeParticipants("Alice", "Bob", "Carol")
	alice, bob, carol := ps[0], ps[1], ps[2]

	expenses := []*expense.ExpenseWithSplits{
		// Alice pays 90, split equally
		makeExpense(alice, "90.00", map[*participant.Participant]string{
			alice: "30.00", bob: "30.00", carol: "30.00",
		}),
		// Bob pays 30, Bob and Carol share it
		makeExpense(bob, "30.00", map[*participant.Participant]string{
			bob: "15.00", carol: "15.00",
		}),
	}

	balances := Compute(ps, expenses)

	want := []struct {
		name  string
		paid  string
		share string
		net   string
	}{
		{"Alice", "90.00", "30.00", "60.00"},
		{"Bob", "30.00", "45.00", "-15.00"},
		{"Carol", "0.00", "45.00", "-45.00"},
	}

	for i, w := range want {
		b := balances[i]
		if b.Name != w.name {
			t.Fatalf("balances[%d].Name = %s, want %s (enumeration order must be preserved)", i, b.Name, w.name)
		}
		if !b.TotalPaid.Equal(dec(w.paid)) {
			t.Errorf("%s TotalPaid = %s, want %s", w.name, b.TotalPaid, w.paid)
		}
		if !b.TotalShare.Equal(dec(w.share)) {
			t.Errorf("%s TotalShare = %s, want %s", w.name, b.TotalShare, w.share)
		}
		if !b.NetBalance.Equal(dec(w.net)) {
			t.Errorf("%s NetBalance = %s, want %s", w.name, b.NetBalance, w.net)
		}
	}
}

func TestComputeConservation(t *testing.T) {
	ps := makeParticipants("Alice", "Bob", "Carol", "Dave")
	alice, bob, carol, dave := ps[0], ps[1], ps[2], ps[3]

	// Uneven amounts with rounding-shaped splits; each expense's splits sum
	// exactly to its amount, so the nets must sum exactly to zero.
	expenses := []*expense.ExpenseWithSplits{
		makeExpense(alice, "100.00", map[*participant.Participant]string{
			alice: "33.34", bob: "33.33", carol: "33.33",
		}),
		makeExpense(bob, "10.00", map[*participant.Participant]string{
			bob: "3.34", carol: "3.33", dave: "3.33",
		}),
		makeExpense(carol, "77.77", map[*participant.Participant]string{
			alice: "19.45", bob: "19.44", carol: "19.44", dave: "19.44",
		}),
	}

	balances := Compute(ps, expenses)

	sum := decimal.Zero
	for _, b := range balances {
		sum = sum.Add(b.NetBalance)
	}
	if !sum.IsZero() {
		t.Errorf("net balances sum to %s, want exactly 0", sum)
	}
}

func TestComputeIgnoresUnknownParticipants(t *testing.T) {
	ps := makeParticipants("Alice", "Bob")
	alice, bob := ps[0], ps[1]
	stranger := &participant.Participant{ID: uuid.New(), Name: "Stranger"}

	expenses := []*expense.ExpenseWithSplits{
		makeExpense(alice, "20.00", map[*participant.Participant]string{
			alice: "10.00", bob: "5.00", stranger: "5.00",
		}),
		makeExpense(stranger, "40.00", map[*participant.Participant]string{
			alice: "40.00",
		}),
	}

	balances := Compute(ps, expenses)

	if len(balances) != 2 {
		t.Fatalf("got %d balances, want 2", len(balances))
	}
	// stranger's payment and share are dropped, not attributed to anyone
	if !balances[0].TotalPaid.Equal(dec("20.00")) || !balances[0].TotalShare.Equal(dec("50.00")) {
		t.Errorf("Alice paid/share = %s/%s, want 20.00/50.00", balances[0].TotalPaid, balances[0].TotalShare)
	}
	if !balances[1].TotalShare.Equal(dec("5.00")) {
		t.Errorf("Bob share = %s, want 5.00", balances[1].TotalShare)
	}
}

func TestComputeIdempotent(t *testing.T) {
	ps := makeParticipants("Alice", "Bob", "Carol")
	expenses := []*expense.ExpenseWithSplits{
		makeExpense(ps[0], "100.00", map[*participant.Participant]string{
			ps[0]: "33.34", ps[1]: "33.33", ps[2]: "33.33",
		}),
	}

	first := Compute(ps, expenses)
	second := Compute(ps, expenses)

	for i := range first {
		if first[i].ParticipantID != second[i].ParticipantID ||
			!first[i].TotalPaid.Equal(second[i].TotalPaid) ||
			!first[i].TotalShare.Equal(second[i].TotalShare) ||
			!first[i].NetBalance.Equal(second[i].NetBalance) {
			t.Fatalf("recomputation diverged at index %d: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestSettlements(t *testing.T) {
	balances := []*ParticipantBalance{
		makeBalance("Alice", "50.00"),
		makeBalance("Bob", "-30.00"),
		makeBalance("Carol", "-20.00"),
	}

	plan := Settlements(balances)

	if plan.TotalTransactions != 2 {
		t.Fatalf("TotalTransactions = %d, want 2", plan.TotalTransactions)
	}
	if !plan.TotalAmount.Equal(dec("50.00")) {
		t.Errorf("TotalAmount = %s, want 50.00", plan.TotalAmount)
	}

	// Bob owes more than Carol, so Bob settles first
	first, second := plan.Settlements[0], plan.Settlements[1]
	if first.FromParticipantName != "Bob" || first.ToParticipantName != "Alice" || !first.Amount.Equal(dec("30.00")) {
		t.Errorf("first settlement = %s pays %s %s, want Bob pays Alice 30.00",
			first.FromParticipantName, first.ToParticipantName, first.Amount)
	}
	if second.FromParticipantName != "Carol" || second.ToParticipantName != "Alice" || !second.Amount.Equal(dec("20.00")) {
		t.Errorf("second settlement = %s pays %s %s, want Carol pays Alice 20.00",
			second.FromParticipantName, second.ToParticipantName, second.Amount)
	}

	if first.Description != "Bob pays Alice $30.00" {
		t.Errorf("Description = %q, want %q", first.Description, "Bob pays Alice $30.00")
	}
}

func TestSettlementsStableForEqualAmounts(t *testing.T) {
	// Bob and Carol owe the same amount; the tie keeps enumeration order
	balances := []*ParticipantBalance{
		makeBalance("Alice", "40.00"),
		makeBalance("Bob", "-20.00"),
		makeBalance("Carol", "-20.00"),
	}

	for run := 0; run < 5; run++ {
		plan := Settlements(balances)
		if plan.TotalTransactions != 2 {
			t.Fatalf("TotalTransactions = %d, want 2", plan.TotalTransactions)
		}
		if plan.Settlements[0].FromParticipantName != "Bob" || plan.Settlements[1].FromParticipantName != "Carol" {
			t.Fatalf("run %d: settlement order = %s, %s; want Bob, Carol",
				run, plan.Settlements[0].FromParticipantName, plan.Settlements[1].FromParticipantName)
		}
	}
}

func TestSettlementsTotalsMatchDebt(t *testing.T) {
	balances := []*ParticipantBalance{
		makeBalance("Alice", "12.37"),
		makeBalance("Bob", "-5.00"),
		makeBalance("Carol", "30.63"),
		makeBalance("Dave", "-38.00"),
	}

	plan := Settlements(balances)

	// total transferred equals the total owed across the group
	owed := decimal.Zero
	for _, b := range balances {
		if b.NetBalance.Sign() > 0 {
			owed = owed.Add(b.NetBalance)
		}
	}
	if !plan.TotalAmount.Equal(owed) {
		t.Errorf("TotalAmount = %s, want %s", plan.TotalAmount, owed)
	}

	for i, s := range plan.Settlements {
		if s.Amount.Sign() <= 0 {
			t.Errorf("settlement %d has non-positive amount %s", i, s.Amount)
		}
	}
}

func TestSettlementsEmptyWhenSettled(t *testing.T) {
	balances := []*ParticipantBalance{
		makeBalance("Alice", "0.01"),
		makeBalance("Bob", "-0.01"),
	}

	plan := Settlements(balances)

	if plan.TotalTransactions != 0 {
		t.Errorf("TotalTransactions = %d, want 0 (dust within tolerance is dropped)", plan.TotalTransactions)
	}
	if !plan.TotalAmount.IsZero() {
		t.Errorf("TotalAmount = %s, want 0", plan.TotalAmount)
	}
}

func TestSettlementsDoNotMutateInput(t *testing.T) {
	balances := []*ParticipantBalance{
		makeBalance("Alice", "50.00"),
		makeBalance("Bob", "-50.00"),
	}

	Settlements(balances)

	if !balances[0].NetBalance.Equal(dec("50.00")) || !balances[1].NetBalance.Equal(dec("-50.00")) {
		t.Errorf("Settlements mutated caller balances: %s, %s", balances[0].NetBalance, balances[1].NetBalance)
	}
}

func TestMatrix(t *testing.T) {
	// Debtors outer, creditors inner, both in enumeration order: Bob clears
	// against Alice first, Dave covers the rest of Alice then moves to Carol.
	balances := []*ParticipantBalance{
		makeBalance("Alice", "40.00"),
		makeBalance("Bob", "-25.00"),
		makeBalance("Carol", "20.00"),
		makeBalance("Dave", "-35.00"),
	}

	edges := Matrix(balances)

	want := []struct {
		from, to, amount string
	}{
		{"Bob", "Alice", "25.00"},
		{"Dave", "Alice", "15.00"},
		{"Dave", "Carol", "20.00"},
	}

	if len(edges) != len(want) {
		t.Fatalf("got %d edges, want %d", len(edges), len(want))
	}
	for i, w := range want {
		e := edges[i]
		if e.FromParticipantName != w.from || e.ToParticipantName != w.to || !e.Amount.Equal(dec(w.amount)) {
			t.Errorf("edge[%d] = %s->%s %s, want %s->%s %s",
				i, e.FromParticipantName, e.ToParticipantName, e.Amount, w.from, w.to, w.amount)
		}
	}
}

func TestIsSettled(t *testing.T) {
	tests := []struct {
		name     string
		balances []*ParticipantBalance
		want     bool
	}{
		{
			name:     "empty group is settled",
			balances: nil,
			want:     true,
		},
		{
			name: "one cent inside tolerance",
			balances: []*ParticipantBalance{
				makeBalance("Alice", "0.01"),
				makeBalance("Bob", "-0.01"),
			},
			want: true,
		},
		{
			name: "two cents outside tolerance",
			balances: []*ParticipantBalance{
				makeBalance("Alice", "0.02"),
				makeBalance("Bob", "-0.02"),
			},
			want: false,
		},
		{
			name: "real debts",
			balances: []*ParticipantBalance{
				makeBalance("Alice", "10.00"),
				makeBalance("Bob", "-10.00"),
			},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSettled(tt.balances); got != tt.want {
				t.Errorf("IsSettled = %v, want %v", got, tt.want)
			}
		})
	}
}
