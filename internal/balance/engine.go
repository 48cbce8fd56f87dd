// Package balance computes per-participant net balances and settlement plans
// from a snapshot of a group's expenses and splits. Everything in this file
// is pure: no I/O, no shared state, inputs are never mutated, and the same
// snapshot always produces the same result, so callers may invoke it
// concurrently without coordination.
package balance

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitmint/splitmint/internal/expense"
	"github.com/splitmint/splitmint/internal/participant"
)

// tolerance is the band that absorbs accumulated rounding noise from repeated
// 2-decimal division: a single rounding step errs by at most half a cent, so
// one cent covers the sums of a few of them. It is derived from the decimal
// precision and must not be made configurable independently of it.
var tolerance = decimal.New(1, -2) // 0.01

// ParticipantBalance is the derived balance of one participant.
// Positive net means the participant is owed money (creditor), negative
// means they owe (debtor).
type ParticipantBalance struct {
	ParticipantID uuid.UUID       `json:"participant_id"`
	Name          string          `json:"name"`
	Color         string          `json:"color"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
	TotalShare    decimal.Decimal `json:"total_share"`
	NetBalance    decimal.Decimal `json:"net_balance"`
}

// Edge is one entry of the informational balance matrix: a pairwise
// "who owes whom" view that is not minimized for transaction count.
type Edge struct {
	FromParticipantID   uuid.UUID       `json:"from_participant_id"`
	FromParticipantName string          `json:"from_participant_name"`
	ToParticipantID     uuid.UUID       `json:"to_participant_id"`
	ToParticipantName   string          `json:"to_participant_name"`
	Amount              decimal.Decimal `json:"amount"`
}

// Settlement is one proposed transfer of a settlement plan
type Settlement struct {
	FromParticipantID   uuid.UUID       `json:"from_participant_id"`
	FromParticipantName string          `json:"from_participant_name"`
	ToParticipantID     uuid.UUID       `json:"to_participant_id"`
	ToParticipantName   string          `json:"to_participant_name"`
	Amount              decimal.Decimal `json:"amount"`
	Description         string          `json:"description"`
}

// Plan is a settlement plan with its display totals
type Plan struct {
	Settlements       []Settlement    `json:"settlements"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// Compute folds the expense snapshot into one balance per participant,
// preserving the enumeration order of the participants slice. Every expense
// adds its amount to the payer's total paid; every split adds its amount to
// its participant's total share. An expense or split referencing a
// participant outside the supplied list is ignored. Because each expense's
// splits sum exactly to its amount, the net balances always sum to zero.
func Compute(participants []*participant.Participant, expenses []*expense.ExpenseWithSplits) []*ParticipantBalance {
	balances := make([]*ParticipantBalance, len(participants))
	index := make(map[uuid.UUID]*ParticipantBalance, len(participants))
	for i, p := range participants {
		b := &ParticipantBalance{
			ParticipantID: p.ID,
			Name:          p.Name,
			Color:         p.Color,
			TotalPaid:     decimal.Zero,
			TotalShare:    decimal.Zero,
			NetBalance:    decimal.Zero,
		}
		balances[i] = b
		index[p.ID] = b
	}

	for _, e := range expenses {
		if payer, ok := index[e.Expense.PayerID]; ok {
			payer.TotalPaid = payer.TotalPaid.Add(e.Expense.Amount)
		}
		for _, s := range e.Splits {
			if b, ok := index[s.ParticipantID]; ok {
				b.TotalShare = b.TotalShare.Add(s.Amount)
			}
		}
	}

	for _, b := range balances {
		b.NetBalance = b.TotalPaid.Sub(b.TotalShare)
	}

	return balances
}

// party is a creditor or debtor with its remaining amount during matching
type party struct {
	id     uuid.UUID
	name   string
	amount decimal.Decimal
}

// partition splits balances into creditors and debtors (debtor amounts as
// positive magnitudes), both in balance enumeration order. Participants
// inside the tolerance band land in neither list.
func partition(balances []*ParticipantBalance) (creditors, debtors []party) {
	for _, b := range balances {
		switch {
		case b.NetBalance.GreaterThan(tolerance):
			creditors = append(creditors, party{id: b.ParticipantID, name: b.Name, amount: b.NetBalance})
		case b.NetBalance.LessThan(tolerance.Neg()):
			debtors = append(debtors, party{id: b.ParticipantID, name: b.Name, amount: b.NetBalance.Abs()})
		}
	}
	return creditors, debtors
}

// Matrix produces the pairwise who-owes-whom view: every debtor is matched
// against every creditor in enumeration order, transferring the smaller
// remainder each time. It is an O(n²) informational view and makes no
// attempt to minimize the number of edges — use Settlements for that.
func Matrix(balances []*ParticipantBalance) []Edge {
	creditors, debtors := partition(balances)

	var edges []Edge
	for d := range debtors {
		for c := range creditors {
			if debtors[d].amount.GreaterThan(tolerance) && creditors[c].amount.GreaterThan(tolerance) {
				transfer := decimal.Min(debtors[d].amount, creditors[c].amount)

				edges = append(edges, Edge{
					FromParticipantID:   debtors[d].id,
					FromParticipantName: debtors[d].name,
					ToParticipantID:     creditors[c].id,
					ToParticipantName:   creditors[c].name,
					Amount:              transfer,
				})

				debtors[d].amount = debtors[d].amount.Sub(transfer)
				creditors[c].amount = creditors[c].amount.Sub(transfer)
			}
		}
	}

	return edges
}

// Settlements produces a settlement plan by greedy largest-first matching:
// creditors and debtors are sorted descending by amount (stable, so equal
// amounts keep their enumeration order and the output is deterministic) and
// settled pairwise with two pointers. Conservation guarantees both sides
// run out together; residual dust below the tolerance is dropped rather than
// emitted. The greedy heuristic keeps the transaction count low but is not
// an exact minimum-transaction solver, which is NP-hard in general.
func Settlements(balances []*ParticipantBalance) *Plan {
	creditors, debtors := partition(balances)

	sort.SliceStable(creditors, func(i, j int) bool {
		return creditors[i].amount.GreaterThan(creditors[j].amount)
	})
	sort.SliceStable(debtors, func(i, j int) bool {
		return debtors[i].amount.GreaterThan(debtors[j].amount)
	})

	plan := &Plan{
		Settlements: []Settlement{},
		TotalAmount: decimal.Zero,
	}

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := decimal.Min(creditor.amount, debtor.amount)

		plan.Settlements = append(plan.Settlements, Settlement{
			FromParticipantID:   debtor.id,
			FromParticipantName: debtor.name,
			ToParticipantID:     creditor.id,
			ToParticipantName:   creditor.name,
			Amount:              amount,
			Description:         fmt.Sprintf("%s pays %s $%s", debtor.name, creditor.name, amount.StringFixed(2)),
		})
		plan.TotalAmount = plan.TotalAmount.Add(amount)

		creditor.amount = creditor.amount.Sub(amount)
		debtor.amount = debtor.amount.Sub(amount)

		if creditor.amount.LessThan(tolerance) {
			i++
		}
		if debtor.amount.LessThan(tolerance) {
			j++
		}
	}

	plan.TotalTransactions = len(plan.Settlements)
	return plan
}

// IsSettled reports whether every participant's net balance is within the
// rounding tolerance of zero
func IsSettled(balances []*ParticipantBalance) bool {
	for _, b := range balances {
		if b.NetBalance.Abs().GreaterThan(tolerance) {
			return false
		}
	}
	return true
}
