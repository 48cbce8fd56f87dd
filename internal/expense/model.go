package expense

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitmint/splitmint/internal/expense/split"
)

// Expense represents a shared expense recorded against a group
type Expense struct {
	ID          uuid.UUID       `json:"id"`
	GroupID     uuid.UUID       `json:"group_id"`
	PayerID     uuid.UUID       `json:"payer_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	Category    *string         `json:"category,omitempty"`
	ExpenseDate time.Time       `json:"expense_date"`
	SplitPolicy split.Policy    `json:"split_policy"` // EQUAL, CUSTOM_AMOUNT, PERCENTAGE
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN
	PayerName string `json:"payer_name,omitempty"`
}

// Split represents one participant's persisted share of an expense.
// Splits are created atomically with their expense and are immutable; the
// amounts of an expense's splits always sum exactly to the expense amount.
type Split struct {
	ID            uuid.UUID        `json:"id"`
	ExpenseID     uuid.UUID        `json:"expense_id"`
	ParticipantID uuid.UUID        `json:"participant_id"`
	Amount        decimal.Decimal  `json:"amount"`
	Percentage    *decimal.Decimal `json:"percentage,omitempty"`

	// Populated via JOIN
	ParticipantName string `json:"participant_name,omitempty"`
}

// ExpenseWithSplits combines an expense with its splits
type ExpenseWithSplits struct {
	Expense *Expense
	Splits  []*Split
}
