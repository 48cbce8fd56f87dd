package expense

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/splitmint/splitmint/internal/expense/split"
)

// SplitEntryRequest is one participant line of an expense creation request
type SplitEntryRequest struct {
	ParticipantID uuid.UUID        `json:"participant_id" validate:"required"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`     // For CUSTOM_AMOUNT split
	Percentage    *decimal.Decimal `json:"percentage,omitempty"` // For PERCENTAGE split
}

// ToEntry converts to the split package's input type
func (e *SplitEntryRequest) ToEntry() split.Entry {
	return split.Entry{
		ParticipantID: e.ParticipantID,
		Amount:        e.Amount,
		Percentage:    e.Percentage,
	}
}

// CreateExpenseRequest represents the request to create an expense
type CreateExpenseRequest struct {
	Description string               `json:"description" validate:"required,min=1,max=500"`
	Amount      decimal.Decimal      `json:"amount" validate:"required"`
	PayerID     uuid.UUID            `json:"payer_id" validate:"required"`
	ExpenseDate string               `json:"expense_date" validate:"required"` // YYYY-MM-DD
	SplitPolicy string               `json:"split_policy" validate:"required,oneof=EQUAL CUSTOM_AMOUNT PERCENTAGE"`
	Category    *string              `json:"category,omitempty"`
	Splits      []*SplitEntryRequest `json:"splits" validate:"required,min=1"`
}

// UpdateExpenseRequest represents the request to update an expense.
// Amounts, payer and splits cannot be edited in place; delete and recreate
// the expense to change how it is divided.
type UpdateExpenseRequest struct {
	Description *string `json:"description,omitempty" validate:"omitempty,min=1,max=500"`
	Category    *string `json:"category,omitempty"`
}

// ListFilter captures the query parameters of the list endpoint
type ListFilter struct {
	Category      string
	ParticipantID *uuid.UUID
	DateFrom      string
	DateTo        string
	Search        string
	Page          int
	PerPage       int
}

// ExpenseResponse represents the response for an expense
type ExpenseResponse struct {
	ID          string           `json:"id"`
	GroupID     string           `json:"group_id"`
	PayerID     string           `json:"payer_id"`
	PayerName   string           `json:"payer_name,omitempty"`
	Description string           `json:"description"`
	Amount      decimal.Decimal  `json:"amount"`
	Category    *string          `json:"category,omitempty"`
	ExpenseDate string           `json:"expense_date"`
	SplitPolicy string           `json:"split_policy"`
	CreatedAt   string           `json:"created_at"`
	Splits      []*SplitResponse `json:"splits,omitempty"`
}

// SplitResponse represents the response for a single split
type SplitResponse struct {
	ID              string           `json:"id"`
	ExpenseID       string           `json:"expense_id"`
	ParticipantID   string           `json:"participant_id"`
	ParticipantName string           `json:"participant_name,omitempty"`
	Amount          decimal.Decimal  `json:"amount"`
	Percentage      *decimal.Decimal `json:"percentage,omitempty"`
}

// ToResponse converts an Expense model to an ExpenseResponse DTO
func (e *Expense) ToResponse() *ExpenseResponse {
	return &ExpenseResponse{
		ID:          e.ID.String(),
		GroupID:     e.GroupID.String(),
		PayerID:     e.PayerID.String(),
		PayerName:   e.PayerName,
		Description: e.Description,
		Amount:      e.Amount,
		Category:    e.Category,
		ExpenseDate: e.ExpenseDate.Format("2006-01-02"),
		SplitPolicy: string(e.SplitPolicy),
		CreatedAt:   e.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a Split model to a SplitResponse DTO
func (s *Split) ToResponse() *SplitResponse {
	return &SplitResponse{
		ID:              s.ID.String(),
		ExpenseID:       s.ExpenseID.String(),
		ParticipantID:   s.ParticipantID.String(),
		ParticipantName: s.ParticipantName,
		Amount:          s.Amount,
		Percentage:      s.Percentage,
	}
}
