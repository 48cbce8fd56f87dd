package group

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Group represents a group of participants sharing expenses.
// A group is owned by exactly one user account; participants inside the
// group are lightweight records, not accounts of their own.
type Group struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner_id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Stats carries the aggregate figures shown on the group list
type Stats struct {
	ParticipantCount int             `json:"participant_count"`
	TotalExpenses    int             `json:"total_expenses"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// GroupWithStats combines a group with its aggregates
type GroupWithStats struct {
	Group *Group
	Stats Stats
}
