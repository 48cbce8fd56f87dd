package group

import "github.com/shopspring/decimal"

// CreateGroupRequest represents the request body for creating a group
type CreateGroupRequest struct {
	Name string `json:"name" validate:"required,min=1,max=100"`
}

// UpdateGroupRequest represents the request body for updating a group
type UpdateGroupRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
}

// GroupResponse represents the response for a single group
type GroupResponse struct {
	ID               string          `json:"id"`
	OwnerID          string          `json:"owner_id"`
	Name             string          `json:"name"`
	CreatedAt        string          `json:"created_at"`
	UpdatedAt        string          `json:"updated_at"`
	ParticipantCount int             `json:"participant_count"`
	TotalExpenses    int             `json:"total_expenses"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
}

// ToResponse converts a Group model to a GroupResponse DTO
func (g *Group) ToResponse() *GroupResponse {
	return &GroupResponse{
		ID:        g.ID.String(),
		OwnerID:   g.OwnerID.String(),
		Name:      g.Name,
		CreatedAt: g.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt: g.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// ToResponse converts a GroupWithStats to a GroupResponse DTO
func (g *GroupWithStats) ToResponse() *GroupResponse {
	resp := g.Group.ToResponse()
	resp.ParticipantCount = g.Stats.ParticipantCount
	resp.TotalExpenses = g.Stats.TotalExpenses
	resp.TotalAmount = g.Stats.TotalAmount
	return resp
}
