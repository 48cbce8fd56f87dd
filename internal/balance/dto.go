package balance

import "github.com/shopspring/decimal"

// GroupBalancesResponse is the payload of GET /groups/{groupID}/balances
type GroupBalancesResponse struct {
	GroupID             string                `json:"group_id"`
	ParticipantBalances []*ParticipantBalance `json:"participant_balances"`
	BalanceMatrix       []Edge                `json:"balance_matrix"`
	IsSettled           bool                  `json:"is_settled"`
}

// PlanResponse is the payload of GET /groups/{groupID}/settlements
type PlanResponse struct {
	Settlements       []Settlement    `json:"settlements"`
	TotalTransactions int             `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
}

// ToResponse converts a Plan to its response DTO
func (p *Plan) ToResponse() *PlanResponse {
	return &PlanResponse{
		Settlements:       p.Settlements,
		TotalTransactions: p.TotalTransactions,
		TotalAmount:       p.TotalAmount,
	}
}
