package balance

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/group"
	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for balance and settlement queries.
// Routes are mounted under /groups/{groupID}.
type Handler struct {
	service *Service
}

// NewHandler creates a new balance handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the balance endpoints to an existing group-scoped
// router. They share the /groups/{groupID} subtree with the group item
// routes, so they are registered directly instead of mounted as a
// sub-router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/balances", h.GroupBalances)
	r.Get("/settlements", h.SettlementPlan)
	r.Get("/participant-balance/{participantId}", h.ParticipantBalance)
}

// GroupBalances handles GET /groups/{groupID}/balances
// @Summary      Get group balances
// @Description  Per-participant balances, the who-owes-whom matrix and the settled flag, computed fresh from the expense snapshot
// @Tags         balances
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupBalancesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/balances [get]
func (h *Handler) GroupBalances(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	balances, matrix, settled, err := h.service.GroupBalances(r.Context(), groupID, userID)
	if err != nil {
		writeBalanceError(w, err, "Failed to compute balances")
		return
	}

	if matrix == nil {
		matrix = []Edge{}
	}

	response.JSON(w, http.StatusOK, &GroupBalancesResponse{
		GroupID:             groupID.String(),
		ParticipantBalances: balances,
		BalanceMatrix:       matrix,
		IsSettled:           settled,
	})
}

// SettlementPlan handles GET /groups/{groupID}/settlements
// @Summary      Get settlement suggestions
// @Description  Greedy largest-first settlement plan that zeroes all net balances with few transactions
// @Tags         balances
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=PlanResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/settlements [get]
func (h *Handler) SettlementPlan(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	plan, err := h.service.SettlementPlan(r.Context(), groupID, userID)
	if err != nil {
		writeBalanceError(w, err, "Failed to compute settlements")
		return
	}

	response.JSON(w, http.StatusOK, plan.ToResponse())
}

// ParticipantBalance handles GET /groups/{groupID}/participant-balance/{participantId}
// @Summary      Get one participant's balance
// @Tags         balances
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        participantId path string true "Participant ID"
// @Success      200 {object} response.APIResponse{data=ParticipantBalance}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/participant-balance/{participantId} [get]
func (h *Handler) ParticipantBalance(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantId"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	b, err := h.service.ParticipantBalance(r.Context(), groupID, participantID, userID)
	if err != nil {
		writeBalanceError(w, err, "Failed to compute balance")
		return
	}

	response.JSON(w, http.StatusOK, b)
}

// writeBalanceError maps service errors onto HTTP responses
func writeBalanceError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, ErrParticipantNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
