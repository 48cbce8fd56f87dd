package expense

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/expense/split"
	"github.com/splitmint/splitmint/internal/group"
	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for expense operations
type Handler struct {
	service *Service
}

// NewHandler creates a new expense handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// GroupRoutes returns the router for group-scoped expense endpoints,
// mounted under /groups/{groupID}/expenses
func (h *Handler) GroupRoutes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)

	return r
}

// Routes returns the router for expense endpoints addressed by expense ID
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /groups/{groupID}/expenses
// @Summary      Create a new expense
// @Description  Record an expense and compute its splits using the EQUAL, CUSTOM_AMOUNT or PERCENTAGE policy
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body CreateExpenseRequest true "Expense creation request"
// @Success      201 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups/{groupID}/expenses [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
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

	var req CreateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.Description = strings.TrimSpace(req.Description)
	if req.Description == "" || len(req.Description) > 500 {
		response.BadRequest(w, "Description must be between 1 and 500 characters")
		return
	}

	result, err := h.service.Create(r.Context(), groupID, userID, &req)
	if err != nil {
		writeExpenseError(w, err, "Failed to create expense")
		return
	}

	resp := result.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(result.Splits))
	for i, s := range result.Splits {
		resp.Splits[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusCreated, resp)
}

// List handles GET /groups/{groupID}/expenses
// @Summary      List expenses
// @Description  List a group's expenses with category, participant, date-range and search filters
// @Tags         expenses
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        category query string false "Filter by category"
// @Param        participant_id query string false "Filter by payer or split participant"
// @Param        date_from query string false "Earliest expense date (YYYY-MM-DD)"
// @Param        date_to query string false "Latest expense date (YYYY-MM-DD)"
// @Param        search query string false "Search in description"
// @Param        page query int false "Page number" default(1)
// @Param        per_page query int false "Items per page" default(20)
// @Success      200 {object} response.APIResponse{data=[]ExpenseResponse}
// @Router       /groups/{groupID}/expenses [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
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

	q := r.URL.Query()
	filter := &ListFilter{
		Category: q.Get("category"),
		DateFrom: q.Get("date_from"),
		DateTo:   q.Get("date_to"),
		Search:   q.Get("search"),
	}
	filter.Page, _ = strconv.Atoi(q.Get("page"))
	filter.PerPage, _ = strconv.Atoi(q.Get("per_page"))
	if pid := q.Get("participant_id"); pid != "" {
		id, err := uuid.Parse(pid)
		if err != nil {
			response.BadRequest(w, "Invalid participant ID")
			return
		}
		filter.ParticipantID = &id
	}

	expenses, total, err := h.service.List(r.Context(), groupID, userID, filter)
	if err != nil {
		writeExpenseError(w, err, "Failed to list expenses")
		return
	}

	responses := make([]*ExpenseResponse, len(expenses))
	for i, e := range expenses {
		responses[i] = e.ToResponse()
	}

	totalPages := (total + filter.PerPage - 1) / filter.PerPage
	meta := &response.Meta{
		Page:       filter.Page,
		PerPage:    filter.PerPage,
		Total:      total,
		TotalPages: totalPages,
	}

	response.JSONWithMeta(w, http.StatusOK, responses, meta)
}

// GetByID handles GET /expenses/{id}
// @Summary      Get expense by ID
// @Description  Get an expense with all its splits
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	result, err := h.service.Get(r.Context(), id, userID)
	if err != nil {
		writeExpenseError(w, err, "Failed to get expense")
		return
	}

	resp := result.Expense.ToResponse()
	resp.Splits = make([]*SplitResponse, len(result.Splits))
	for i, s := range result.Splits {
		resp.Splits[i] = s.ToResponse()
	}

	response.JSON(w, http.StatusOK, resp)
}

// Update handles PUT /expenses/{id}
// @Summary      Update an expense
// @Description  Edit an expense's description or category; amounts and splits are immutable
// @Tags         expenses
// @Accept       json
// @Produce      json
// @Param        id path string true "Expense ID"
// @Param        request body UpdateExpenseRequest true "Expense update request"
// @Success      200 {object} response.APIResponse{data=ExpenseResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	var req UpdateExpenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	e, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		writeExpenseError(w, err, "Failed to update expense")
		return
	}

	response.JSON(w, http.StatusOK, e.ToResponse())
}

// Delete handles DELETE /expenses/{id}
// @Summary      Delete an expense
// @Description  Delete an expense; its splits are removed with it
// @Tags         expenses
// @Produce      json
// @Param        id path string true "Expense ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /expenses/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		response.BadRequest(w, "Invalid expense ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeExpenseError(w, err, "Failed to delete expense")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Expense deleted successfully"})
}

// writeExpenseError maps service and allocator errors onto HTTP responses
func writeExpenseError(w http.ResponseWriter, err error, fallback string) {
	var sumErr *split.SumMismatchError
	var pctErr *split.PercentageSumError

	switch {
	case errors.Is(err, ErrExpenseNotFound), errors.Is(err, group.ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	case errors.As(err, &sumErr), errors.As(err, &pctErr),
		errors.Is(err, ErrPayerNotInGroup), errors.Is(err, ErrParticipantNotInGroup),
		errors.Is(err, ErrFutureDate), errors.Is(err, ErrBadDate),
		errors.Is(err, split.ErrNoParticipants), errors.Is(err, split.ErrNonPositiveAmount),
		errors.Is(err, split.ErrNonPositiveShare), errors.Is(err, split.ErrMissingAmount),
		errors.Is(err, split.ErrMissingPercentage), errors.Is(err, split.ErrPercentageOutOfRange),
		errors.Is(err, split.ErrDuplicateParticipant), errors.Is(err, split.ErrUnknownPolicy):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
