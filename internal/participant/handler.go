package participant

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splitmint/splitmint/internal/group"
	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for participant operations.
// Routes are mounted under /groups/{groupID}/participants.
type Handler struct {
	service *Service
}

// NewHandler creates a new participant handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for participant endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/", h.List)
	r.Get("/{participantId}", h.GetByID)
	r.Put("/{participantId}", h.Update)
	r.Delete("/{participantId}", h.Delete)

	return r
}

// requestIDs pulls the authenticated user and the group ID out of the request
func requestIDs(w http.ResponseWriter, r *http.Request) (userID, groupID uuid.UUID, ok bool) {
	userID, authed := middleware.GetUserID(r.Context())
	if !authed {
		response.Unauthorized(w, "Authentication required")
		return uuid.Nil, uuid.Nil, false
	}

	groupID, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return uuid.Nil, uuid.Nil, false
	}

	return userID, groupID, true
}

// Create handles POST /groups/{groupID}/participants
// @Summary      Add a participant
// @Description  Add a participant to a group (maximum 4 per group, unique name)
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body CreateParticipantRequest true "Participant creation request"
// @Success      201 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups/{groupID}/participants [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	var req CreateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		response.BadRequest(w, "Participant name is required")
		return
	}

	p, err := h.service.Create(r.Context(), groupID, userID, &req)
	if err != nil {
		writeParticipantError(w, err, "Failed to create participant")
		return
	}

	response.JSON(w, http.StatusCreated, p.ToResponse())
}

// List handles GET /groups/{groupID}/participants
// @Summary      List participants
// @Tags         participants
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]ParticipantResponse}
// @Router       /groups/{groupID}/participants [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	participants, err := h.service.ListByGroup(r.Context(), groupID, userID)
	if err != nil {
		writeParticipantError(w, err, "Failed to list participants")
		return
	}

	responses := make([]*ParticipantResponse, len(participants))
	for i, p := range participants {
		responses[i] = p.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /groups/{groupID}/participants/{participantId}
// @Summary      Get participant by ID
// @Tags         participants
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        participantId path string true "Participant ID"
// @Success      200 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/participants/{participantId} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantId"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	p, err := h.service.Get(r.Context(), groupID, participantID, userID)
	if err != nil {
		writeParticipantError(w, err, "Failed to get participant")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Update handles PUT /groups/{groupID}/participants/{participantId}
// @Summary      Update a participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        participantId path string true "Participant ID"
// @Param        request body UpdateParticipantRequest true "Participant update request"
// @Success      200 {object} response.APIResponse{data=ParticipantResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID}/participants/{participantId} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantId"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	var req UpdateParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	p, err := h.service.Update(r.Context(), groupID, participantID, userID, &req)
	if err != nil {
		writeParticipantError(w, err, "Failed to update participant")
		return
	}

	response.JSON(w, http.StatusOK, p.ToResponse())
}

// Delete handles DELETE /groups/{groupID}/participants/{participantId}
// @Summary      Remove a participant
// @Description  Remove a participant who appears in no expenses
// @Tags         participants
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        participantId path string true "Participant ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/{groupID}/participants/{participantId} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, groupID, ok := requestIDs(w, r)
	if !ok {
		return
	}

	participantID, err := uuid.Parse(chi.URLParam(r, "participantId"))
	if err != nil {
		response.BadRequest(w, "Invalid participant ID")
		return
	}

	if err := h.service.Delete(r.Context(), groupID, participantID, userID); err != nil {
		writeParticipantError(w, err, "Failed to delete participant")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Participant removed successfully"})
}

// writeParticipantError maps service errors onto HTTP responses
func writeParticipantError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, group.ErrGroupNotFound), errors.Is(err, ErrParticipantNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, group.ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	case errors.Is(err, ErrGroupFull), errors.Is(err, ErrNameTaken):
		response.BadRequest(w, err.Error())
	case errors.Is(err, ErrHasActivity):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
