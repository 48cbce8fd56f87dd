package group

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterCollection attaches the collection endpoints to the /groups
// router
func (h *Handler) RegisterCollection(r chi.Router) {
	r.Post("/", h.Create)
	r.Get("/", h.List)
}

// RegisterItem attaches the single-group endpoints to the
// /groups/{groupID} router, which is shared with the participant, expense
// and balance routes
func (h *Handler) RegisterItem(r chi.Router) {
	r.Get("/", h.GetByID)
	r.Put("/", h.Update)
	r.Delete("/", h.Delete)
}

// Create handles POST /groups
// @Summary      Create a new group
// @Description  Create an expense group owned by the authenticated user
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" || len(req.Name) > 100 {
		response.BadRequest(w, "Group name must be between 1 and 100 characters")
		return
	}

	group, err := h.service.Create(r.Context(), userID, &req)
	if err != nil {
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// List handles GET /groups
// @Summary      List my groups
// @Description  List all groups owned by the authenticated user with summary stats
// @Tags         groups
// @Produce      json
// @Success      200 {object} response.APIResponse{data=[]GroupResponse}
// @Router       /groups [get]
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	groups, err := h.service.ListByOwner(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "Failed to list groups")
		return
	}

	responses := make([]*GroupResponse, len(groups))
	for i, g := range groups {
		responses[i] = g.ToResponse()
	}

	response.JSON(w, http.StatusOK, responses)
}

// GetByID handles GET /groups/{groupID}
// @Summary      Get group by ID
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	group, err := h.service.GetOwned(r.Context(), id, userID)
	if err != nil {
		writeGroupError(w, err, "Failed to get group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Update handles PUT /groups/{groupID}
// @Summary      Update a group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Param        request body UpdateGroupRequest true "Group update request"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	var req UpdateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	group, err := h.service.Update(r.Context(), id, userID, &req)
	if err != nil {
		writeGroupError(w, err, "Failed to update group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// Delete handles DELETE /groups/{groupID}
// @Summary      Delete a group
// @Description  Delete a group along with its participants, expenses and splits
// @Tags         groups
// @Produce      json
// @Param        groupID path string true "Group ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{groupID} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	id, err := uuid.Parse(chi.URLParam(r, "groupID"))
	if err != nil {
		response.BadRequest(w, "Invalid group ID")
		return
	}

	if err := h.service.Delete(r.Context(), id, userID); err != nil {
		writeGroupError(w, err, "Failed to delete group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Group deleted successfully"})
}

// writeGroupError maps service errors onto HTTP responses
func writeGroupError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrGroupNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrNotAuthorized):
		response.Forbidden(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
