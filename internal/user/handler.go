package user

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for the current user's profile
type Handler struct {
	service *Service
}

// NewHandler creates a new user handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Get("/me", h.GetMe)
	r.Put("/me", h.UpdateMe)

	return r
}

// GetMe handles GET /users/me
// @Summary      Get current user
// @Tags         users
// @Produce      json
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /users/me [get]
func (h *Handler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	user, err := h.service.Get(r.Context(), userID)
	if err != nil {
		writeUserError(w, err, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// UpdateMe handles PUT /users/me
// @Summary      Update current user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body UpdateUserRequest true "Profile update request"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /users/me [put]
func (h *Handler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Email != nil {
		email := strings.TrimSpace(strings.ToLower(*req.Email))
		if !strings.Contains(email, "@") {
			response.BadRequest(w, "Invalid email address")
			return
		}
		req.Email = &email
	}
	if req.FullName != nil {
		name := strings.TrimSpace(*req.FullName)
		if name == "" || len(name) > 255 {
			response.BadRequest(w, "Full name must be between 1 and 255 characters")
			return
		}
		req.FullName = &name
	}

	user, err := h.service.Update(r.Context(), userID, &req)
	if err != nil {
		writeUserError(w, err, "Failed to update user")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// writeUserError maps service errors onto HTTP responses
func writeUserError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, ErrUserNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrEmailTaken):
		response.Conflict(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
