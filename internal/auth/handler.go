package auth

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/splitmint/splitmint/internal/user"
	"github.com/splitmint/splitmint/pkg/middleware"
	"github.com/splitmint/splitmint/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service *Service
}

// NewHandler creates a new auth handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for auth endpoints. Register, login and
// refresh are open; change-password runs behind the supplied auth
// middleware.
func (h *Handler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Post("/register", h.Register)
	r.Post("/login", h.Login)
	r.Post("/refresh", h.Refresh)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/change-password", h.ChangePassword)
	})

	return r
}

// Register handles POST /auth/register
// @Summary      Register a new account
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RegisterRequest true "Registration request"
// @Success      201 {object} response.APIResponse{data=user.UserResponse}
// @Failure      409 {object} response.APIResponse
// @Router       /auth/register [post]
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	req.FullName = strings.TrimSpace(req.FullName)
	if !strings.Contains(req.Email, "@") {
		response.BadRequest(w, "Invalid email address")
		return
	}
	if req.FullName == "" || len(req.FullName) > 255 {
		response.BadRequest(w, "Full name must be between 1 and 255 characters")
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 100 {
		response.BadRequest(w, "Password must be between 8 and 100 characters")
		return
	}

	u, err := h.service.Register(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to register user")
		return
	}

	response.JSON(w, http.StatusCreated, u.ToResponse())
}

// Login handles POST /auth/login
// @Summary      Login and receive a token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body LoginRequest true "Login request"
// @Success      200 {object} response.APIResponse{data=TokenResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/login [post]
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		response.BadRequest(w, "Email and password are required")
		return
	}

	tokens, err := h.service.Login(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to login")
		return
	}

	response.JSON(w, http.StatusOK, tokens)
}

// Refresh handles POST /auth/refresh
// @Summary      Exchange a refresh token for a new token pair
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body RefreshRequest true "Refresh request"
// @Success      200 {object} response.APIResponse{data=TokenResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		response.BadRequest(w, "Refresh token is required")
		return
	}

	tokens, err := h.service.Refresh(r.Context(), &req)
	if err != nil {
		writeAuthError(w, err, "Failed to refresh tokens")
		return
	}

	response.JSON(w, http.StatusOK, tokens)
}

// ChangePassword handles POST /auth/change-password
// @Summary      Change the current user's password
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body ChangePasswordRequest true "Password change request"
// @Success      200 {object} response.APIResponse
// @Failure      400 {object} response.APIResponse
// @Router       /auth/change-password [post]
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.CurrentPassword == "" {
		response.BadRequest(w, "Current password is required")
		return
	}
	if len(req.NewPassword) < 8 || len(req.NewPassword) > 100 {
		response.BadRequest(w, "New password must be between 8 and 100 characters")
		return
	}

	if err := h.service.ChangePassword(r.Context(), userID, &req); err != nil {
		writeAuthError(w, err, "Failed to change password")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Password changed successfully"})
}

// writeAuthError maps service errors onto HTTP responses
func writeAuthError(w http.ResponseWriter, err error, fallback string) {
	switch {
	case errors.Is(err, user.ErrEmailTaken):
		response.Conflict(w, err.Error())
	case errors.Is(err, user.ErrUserNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, ErrInvalidCredentials):
		response.Unauthorized(w, err.Error())
	case errors.Is(err, ErrInvalidToken), errors.Is(err, ErrWrongTokenUse):
		response.Unauthorized(w, "Invalid refresh token")
	case errors.Is(err, ErrWrongPassword):
		response.BadRequest(w, err.Error())
	default:
		response.InternalError(w, fallback)
	}
}
