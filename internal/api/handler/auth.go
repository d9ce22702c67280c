package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/el-receso/cafeteria-service/internal/api"
	"github.com/el-receso/cafeteria-service/internal/middleware"
	"github.com/el-receso/cafeteria-service/internal/models"
)

// Authenticator is the slice of the auth service the handler needs.
type Authenticator interface {
	Register(ctx context.Context, req models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, username, password string) (string, *models.User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*models.User, error)
	ChangePassword(ctx context.Context, userID uuid.UUID, currentPassword, newPassword string) error
}

// CartClearer ends a session's cart on logout.
type CartClearer interface {
	Clear(ctx context.Context, sessionID string) error
}

// AuthHandler handles registration, login, logout and the dashboard
type AuthHandler struct {
	auth   Authenticator
	carts  CartClearer
	logger *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth Authenticator, carts CartClearer, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, carts: carts, logger: logger}
}

// Register handles POST /register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	user, err := h.auth.Register(r.Context(), req)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusCreated, user)
}

// Login handles POST /login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	token, user, err := h.auth.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, struct {
		Token string       `json:"token"`
		User  *models.User `json:"user"`
	}{Token: token, User: user})
}

// Logout handles POST /logout. The token itself is discarded by the
// client; the server-side session state to drop is the cart.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := middleware.GetSessionID(r.Context())
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	if err := h.carts.Clear(r.Context(), sessionID); err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "logged out"})
}

// Dashboard handles GET /dashboard
func (h *AuthHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	user, err := h.auth.GetUser(r.Context(), userID)
	if err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, user)
}

// ChangePassword handles PUT /password
func (h *AuthHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	userID, ok := currentUserID(r)
	if !ok {
		api.RespondJSON(w, http.StatusUnauthorized, api.ErrorResponse{Error: "unauthorized"})
		return
	}

	var req models.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		api.RespondJSON(w, http.StatusBadRequest, api.ErrorResponse{Error: "invalid request body"})
		return
	}

	if err := h.auth.ChangePassword(r.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		api.RespondError(w, h.logger, err)
		return
	}

	api.RespondJSON(w, http.StatusOK, struct {
		Message string `json:"message"`
	}{Message: "password changed"})
}

// currentUserID extracts the authenticated user's ID from the request context
func currentUserID(r *http.Request) (uuid.UUID, bool) {
	idStr, ok := middleware.GetUserID(r.Context())
	if !ok {
		return uuid.Nil, false
	}

	id, err := uuid.Parse(idStr)
	if err != nil {
		return uuid.Nil, false
	}
	return id, true
}
