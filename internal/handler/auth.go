package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/aria-creative/vitrine/internal/model"
	"github.com/aria-creative/vitrine/internal/server/middleware"
	"github.com/aria-creative/vitrine/internal/service"
)

// AuthHandler exposes the admin session endpoints: login, verify, refresh,
// logout, and profile.
type AuthHandler struct {
	authSvc *service.AuthService
	logger  *slog.Logger
	dev     bool
}

// NewAuthHandler creates an AuthHandler.
func NewAuthHandler(authSvc *service.AuthService, logger *slog.Logger, dev bool) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, logger: logger, dev: dev}
}

// loginResponse is the data-free top level of a successful login; token and
// user sit beside the envelope fields as the admin dashboard expects.
type loginResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Token   string          `json:"token"`
	User    model.AdminUser `json:"user"`
}

// Login authenticates the admin and returns a fresh session token.
// POST /api/admin/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "Corps de requête invalide")
		return
	}

	if errs := req.Validate(); errs != nil {
		writeValidationError(w, errs)
		return
	}

	token, user, err := h.authSvc.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			// Same answer for a wrong email and a wrong password.
			writeError(w, http.StatusUnauthorized, "Email ou mot de passe incorrect")
			return
		}
		writeInternal(w, h.logger, h.dev, "login", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Connexion réussie",
		Token:   token,
		User:    user,
	})
}

// Verify confirms the bearer token is still valid and echoes its claims.
// POST /api/admin/verify
func (h *AuthHandler) Verify(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	writeJSON(w, http.StatusOK, model.Response{
		Success: true,
		Message: "Token valide",
		Data:    claims.User(),
	})
}

// Refresh re-signs the current claims with a fresh 24-hour expiry.
// POST /api/admin/refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	token, err := h.authSvc.Refresh(claims)
	if err != nil {
		writeInternal(w, h.logger, h.dev, "refresh token", err)
		return
	}

	writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "Token renouvelé",
		Token:   token,
		User:    claims.User(),
	})
}

// Logout records the logout; tokens are stateless so the client simply
// discards its copy.
// POST /api/admin/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.authSvc.Logout(r.Context(), middleware.GetClaims(r.Context()))
	writeSuccess(w, http.StatusOK, "Déconnexion réussie", nil)
}

// Profile returns the authenticated admin's public identity.
// GET /api/admin/profile
func (h *AuthHandler) Profile(w http.ResponseWriter, r *http.Request) {
	claims := middleware.GetClaims(r.Context())
	writeSuccess(w, http.StatusOK, "", claims.User())
}
