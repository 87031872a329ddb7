package api

import (
	"net/http"
	"strings"

	"github.com/SreekarSamrudh/e-shop-central/internal/middleware"
	"github.com/SreekarSamrudh/e-shop-central/internal/models"
)

// SignUpHandler handles POST /api/v1/auth/signup
func (a *App) SignUpHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignUpRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	req.Email = strings.TrimSpace(req.Email)
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		respondError(w, http.StatusBadRequest, "valid email required")
		return
	}
	if len(req.Password) < 8 {
		respondError(w, http.StatusBadRequest, "password must be at least 8 characters")
		return
	}

	resp, err := a.userService.SignUp(r.Context(), req.Email, req.Password, req.Name, req.Role)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, resp)
}

// SignInHandler handles POST /api/v1/auth/signin
func (a *App) SignInHandler(w http.ResponseWriter, r *http.Request) {
	var req models.SignInRequest
	if err := decodeJSON(r, &req); err != nil || req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := a.userService.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// MeHandler handles GET /api/v1/auth/me: the current user plus their
// profile, which is created lazily when missing.
func (a *App) MeHandler(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserIDFrom(r.Context())

	user, err := a.userService.GetUser(r.Context(), userID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	profile, err := a.profileService.GetOrCreateProfile(r.Context(), userID)
	if err != nil {
		a.respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"user": user, "profile": profile})
}
