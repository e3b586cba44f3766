package auth

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/internal/ratelimit"
	"github.com/splitbuddy/splitbuddy/pkg/middleware"
	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for authentication
type Handler struct {
	service      *Service
	loginLimiter *ratelimit.Limiter
}

// NewHandler creates a new auth handler
func NewHandler(service *Service, loginLimiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, loginLimiter: loginLimiter}
}

// Routes returns the router for auth endpoints. Login is public; the rest
// require the given auth middleware.
func (h *Handler) Routes(requireAuth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.With(h.loginLimiter.Middleware(ratelimit.PerIP)).Post("/google", h.GoogleLogin)

	r.Group(func(r chi.Router) {
		r.Use(requireAuth)
		r.Post("/refresh", h.Refresh)
		r.Post("/logout", h.Logout)
		r.Get("/me", h.Me)
	})

	return r
}

// GoogleLogin handles POST /auth/google
// @Summary      Authenticate with Google
// @Description  Verify a client-side Google ID token and issue a backend session token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request body GoogleAuthRequest true "Google ID token"
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/google [post]
func (h *Handler) GoogleLogin(w http.ResponseWriter, r *http.Request) {
	var req GoogleAuthRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.IDToken == "" {
		response.BadRequest(w, "id_token is required")
		return
	}

	token, u, err := h.service.Login(r.Context(), req.IDToken)
	if err != nil {
		if errors.Is(err, ErrInvalidGoogleToken) {
			response.Unauthorized(w, err.Error())
			return
		}
		response.InternalError(w, "Authentication failed")
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.service.TokenDuration(),
		User:        u.ToResponse(),
	})
}

// Refresh handles POST /auth/refresh
// @Summary      Refresh the session token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=AuthResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/refresh [post]
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	token, err := h.service.Refresh(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Unauthorized(w, "Unknown user")
			return
		}
		response.InternalError(w, "Token refresh failed")
		return
	}

	response.JSON(w, http.StatusOK, &AuthResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   h.service.TokenDuration(),
	})
}

// Logout handles POST /auth/logout
// @Summary      Log out
// @Description  Sessions are stateless JWTs; logout is handled client-side by discarding the token
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse
// @Router       /auth/logout [post]
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Successfully logged out",
	})
}

// Me handles GET /auth/me
// @Summary      Get the current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200 {object} response.APIResponse{data=user.UserResponse}
// @Failure      401 {object} response.APIResponse
// @Router       /auth/me [get]
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.GetIdentity(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return
	}

	u, err := h.service.GetUser(r.Context(), identity.UserID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.Unauthorized(w, "Unknown user")
			return
		}
		response.InternalError(w, "Failed to load user")
		return
	}

	response.JSON(w, http.StatusOK, u.ToResponse())
}
