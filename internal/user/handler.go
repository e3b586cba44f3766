package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/internal/ratelimit"
	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for user operations
type Handler struct {
	service       *Service
	createLimiter *ratelimit.Limiter
}

// NewHandler creates a new user handler
func NewHandler(service *Service, createLimiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, createLimiter: createLimiter}
}

// Routes returns the router for user endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.createLimiter.Middleware(ratelimit.PerIP)).Post("/", h.Create)
	r.Get("/search", h.Search)
	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/groups", h.ListGroups)

	return r
}

// Create handles POST /users
// @Summary      Create a new user
// @Description  Create a user with a unique email address
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User creation request"
// @Success      201 {object} response.APIResponse{data=UserResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /users [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" || req.Email == "" {
		response.BadRequest(w, "name and email are required")
		return
	}

	user, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyInUse) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create user")
		return
	}

	response.JSON(w, http.StatusCreated, user.ToResponse())
}

// Search handles GET /users/search
// @Summary      Search users
// @Description  Search users by email or name to add to groups
// @Tags         users
// @Produce      json
// @Param        email query string false "Exact email"
// @Param        name query string false "Partial name"
// @Success      200 {object} response.APIResponse{data=[]UserResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /users/search [get]
func (h *Handler) Search(w http.ResponseWriter, r *http.Request) {
	email := r.URL.Query().Get("email")
	name := r.URL.Query().Get("name")

	users, err := h.service.Search(r.Context(), email, name)
	if err != nil {
		if errors.Is(err, ErrEmptySearch) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to search users")
		return
	}

	results := make([]*UserResponse, len(users))
	for i, u := range users {
		results[i] = u.ToResponse()
	}

	response.JSON(w, http.StatusOK, results)
}

// GetByID handles GET /users/{id}
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=UserResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user")
		return
	}

	response.JSON(w, http.StatusOK, user.ToResponse())
}

// ListGroups handles GET /users/{id}/groups
// @Summary      List a user's groups
// @Tags         users
// @Produce      json
// @Param        id path string true "User ID"
// @Success      200 {object} response.APIResponse{data=[]GroupSummary}
// @Failure      404 {object} response.APIResponse
// @Router       /users/{id}/groups [get]
func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	groups, err := h.service.ListGroups(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get user groups")
		return
	}

	if groups == nil {
		groups = []*GroupSummary{}
	}
	response.JSON(w, http.StatusOK, groups)
}
