package vote

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for vote operations
type Handler struct {
	service *Service
}

// NewHandler creates a new vote handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for vote endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Delete("/{id}", h.Delete)

	return r
}

// Create handles POST /votes
// @Summary      Record a vote
// @Description  Record that a user ate (or did not eat) an item
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        request body CreateVoteRequest true "Vote creation request"
// @Success      201 {object} response.APIResponse{data=VoteResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /votes [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.ItemID == "" || req.UserID == "" {
		response.BadRequest(w, "item_id and user_id are required")
		return
	}

	vote, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrDuplicate) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create vote")
		return
	}

	response.JSON(w, http.StatusCreated, vote.ToResponse())
}

// GetByID handles GET /votes/{id}
// @Summary      Get vote by ID
// @Tags         votes
// @Produce      json
// @Param        id path string true "Vote ID"
// @Success      200 {object} response.APIResponse{data=VoteResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /votes/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	vote, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrVoteNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get vote")
		return
	}

	response.JSON(w, http.StatusOK, vote.ToResponse())
}

// Delete handles DELETE /votes/{id}
// @Summary      Delete a vote
// @Tags         votes
// @Produce      json
// @Param        id path string true "Vote ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /votes/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrVoteNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete vote")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "Vote has been deleted"})
}
