package item

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for item operations
type Handler struct {
	service *Service
}

// NewHandler creates a new item handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for item endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Post("/{id}/vote", h.ToggleVote)

	return r
}

// Create handles POST /items
// @Summary      Create a new item
// @Description  Add a charge line to a bill
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        request body CreateItemRequest true "Item creation request"
// @Success      201 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.BillID == "" || req.Name == "" {
		response.BadRequest(w, "bill_id and name are required")
		return
	}

	item, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNegativePrice) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create item")
		return
	}

	response.JSON(w, http.StatusCreated, item.ToResponse())
}

// GetByID handles GET /items/{id}
// @Summary      Get item by ID
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	item, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get item")
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}

// Update handles PUT /items/{id}
// @Summary      Update an item
// @Description  Update item name, price, or tax/tip flag
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body UpdateItemRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=ItemResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNothingToDo) || errors.Is(err, ErrNegativePrice) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update item")
		return
	}

	response.JSON(w, http.StatusOK, item.ToResponse())
}

// Delete handles DELETE /items/{id}
// @Summary      Delete an item
// @Description  Delete an item and all its votes
// @Tags         items
// @Produce      json
// @Param        id path string true "Item ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete item")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Item and all associated votes have been deleted",
	})
}

// ToggleVote handles POST /items/{id}/vote
// @Summary      Toggle a vote on an item
// @Description  Record whether a user ate an item; repeated votes update in place
// @Tags         items
// @Accept       json
// @Produce      json
// @Param        id path string true "Item ID"
// @Param        request body ToggleVoteRequest true "Vote request"
// @Success      200 {object} response.APIResponse{data=VoteResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /items/{id}/vote [post]
func (h *Handler) ToggleVote(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req ToggleVoteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.UserID == "" {
		response.BadRequest(w, "user_id is required")
		return
	}

	vote, err := h.service.ToggleVote(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrItemNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to toggle vote")
		return
	}

	response.JSON(w, http.StatusOK, vote.ToResponse())
}
