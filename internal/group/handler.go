package group

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for group operations
type Handler struct {
	service *Service
}

// NewHandler creates a new group handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns the router for group endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.Post("/", h.Create)

	// Membership management
	r.Post("/members", h.AddMember)
	r.Get("/members/{membershipId}", h.GetMember)
	r.Delete("/members/{membershipId}", h.RemoveMember)

	r.Get("/{id}", h.GetByID)
	r.Get("/{id}/members", h.ListMembers)
	r.Get("/{id}/bills", h.ListBills)

	return r
}

// Create handles POST /groups
// @Summary      Create a new group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body CreateGroupRequest true "Group creation request"
// @Success      201 {object} response.APIResponse{data=GroupResponse}
// @Failure      400 {object} response.APIResponse
// @Router       /groups [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.Name == "" {
		response.BadRequest(w, "name is required")
		return
	}

	group, err := h.service.Create(r.Context(), &req)
	if err != nil {
		response.InternalError(w, "Failed to create group")
		return
	}

	response.JSON(w, http.StatusCreated, group.ToResponse())
}

// GetByID handles GET /groups/{id}
// @Summary      Get group by ID
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=GroupResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	group, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group")
		return
	}

	response.JSON(w, http.StatusOK, group.ToResponse())
}

// ListMembers handles GET /groups/{id}/members
// @Summary      List group members
// @Description  Get all members of a group with user details
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]Member}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/members [get]
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	members, err := h.service.ListMembers(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group members")
		return
	}

	if members == nil {
		members = []*Member{}
	}
	response.JSON(w, http.StatusOK, members)
}

// ListBills handles GET /groups/{id}/bills
// @Summary      List group bills
// @Description  Get all bills for a group with their summed totals
// @Tags         groups
// @Produce      json
// @Param        id path string true "Group ID"
// @Success      200 {object} response.APIResponse{data=[]BillSummaryResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/{id}/bills [get]
func (h *Handler) ListBills(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bills, err := h.service.ListBills(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group bills")
		return
	}

	results := make([]*BillSummaryResponse, len(bills))
	for i, b := range bills {
		results[i] = b.ToResponse()
	}

	response.JSON(w, http.StatusOK, results)
}

// AddMember handles POST /groups/members
// @Summary      Add user to group
// @Tags         groups
// @Accept       json
// @Produce      json
// @Param        request body AddMemberRequest true "Membership request"
// @Success      201 {object} response.APIResponse{data=MembershipResponse}
// @Failure      404 {object} response.APIResponse
// @Failure      409 {object} response.APIResponse
// @Router       /groups/members [post]
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID == "" || req.UserID == "" {
		response.BadRequest(w, "group_id and user_id are required")
		return
	}

	membership, err := h.service.AddMember(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrAlreadyMember) {
			response.Conflict(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to add user to group")
		return
	}

	response.JSON(w, http.StatusCreated, membership.ToResponse())
}

// GetMember handles GET /groups/members/{membershipId}
// @Summary      Get group member
// @Tags         groups
// @Produce      json
// @Param        membershipId path string true "Membership ID"
// @Success      200 {object} response.APIResponse{data=MembershipResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /groups/members/{membershipId} [get]
func (h *Handler) GetMember(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membershipId")

	membership, err := h.service.GetMember(r.Context(), membershipID)
	if err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get group member")
		return
	}

	response.JSON(w, http.StatusOK, membership.ToResponse())
}

// RemoveMember handles DELETE /groups/members/{membershipId}
// @Summary      Remove user from group
// @Tags         groups
// @Produce      json
// @Param        membershipId path string true "Membership ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /groups/members/{membershipId} [delete]
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	membershipID := chi.URLParam(r, "membershipId")

	if err := h.service.RemoveMember(r.Context(), membershipID); err != nil {
		if errors.Is(err, ErrMembershipNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to remove user from group")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{"message": "User has been removed from the group"})
}
