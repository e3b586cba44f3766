package bill

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/splitbuddy/splitbuddy/internal/ratelimit"
	"github.com/splitbuddy/splitbuddy/internal/receipt"
	"github.com/splitbuddy/splitbuddy/pkg/response"
)

// Handler handles HTTP requests for bill operations
type Handler struct {
	service       *Service
	createLimiter *ratelimit.Limiter
	imageLimiter  *ratelimit.Limiter
}

// NewHandler creates a new bill handler
func NewHandler(service *Service, createLimiter, imageLimiter *ratelimit.Limiter) *Handler {
	return &Handler{service: service, createLimiter: createLimiter, imageLimiter: imageLimiter}
}

// Routes returns the router for bill endpoints
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()

	r.With(h.createLimiter.Middleware(ratelimit.PerUser)).Post("/", h.Create)
	r.With(h.imageLimiter.Middleware(ratelimit.PerUser)).Post("/process-image", h.ProcessImage)
	r.Get("/{id}", h.GetByID)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
	r.Get("/{id}/items", h.GetItems)
	r.Get("/{id}/split", h.GetSplit)

	return r
}

// Create handles POST /bills
// @Summary      Create a new bill
// @Description  Create an empty bill in a group
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        request body CreateBillRequest true "Bill creation request"
// @Success      201 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      429 {object} response.APIResponse
// @Router       /bills [post]
func (h *Handler) Create(w http.ResponseWriter, r *http.Request) {
	var req CreateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}
	if req.GroupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}

	bill, err := h.service.Create(r.Context(), &req)
	if err != nil {
		if errors.Is(err, ErrGroupNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to create bill")
		return
	}

	response.JSON(w, http.StatusCreated, bill.ToResponse())
}

// GetByID handles GET /bills/{id}
// @Summary      Get bill by ID
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [get]
func (h *Handler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	bill, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// Update handles PUT /bills/{id}
// @Summary      Update a bill
// @Description  Change the payer or date of a bill
// @Tags         bills
// @Accept       json
// @Produce      json
// @Param        id path string true "Bill ID"
// @Param        request body UpdateBillRequest true "Fields to update"
// @Success      200 {object} response.APIResponse{data=BillResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [put]
func (h *Handler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	bill, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNothingToDo) || errors.Is(err, ErrInvalidDate) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to update bill")
		return
	}

	response.JSON(w, http.StatusOK, bill.ToResponse())
}

// Delete handles DELETE /bills/{id}
// @Summary      Delete a bill
// @Description  Delete a bill together with its items and votes
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id} [delete]
func (h *Handler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.service.Delete(r.Context(), id); err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to delete bill")
		return
	}

	response.JSON(w, http.StatusOK, map[string]string{
		"message": "Bill and all associated items and votes have been deleted",
	})
}

// GetItems handles GET /bills/{id}/items
// @Summary      List bill items with voters
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=[]ItemWithVotesResponse}
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/items [get]
func (h *Handler) GetItems(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	items, err := h.service.GetItems(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to get bill items")
		return
	}

	response.JSON(w, http.StatusOK, items)
}

// GetSplit handles GET /bills/{id}/split
// @Summary      Compute the bill split
// @Description  Compute what each member owes based on recorded votes
// @Tags         bills
// @Produce      json
// @Param        id path string true "Bill ID"
// @Success      200 {object} response.APIResponse{data=split.SplitResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Router       /bills/{id}/split [get]
func (h *Handler) GetSplit(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	result, err := h.service.GetSplit(r.Context(), id)
	if err != nil {
		if errors.Is(err, ErrBillNotFound) {
			response.NotFound(w, err.Error())
			return
		}
		if errors.Is(err, ErrNoPayer) {
			response.BadRequest(w, err.Error())
			return
		}
		response.InternalError(w, "Failed to compute split")
		return
	}

	response.JSON(w, http.StatusOK, result)
}

// ProcessImage handles POST /bills/process-image
// @Summary      Create a bill from a receipt image
// @Description  Analyze an uploaded receipt photo and create a bill with its line items
// @Tags         bills
// @Accept       multipart/form-data
// @Produce      json
// @Param        file formData file true "Receipt image (JPEG, PNG, GIF, BMP, WEBP, or TIFF, max 10MB)"
// @Param        group_id formData string true "Group the bill belongs to"
// @Param        uploaded_by formData string false "User uploading the receipt"
// @Success      201 {object} response.APIResponse{data=ProcessImageResponse}
// @Failure      400 {object} response.APIResponse
// @Failure      404 {object} response.APIResponse
// @Failure      413 {object} response.APIResponse
// @Failure      429 {object} response.APIResponse
// @Router       /bills/process-image [post]
func (h *Handler) ProcessImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, receipt.MaxFileSize+4096)
	if err := r.ParseMultipartForm(receipt.MaxFileSize); err != nil {
		response.PayloadTooLarge(w, "File exceeds the maximum allowed size")
		return
	}

	groupID := r.FormValue("group_id")
	if groupID == "" {
		response.BadRequest(w, "group_id is required")
		return
	}
	var uploadedBy *string
	if v := r.FormValue("uploaded_by"); v != "" {
		uploadedBy = &v
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.BadRequest(w, "file is required")
		return
	}
	defer file.Close()

	imageData, err := io.ReadAll(file)
	if err != nil {
		response.InternalError(w, "Failed to read uploaded file")
		return
	}

	result, err := h.service.ProcessImage(r.Context(), groupID, uploadedBy, imageData)
	if err != nil {
		switch {
		case errors.Is(err, ErrGroupNotFound):
			response.NotFound(w, err.Error())
		case errors.Is(err, receipt.ErrFileTooLarge):
			response.PayloadTooLarge(w, err.Error())
		case errors.Is(err, receipt.ErrNotAnImage), errors.Is(err, receipt.ErrImageDimensions),
			errors.Is(err, receipt.ErrEmptyReceipt):
			response.BadRequest(w, err.Error())
		case errors.Is(err, receipt.ErrExtractionFailed):
			response.BadRequest(w, "Could not read the receipt, try a clearer photo")
		default:
			response.InternalError(w, "Failed to process receipt image")
		}
		return
	}

	response.JSON(w, http.StatusCreated, result)
}
