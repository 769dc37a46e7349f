package api

import (
	"net/http"
	"strconv"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/service"
)

// LabelHandler handles label API requests.
type LabelHandler struct {
	labelService *service.LabelService
}

// NewLabelHandler creates a new LabelHandler with the given dependencies.
func NewLabelHandler(labelService *service.LabelService) *LabelHandler {
	return &LabelHandler{labelService: labelService}
}

// List handles GET /api/labels.
func (h *LabelHandler) List(w http.ResponseWriter, r *http.Request) {
	labels, err := h.labelService.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(labels)))
	shared.RespondWithJSON(w, r, http.StatusOK, toLabelResponses(labels))
}

// Get handles GET /api/labels/{id}.
func (h *LabelHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	label, err := h.labelService.Get(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toLabelResponse(label))
}

// Create handles POST /api/labels.
func (h *LabelHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params service.CreateLabelParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	label, err := h.labelService.Create(r.Context(), params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toLabelResponse(label))
}

// Update handles PUT /api/labels/{id}.
func (h *LabelHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var params service.UpdateLabelParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	label, err := h.labelService.Update(r.Context(), id, params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toLabelResponse(label))
}

// Delete handles DELETE /api/labels/{id}. Labels still attached to tasks
// respond with 409.
func (h *LabelHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.labelService.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
