package api

import (
	"net/http"
	"strconv"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/service"
)

// TaskStatusHandler handles task status API requests.
type TaskStatusHandler struct {
	statusService *service.TaskStatusService
}

// NewTaskStatusHandler creates a new TaskStatusHandler with the given dependencies.
func NewTaskStatusHandler(statusService *service.TaskStatusService) *TaskStatusHandler {
	return &TaskStatusHandler{statusService: statusService}
}

// List handles GET /api/task_statuses.
func (h *TaskStatusHandler) List(w http.ResponseWriter, r *http.Request) {
	statuses, err := h.statusService.List(r.Context())
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.Itoa(len(statuses)))
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskStatusResponses(statuses))
}

// Get handles GET /api/task_statuses/{id}.
func (h *TaskStatusHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	status, err := h.statusService.Get(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskStatusResponse(status))
}

// Create handles POST /api/task_statuses.
func (h *TaskStatusHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params service.CreateTaskStatusParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	status, err := h.statusService.Create(r.Context(), params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTaskStatusResponse(status))
}

// Update handles PUT /api/task_statuses/{id}.
func (h *TaskStatusHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var params service.UpdateTaskStatusParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	status, err := h.statusService.Update(r.Context(), id, params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskStatusResponse(status))
}

// Delete handles DELETE /api/task_statuses/{id}. Statuses still referenced
// by tasks respond with 409.
func (h *TaskStatusHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.statusService.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
