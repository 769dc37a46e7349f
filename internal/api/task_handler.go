package api

import (
	"net/http"
	"strconv"

	"github.com/mlukashev/task-manager-api/internal/api/shared"
	"github.com/mlukashev/task-manager-api/internal/service"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// defaultPageSize is the page size for filtered task listings.
const defaultPageSize = 10

// TaskHandler handles task API requests.
type TaskHandler struct {
	taskService *service.TaskService
}

// NewTaskHandler creates a new TaskHandler with the given dependencies.
func NewTaskHandler(taskService *service.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

// List handles GET /api/tasks. Without filter parameters the whole listing
// is returned; with any filter parameter the result is paged, 10 per page.
// Both paths emit the total match count in X-Total-Count.
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	filter, err := parseTaskFilter(r)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if filter.IsEmpty() {
		tasks, err := h.taskService.List(r.Context())
		if err != nil {
			respondWithMappedError(w, r, err)
			return
		}
		w.Header().Set("X-Total-Count", strconv.Itoa(len(tasks)))
		shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponses(tasks))
		return
	}

	page := parsePage(r)
	offset := (page - 1) * defaultPageSize

	tasks, total, err := h.taskService.Find(r.Context(), filter, defaultPageSize, offset)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.Header().Set("X-Total-Count", strconv.FormatInt(total, 10))
	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponses(tasks))
}

// Get handles GET /api/tasks/{id}.
func (h *TaskHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Create handles POST /api/tasks.
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	var params service.CreateTaskParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(r.Context(), params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, toTaskResponse(task))
}

// Update handles PUT /api/tasks/{id}.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var params service.UpdateTaskParams
	if err := shared.DecodeJSON(r, &params); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	task, err := h.taskService.Update(r.Context(), id, params)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, toTaskResponse(task))
}

// Delete handles DELETE /api/tasks/{id}.
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathID(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// parseTaskFilter reads the supported filter query parameters. Unknown
// parameters are ignored; malformed numeric parameters are a bad request.
func parseTaskFilter(r *http.Request) (store.TaskFilter, error) {
	var filter store.TaskFilter
	q := r.URL.Query()

	if v := q.Get("titleCont"); v != "" {
		filter.TitleCont = &v
	}
	if v := q.Get("status"); v != "" {
		filter.StatusSlug = &v
	}
	if v := q.Get("assigneeId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return store.TaskFilter{}, errInvalidQueryParam("assigneeId")
		}
		filter.AssigneeID = &id
	}
	if v := q.Get("labelId"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return store.TaskFilter{}, errInvalidQueryParam("labelId")
		}
		filter.LabelID = &id
	}
	return filter, nil
}

// parsePage reads the page query parameter, defaulting to the first page.
func parsePage(r *http.Request) int {
	v := r.URL.Query().Get("page")
	if v == "" {
		return 1
	}
	page, err := strconv.Atoi(v)
	if err != nil || page < 1 {
		return 1
	}
	return page
}
