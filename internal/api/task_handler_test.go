package api_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/api"
	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/service"
)

type taskHandlerFixture struct {
	tasks    *mocks.MockTaskStore
	statuses *mocks.MockTaskStatusStore
	users    *mocks.MockUserStore
	labels   *mocks.MockLabelStore
	router   *chi.Mux
}

func newTaskHandlerFixture(t *testing.T) *taskHandlerFixture {
	t.Helper()

	f := &taskHandlerFixture{
		tasks:    mocks.NewMockTaskStore(),
		statuses: mocks.NewMockTaskStatusStore(),
		users:    mocks.NewMockUserStore(),
		labels:   mocks.NewMockLabelStore(),
	}
	svc := service.NewTaskService(f.tasks, f.statuses, f.users, f.labels, mocks.NewMockTxRunner(), nil)
	handler := api.NewTaskHandler(svc)

	draft, err := domain.NewTaskStatus("Draft", "draft")
	require.NoError(t, err)
	f.statuses.AddStatus(draft)

	f.router = chi.NewRouter()
	f.router.Get("/api/tasks", handler.List)
	f.router.Post("/api/tasks", handler.Create)
	f.router.Get("/api/tasks/{id}", handler.Get)
	f.router.Put("/api/tasks/{id}", handler.Update)
	f.router.Delete("/api/tasks/{id}", handler.Delete)
	return f
}

func (f *taskHandlerFixture) do(method, target, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
	}
	rec := httptest.NewRecorder()
	f.router.ServeHTTP(rec, req)
	return rec
}

func (f *taskHandlerFixture) seedTask(t *testing.T, title string) *domain.Task {
	t.Helper()
	task, err := domain.NewTask(title, 1)
	require.NoError(t, err)
	task.StatusSlug = "draft"
	return f.tasks.AddTask(task)
}

func TestTaskHandlerCreate(t *testing.T) {
	t.Parallel()

	t.Run("valid payload returns 201 with the wire format", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		rec := f.do(http.MethodPost, "/api/tasks",
			`{"title":"Write the report","status":"draft","content":"First pass"}`)

		require.Equal(t, http.StatusCreated, rec.Code)

		var resp map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, "Write the report", resp["title"])
		assert.Equal(t, "draft", resp["status"])
		assert.Equal(t, "First pass", resp["content"])
		assert.Nil(t, resp["assignee_id"])
		assert.Equal(t, []any{}, resp["taskLabelIds"])
		assert.Regexp(t, `^\d{4}-\d{2}-\d{2}$`, resp["createdAt"])
	})

	t.Run("unknown status slug returns 404", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		rec := f.do(http.MethodPost, "/api/tasks",
			`{"title":"Write the report","status":"no-such-status"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("missing title returns 400", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		rec := f.do(http.MethodPost, "/api/tasks", `{"status":"draft"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerList(t *testing.T) {
	t.Parallel()

	t.Run("no filter returns the whole listing", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		for i := 0; i < 12; i++ {
			f.seedTask(t, "Task")
		}

		rec := f.do(http.MethodGet, "/api/tasks", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 12)
	})

	t.Run("filtered listing is paged ten per page", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		for i := 0; i < 12; i++ {
			f.seedTask(t, "Report")
		}
		f.seedTask(t, "Unrelated")

		rec := f.do(http.MethodGet, "/api/tasks?titleCont=repo", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "12", rec.Header().Get("X-Total-Count"))

		var resp []api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 10)

		rec = f.do(http.MethodGet, "/api/tasks?titleCont=repo&page=2", "")
		require.Equal(t, http.StatusOK, rec.Code)
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp, 2)
	})

	t.Run("filters combine with AND", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		assignee := seedAPIUser(t, f.users, "jack@google.com")

		match := f.seedTask(t, "Report")
		match.AssigneeID = &assignee.ID
		f.seedTask(t, "Report")

		rec := f.do(http.MethodGet, "/api/tasks?titleCont=report&assigneeId=1", "")

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "1", rec.Header().Get("X-Total-Count"))
	})

	t.Run("malformed assigneeId returns 400", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		rec := f.do(http.MethodGet, "/api/tasks?assigneeId=abc", "")

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestTaskHandlerUpdate(t *testing.T) {
	t.Parallel()

	t.Run("explicit null clears the assignee", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		assignee := seedAPIUser(t, f.users, "jack@google.com")
		task := f.seedTask(t, "Report")
		task.AssigneeID = &assignee.ID

		rec := f.do(http.MethodPut, "/api/tasks/1", `{"assignee_id":null}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp api.TaskResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Nil(t, resp.AssigneeID)
	})

	t.Run("unknown status slug fails the whole update", func(t *testing.T) {
		f := newTaskHandlerFixture(t)
		f.seedTask(t, "Report")

		rec := f.do(http.MethodPut, "/api/tasks/1",
			`{"title":"Changed","status":"no-such-status"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Report", f.tasks.Tasks[1].Title)
	})

	t.Run("missing task returns 404", func(t *testing.T) {
		f := newTaskHandlerFixture(t)

		rec := f.do(http.MethodPut, "/api/tasks/42", `{"title":"Changed"}`)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestTaskHandlerDelete(t *testing.T) {
	t.Parallel()

	f := newTaskHandlerFixture(t)
	f.seedTask(t, "Report")

	rec := f.do(http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = f.do(http.MethodDelete, "/api/tasks/1", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
