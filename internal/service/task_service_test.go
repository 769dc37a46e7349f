package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/optional"
	"github.com/mlukashev/task-manager-api/internal/service"
	"github.com/mlukashev/task-manager-api/internal/store"
)

type taskServiceFixture struct {
	tasks    *mocks.MockTaskStore
	statuses *mocks.MockTaskStatusStore
	users    *mocks.MockUserStore
	labels   *mocks.MockLabelStore
	svc      *service.TaskService
}

func newTaskServiceFixture(t *testing.T) *taskServiceFixture {
	t.Helper()
	f := &taskServiceFixture{
		tasks:    mocks.NewMockTaskStore(),
		statuses: mocks.NewMockTaskStatusStore(),
		users:    mocks.NewMockUserStore(),
		labels:   mocks.NewMockLabelStore(),
	}
	f.svc = service.NewTaskService(f.tasks, f.statuses, f.users, f.labels, mocks.NewMockTxRunner(), nil)
	seedStatus(t, f.statuses, "Draft", "draft")
	seedStatus(t, f.statuses, "Published", "published")
	return f
}

func TestTaskServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("resolves the status slug", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:  "Write the report",
			Status: "draft",
		})

		require.NoError(t, err)
		assert.NotZero(t, task.ID)
		assert.Equal(t, "draft", task.StatusSlug)
		assert.Nil(t, task.AssigneeID)
		assert.Empty(t, task.LabelIDs)
	})

	t.Run("unknown status slug fails the operation", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		_, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:  "Write the report",
			Status: "no-such-status",
		})

		assert.ErrorIs(t, err, store.ErrTaskStatusNotFound)
		assert.Empty(t, f.tasks.Tasks)
	})

	t.Run("unknown assignee leaves the task unassigned", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:      "Write the report",
			Status:     "draft",
			AssigneeID: optional.Of(int64(99)),
		})

		require.NoError(t, err)
		assert.Nil(t, task.AssigneeID)
	})

	t.Run("known assignee is attached", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		assignee := seedUser(t, f.users, "jack@google.com")

		task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:      "Write the report",
			Status:     "draft",
			AssigneeID: optional.Of(assignee.ID),
		})

		require.NoError(t, err)
		require.NotNil(t, task.AssigneeID)
		assert.Equal(t, assignee.ID, *task.AssigneeID)
	})

	t.Run("missing label IDs are dropped", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		bug, err := domain.NewLabel("bug")
		require.NoError(t, err)
		f.labels.AddLabel(bug)

		task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:    "Write the report",
			Status:   "draft",
			LabelIDs: optional.Of([]int64{bug.ID, 99}),
		})

		require.NoError(t, err)
		assert.Equal(t, []int64{bug.ID}, task.LabelIDs)
	})
}

func TestTaskServiceUpdate(t *testing.T) {
	t.Parallel()

	seedTask := func(t *testing.T, f *taskServiceFixture) *domain.Task {
		t.Helper()
		task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
			Title:   "Write the report",
			Status:  "draft",
			Content: optional.Of("First pass"),
		})
		require.NoError(t, err)
		return task
	}

	t.Run("absent fields stay unchanged", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		target := seedTask(t, f)

		updated, err := f.svc.Update(context.Background(), target.ID, service.UpdateTaskParams{
			Title: optional.Of("Publish the report"),
		})

		require.NoError(t, err)
		assert.Equal(t, "Publish the report", updated.Title)
		assert.Equal(t, "draft", updated.StatusSlug)
		require.NotNil(t, updated.Content)
		assert.Equal(t, "First pass", *updated.Content)
	})

	t.Run("explicit null clears the assignee", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		assignee := seedUser(t, f.users, "jack@google.com")
		target := seedTask(t, f)
		target.AssigneeID = &assignee.ID
		require.NoError(t, f.tasks.Update(context.Background(), target))

		updated, err := f.svc.Update(context.Background(), target.ID, service.UpdateTaskParams{
			AssigneeID: optional.Null[int64](),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.AssigneeID)
	})

	t.Run("explicit null clears the content", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		target := seedTask(t, f)

		updated, err := f.svc.Update(context.Background(), target.ID, service.UpdateTaskParams{
			Content: optional.Null[string](),
		})

		require.NoError(t, err)
		assert.Nil(t, updated.Content)
	})

	t.Run("status change follows the slug", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		target := seedTask(t, f)

		updated, err := f.svc.Update(context.Background(), target.ID, service.UpdateTaskParams{
			Status: optional.Of("published"),
		})

		require.NoError(t, err)
		assert.Equal(t, "published", updated.StatusSlug)
	})

	t.Run("unknown status slug fails the whole update", func(t *testing.T) {
		f := newTaskServiceFixture(t)
		target := seedTask(t, f)

		_, err := f.svc.Update(context.Background(), target.ID, service.UpdateTaskParams{
			Title:  optional.Of("Should not stick"),
			Status: optional.Of("no-such-status"),
		})

		assert.ErrorIs(t, err, store.ErrTaskStatusNotFound)
	})

	t.Run("missing task is not found", func(t *testing.T) {
		f := newTaskServiceFixture(t)

		_, err := f.svc.Update(context.Background(), 42, service.UpdateTaskParams{})

		assert.ErrorIs(t, err, store.ErrTaskNotFound)
	})
}

func TestTaskServiceDelete(t *testing.T) {
	t.Parallel()

	f := newTaskServiceFixture(t)
	task, err := f.svc.Create(context.Background(), service.CreateTaskParams{
		Title:  "Write the report",
		Status: "draft",
	})
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(context.Background(), task.ID))
	assert.ErrorIs(t, f.svc.Delete(context.Background(), task.ID), store.ErrTaskNotFound)
}
