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

func seedStatus(t *testing.T, statuses *mocks.MockTaskStatusStore, name, slug string) *domain.TaskStatus {
	t.Helper()
	status, err := domain.NewTaskStatus(name, slug)
	require.NoError(t, err)
	return statuses.AddStatus(status)
}

func TestTaskStatusServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("stores a valid status", func(t *testing.T) {
		statuses := mocks.NewMockTaskStatusStore()
		svc := service.NewTaskStatusService(statuses, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		status, err := svc.Create(context.Background(), service.CreateTaskStatusParams{
			Name: "In Progress",
			Slug: "in_progress",
		})

		require.NoError(t, err)
		assert.NotZero(t, status.ID)
		assert.Equal(t, "in_progress", status.Slug)
	})

	t.Run("duplicate slug surfaces the store conflict", func(t *testing.T) {
		statuses := mocks.NewMockTaskStatusStore()
		seedStatus(t, statuses, "Draft", "draft")
		svc := service.NewTaskStatusService(statuses, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		_, err := svc.Create(context.Background(), service.CreateTaskStatusParams{
			Name: "Another Draft",
			Slug: "draft",
		})

		assert.ErrorIs(t, err, store.ErrSlugExists)
	})
}

func TestTaskStatusServiceUpdate(t *testing.T) {
	t.Parallel()

	t.Run("updates only the supplied fields", func(t *testing.T) {
		statuses := mocks.NewMockTaskStatusStore()
		target := seedStatus(t, statuses, "Draft", "draft")
		svc := service.NewTaskStatusService(statuses, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		updated, err := svc.Update(context.Background(), target.ID, service.UpdateTaskStatusParams{
			Name: optional.Of("First Draft"),
		})

		require.NoError(t, err)
		assert.Equal(t, "First Draft", updated.Name)
		assert.Equal(t, "draft", updated.Slug)
	})

	t.Run("missing status is not found", func(t *testing.T) {
		svc := service.NewTaskStatusService(mocks.NewMockTaskStatusStore(), mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		_, err := svc.Update(context.Background(), 42, service.UpdateTaskStatusParams{})

		assert.ErrorIs(t, err, store.ErrTaskStatusNotFound)
	})
}

func TestTaskStatusServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes an unreferenced status", func(t *testing.T) {
		statuses := mocks.NewMockTaskStatusStore()
		target := seedStatus(t, statuses, "Draft", "draft")
		svc := service.NewTaskStatusService(statuses, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		require.NoError(t, svc.Delete(context.Background(), target.ID))
		assert.Empty(t, statuses.Statuses)
	})

	t.Run("referenced status is a conflict", func(t *testing.T) {
		statuses := mocks.NewMockTaskStatusStore()
		target := seedStatus(t, statuses, "Draft", "draft")

		tasks := mocks.NewMockTaskStore()
		task, err := domain.NewTask("Write the report", target.ID)
		require.NoError(t, err)
		tasks.AddTask(task)

		svc := service.NewTaskStatusService(statuses, tasks, mocks.NewMockTxRunner(), nil)

		err = svc.Delete(context.Background(), target.ID)

		assert.ErrorIs(t, err, service.ErrStatusInUse)
		assert.Len(t, statuses.Statuses, 1)
	})

	t.Run("missing status is not found", func(t *testing.T) {
		svc := service.NewTaskStatusService(mocks.NewMockTaskStatusStore(), mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		assert.ErrorIs(t, svc.Delete(context.Background(), 42), store.ErrTaskStatusNotFound)
	})
}
