package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/mocks"
	"github.com/mlukashev/task-manager-api/internal/service"
	"github.com/mlukashev/task-manager-api/internal/store"
)

func TestLabelServiceDelete(t *testing.T) {
	t.Parallel()

	t.Run("removes an unattached label", func(t *testing.T) {
		labels := mocks.NewMockLabelStore()
		label, err := domain.NewLabel("bug")
		require.NoError(t, err)
		labels.AddLabel(label)

		svc := service.NewLabelService(labels, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		require.NoError(t, svc.Delete(context.Background(), label.ID))
		assert.Empty(t, labels.Labels)
	})

	t.Run("attached label is a conflict", func(t *testing.T) {
		labels := mocks.NewMockLabelStore()
		label, err := domain.NewLabel("bug")
		require.NoError(t, err)
		labels.AddLabel(label)

		tasks := mocks.NewMockTaskStore()
		task, err := domain.NewTask("Fix the build", 1)
		require.NoError(t, err)
		task.LabelIDs = []int64{label.ID}
		tasks.AddTask(task)

		svc := service.NewLabelService(labels, tasks, mocks.NewMockTxRunner(), nil)

		err = svc.Delete(context.Background(), label.ID)

		assert.ErrorIs(t, err, service.ErrLabelInUse)
		assert.Len(t, labels.Labels, 1)
	})
}

func TestLabelServiceCreate(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name surfaces the store conflict", func(t *testing.T) {
		labels := mocks.NewMockLabelStore()
		label, err := domain.NewLabel("feature")
		require.NoError(t, err)
		labels.AddLabel(label)

		svc := service.NewLabelService(labels, mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		_, err = svc.Create(context.Background(), service.CreateLabelParams{Name: "feature"})

		assert.ErrorIs(t, err, store.ErrLabelNameExists)
	})

	t.Run("too short name fails validation", func(t *testing.T) {
		svc := service.NewLabelService(mocks.NewMockLabelStore(), mocks.NewMockTaskStore(), mocks.NewMockTxRunner(), nil)

		_, err := svc.Create(context.Background(), service.CreateLabelParams{Name: "ab"})

		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}
