package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/platform/postgres"
	"github.com/mlukashev/task-manager-api/internal/store"
	"github.com/mlukashev/task-manager-api/internal/testdb"
)

// These tests exercise the stores against a real Postgres instance and skip
// when TEST_DATABASE_URL is not set. Every test runs inside a rolled-back
// transaction so the database stays clean.

func newUser(t *testing.T, email string) *domain.User {
	t.Helper()
	user, err := domain.NewUser(email, "qwerty", "John", "Doe")
	require.NoError(t, err)
	user.PasswordDigest = "digest"
	user.Password = ""
	return user
}

func TestUserStoreRoundTrip(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(tx, nil)

		user := newUser(t, "jack@google.com")
		require.NoError(t, users.Create(ctx, user))
		require.NotZero(t, user.ID)

		got, err := users.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "jack@google.com", got.Email)
		assert.Equal(t, "digest", got.PasswordDigest)

		byEmail, err := users.GetByEmail(ctx, "jack@google.com")
		require.NoError(t, err)
		assert.Equal(t, user.ID, byEmail.ID)

		require.NoError(t, users.Delete(ctx, user.ID))
		_, err = users.GetByID(ctx, user.ID)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
	})
}

func TestUserStoreDuplicateEmail(t *testing.T) {
	db := testdb.Get(t)

	// A unique violation aborts the surrounding transaction, so the
	// duplicate insert has to be the last statement in it.
	testdb.WithTx(t, db, func(tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(tx, nil)

		require.NoError(t, users.Create(ctx, newUser(t, "jack@google.com")))
		assert.ErrorIs(t, users.Create(ctx, newUser(t, "jack@google.com")), store.ErrEmailExists)
	})
}

func TestTaskStoreFilteredSearch(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(tx *sql.Tx) {
		ctx := context.Background()
		users := postgres.NewUserStore(tx, nil)
		statuses := postgres.NewTaskStatusStore(tx, nil)
		labels := postgres.NewLabelStore(tx, nil)
		tasks := postgres.NewTaskStore(tx, nil)

		assignee := newUser(t, "jack@google.com")
		require.NoError(t, users.Create(ctx, assignee))

		draft, err := domain.NewTaskStatus("Draft", "draft")
		require.NoError(t, err)
		require.NoError(t, statuses.Create(ctx, draft))

		bug, err := domain.NewLabel("bug")
		require.NoError(t, err)
		require.NoError(t, labels.Create(ctx, bug))

		match, err := domain.NewTask("Quarterly report", draft.ID)
		require.NoError(t, err)
		match.AssigneeID = &assignee.ID
		match.LabelIDs = []int64{bug.ID}
		require.NoError(t, tasks.Create(ctx, match))

		other, err := domain.NewTask("Unrelated chore", draft.ID)
		require.NoError(t, err)
		require.NoError(t, tasks.Create(ctx, other))

		title := "report"
		found, total, err := tasks.FindFiltered(ctx, store.TaskFilter{
			TitleCont:  &title,
			AssigneeID: &assignee.ID,
			StatusSlug: &draft.Slug,
			LabelID:    &bug.ID,
		}, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 1, total)
		require.Len(t, found, 1)
		assert.Equal(t, match.ID, found[0].ID)
		assert.Equal(t, "draft", found[0].StatusSlug)
		assert.Equal(t, []int64{bug.ID}, found[0].LabelIDs)

		exists, err := tasks.ExistsByAssigneeID(ctx, assignee.ID)
		require.NoError(t, err)
		assert.True(t, exists)

		exists, err = tasks.ExistsByLabelID(ctx, bug.ID)
		require.NoError(t, err)
		assert.True(t, exists)
	})
}

func TestTaskStoreUpdateReplacesLabels(t *testing.T) {
	db := testdb.Get(t)

	testdb.WithTx(t, db, func(tx *sql.Tx) {
		ctx := context.Background()
		statuses := postgres.NewTaskStatusStore(tx, nil)
		labels := postgres.NewLabelStore(tx, nil)
		tasks := postgres.NewTaskStore(tx, nil)

		draft, err := domain.NewTaskStatus("Draft", "draft")
		require.NoError(t, err)
		require.NoError(t, statuses.Create(ctx, draft))

		bug, err := domain.NewLabel("bug")
		require.NoError(t, err)
		require.NoError(t, labels.Create(ctx, bug))
		feature, err := domain.NewLabel("feature")
		require.NoError(t, err)
		require.NoError(t, labels.Create(ctx, feature))

		task, err := domain.NewTask("Quarterly report", draft.ID)
		require.NoError(t, err)
		task.LabelIDs = []int64{bug.ID}
		require.NoError(t, tasks.Create(ctx, task))

		task.LabelIDs = []int64{feature.ID}
		require.NoError(t, tasks.Update(ctx, task))

		got, err := tasks.GetByID(ctx, task.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{feature.ID}, got.LabelIDs)
	})
}
