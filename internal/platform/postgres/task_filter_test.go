package postgres

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mlukashev/task-manager-api/internal/store"
)

func strPtr(s string) *string { return &s }
func i64Ptr(i int64) *int64   { return &i }

func TestBuildTaskFilterEmpty(t *testing.T) {
	t.Parallel()

	where, args := buildTaskFilter(store.TaskFilter{})
	assert.Empty(t, where)
	assert.Empty(t, args)
}

func TestBuildTaskFilterSingleFields(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		filter    store.TaskFilter
		wantWhere string
		wantArgs  []any
	}{
		{
			name:      "title substring",
			filter:    store.TaskFilter{TitleCont: strPtr("fix")},
			wantWhere: "WHERE t.name ILIKE $1",
			wantArgs:  []any{"%fix%"},
		},
		{
			name:      "assignee",
			filter:    store.TaskFilter{AssigneeID: i64Ptr(42)},
			wantWhere: "WHERE t.assignee_id = $1",
			wantArgs:  []any{int64(42)},
		},
		{
			name:      "status slug",
			filter:    store.TaskFilter{StatusSlug: strPtr("draft")},
			wantWhere: "WHERE ts.slug = $1",
			wantArgs:  []any{"draft"},
		},
		{
			name:   "label membership",
			filter: store.TaskFilter{LabelID: i64Ptr(7)},
			wantWhere: "WHERE EXISTS (SELECT 1 FROM task_labels tl " +
				"WHERE tl.task_id = t.id AND tl.label_id = $1)",
			wantArgs: []any{int64(7)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			where, args := buildTaskFilter(tt.filter)
			assert.Equal(t, tt.wantWhere, where)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestBuildTaskFilterConjunction(t *testing.T) {
	t.Parallel()

	filter := store.TaskFilter{
		TitleCont:  strPtr("release"),
		AssigneeID: i64Ptr(3),
		StatusSlug: strPtr("to_review"),
		LabelID:    i64Ptr(9),
	}

	where, args := buildTaskFilter(filter)

	// All conditions present, ANDed, with sequential placeholders.
	assert.Equal(t,
		"WHERE t.name ILIKE $1 AND t.assignee_id = $2 AND ts.slug = $3 AND "+
			"EXISTS (SELECT 1 FROM task_labels tl WHERE tl.task_id = t.id AND tl.label_id = $4)",
		where)
	assert.Equal(t, []any{"%release%", int64(3), "to_review", int64(9)}, args)
}

func TestBuildTaskFilterPartialCombination(t *testing.T) {
	t.Parallel()

	// Skipping a field must not leave placeholder gaps.
	filter := store.TaskFilter{
		StatusSlug: strPtr("draft"),
		LabelID:    i64Ptr(2),
	}

	where, args := buildTaskFilter(filter)
	assert.Contains(t, where, "ts.slug = $1")
	assert.Contains(t, where, "tl.label_id = $2")
	assert.Equal(t, []any{"draft", int64(2)}, args)
}

func TestTaskFilterIsEmpty(t *testing.T) {
	t.Parallel()

	assert.True(t, store.TaskFilter{}.IsEmpty())
	assert.False(t, store.TaskFilter{TitleCont: strPtr("")}.IsEmpty())
	assert.False(t, store.TaskFilter{LabelID: i64Ptr(1)}.IsEmpty())
}
