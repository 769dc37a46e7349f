package optional_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mlukashev/task-manager-api/internal/optional"
)

func TestUnmarshalThreeStates(t *testing.T) {
	t.Parallel()

	type payload struct {
		Title   optional.Value[string] `json:"title"`
		Index   optional.Value[int]    `json:"index"`
		Content optional.Value[string] `json:"content"`
	}

	var p payload
	err := json.Unmarshal([]byte(`{"title":"Task A","content":null}`), &p)
	require.NoError(t, err)

	// present with value
	assert.True(t, p.Title.IsSet())
	assert.False(t, p.Title.IsNull())
	got, ok := p.Title.Get()
	assert.True(t, ok)
	assert.Equal(t, "Task A", got)

	// absent
	assert.False(t, p.Index.IsSet())
	_, ok = p.Index.Get()
	assert.False(t, ok)

	// explicit null
	assert.True(t, p.Content.IsSet())
	assert.True(t, p.Content.IsNull())
	_, ok = p.Content.Get()
	assert.False(t, ok)
}

func TestUnmarshalTypedValues(t *testing.T) {
	t.Parallel()

	type payload struct {
		AssigneeID optional.Value[int64]   `json:"assignee_id"`
		LabelIDs   optional.Value[[]int64] `json:"taskLabelIds"`
	}

	var p payload
	err := json.Unmarshal([]byte(`{"assignee_id":7,"taskLabelIds":[1,2,3]}`), &p)
	require.NoError(t, err)

	id, ok := p.AssigneeID.Get()
	require.True(t, ok)
	assert.Equal(t, int64(7), id)

	ids, ok := p.LabelIDs.Get()
	require.True(t, ok)
	assert.Equal(t, []int64{1, 2, 3}, ids)
}

func TestUnmarshalTypeMismatch(t *testing.T) {
	t.Parallel()

	var v optional.Value[int]
	err := json.Unmarshal([]byte(`"not a number"`), &v)
	assert.Error(t, err)
}

func TestConstructors(t *testing.T) {
	t.Parallel()

	v := optional.Of("hello")
	assert.True(t, v.IsSet())
	assert.False(t, v.IsNull())
	assert.Equal(t, "hello", v.MustGet())

	n := optional.Null[string]()
	assert.True(t, n.IsSet())
	assert.True(t, n.IsNull())

	var zero optional.Value[string]
	assert.False(t, zero.IsSet())
}

func TestMarshalRoundTrip(t *testing.T) {
	t.Parallel()

	out, err := json.Marshal(optional.Of(42))
	require.NoError(t, err)
	assert.JSONEq(t, `42`, string(out))

	out, err = json.Marshal(optional.Null[int]())
	require.NoError(t, err)
	assert.JSONEq(t, `null`, string(out))
}
