package mocks

import (
	"context"
	"database/sql"
	"sort"
	"strings"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// MockTaskStore implements store.TaskStore for testing
type MockTaskStore struct {
	// Function fields for customizable behavior
	CreateFn             func(ctx context.Context, task *domain.Task) error
	GetByIDFn            func(ctx context.Context, id int64) (*domain.Task, error)
	ListFn               func(ctx context.Context) ([]*domain.Task, error)
	FindFilteredFn       func(ctx context.Context, filter store.TaskFilter, limit, offset int) ([]*domain.Task, int64, error)
	UpdateFn             func(ctx context.Context, task *domain.Task) error
	DeleteFn             func(ctx context.Context, id int64) error
	ExistsByAssigneeIDFn func(ctx context.Context, userID int64) (bool, error)
	ExistsByStatusIDFn   func(ctx context.Context, statusID int64) (bool, error)
	ExistsByLabelIDFn    func(ctx context.Context, labelID int64) (bool, error)

	// Data for default implementation, keyed by ID
	Tasks  map[int64]*domain.Task
	nextID int64
}

// NewMockTaskStore creates a new mock store with initialized defaults
func NewMockTaskStore() *MockTaskStore {
	return &MockTaskStore{
		Tasks:  make(map[int64]*domain.Task),
		nextID: 1,
	}
}

// Create implements the TaskStore interface
func (m *MockTaskStore) Create(ctx context.Context, task *domain.Task) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, task)
	}

	task.ID = m.nextID
	m.nextID++
	m.Tasks[task.ID] = task
	return nil
}

// GetByID implements the TaskStore interface
func (m *MockTaskStore) GetByID(ctx context.Context, id int64) (*domain.Task, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	task, exists := m.Tasks[id]
	if !exists {
		return nil, store.ErrTaskNotFound
	}
	return task, nil
}

// List implements the TaskStore interface
func (m *MockTaskStore) List(ctx context.Context) ([]*domain.Task, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}
	return m.sortedTasks(), nil
}

// FindFiltered implements the TaskStore interface. The default implementation
// applies the filter in memory with the same AND semantics as the real store.
func (m *MockTaskStore) FindFiltered(ctx context.Context, filter store.TaskFilter, limit, offset int) ([]*domain.Task, int64, error) {
	if m.FindFilteredFn != nil {
		return m.FindFilteredFn(ctx, filter, limit, offset)
	}

	var matched []*domain.Task
	for _, task := range m.sortedTasks() {
		if taskMatches(task, filter) {
			matched = append(matched, task)
		}
	}
	total := int64(len(matched))

	if offset >= len(matched) {
		return nil, total, nil
	}
	matched = matched[offset:]
	if limit > 0 && limit < len(matched) {
		matched = matched[:limit]
	}
	return matched, total, nil
}

// Update implements the TaskStore interface
func (m *MockTaskStore) Update(ctx context.Context, task *domain.Task) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, task)
	}

	if _, exists := m.Tasks[task.ID]; !exists {
		return store.ErrTaskNotFound
	}
	m.Tasks[task.ID] = task
	return nil
}

// Delete implements the TaskStore interface
func (m *MockTaskStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Tasks[id]; !exists {
		return store.ErrTaskNotFound
	}
	delete(m.Tasks, id)
	return nil
}

// ExistsByAssigneeID implements the TaskStore interface
func (m *MockTaskStore) ExistsByAssigneeID(ctx context.Context, userID int64) (bool, error) {
	if m.ExistsByAssigneeIDFn != nil {
		return m.ExistsByAssigneeIDFn(ctx, userID)
	}

	for _, task := range m.Tasks {
		if task.AssigneeID != nil && *task.AssigneeID == userID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByStatusID implements the TaskStore interface
func (m *MockTaskStore) ExistsByStatusID(ctx context.Context, statusID int64) (bool, error) {
	if m.ExistsByStatusIDFn != nil {
		return m.ExistsByStatusIDFn(ctx, statusID)
	}

	for _, task := range m.Tasks {
		if task.StatusID == statusID {
			return true, nil
		}
	}
	return false, nil
}

// ExistsByLabelID implements the TaskStore interface
func (m *MockTaskStore) ExistsByLabelID(ctx context.Context, labelID int64) (bool, error) {
	if m.ExistsByLabelIDFn != nil {
		return m.ExistsByLabelIDFn(ctx, labelID)
	}

	for _, task := range m.Tasks {
		for _, id := range task.LabelIDs {
			if id == labelID {
				return true, nil
			}
		}
	}
	return false, nil
}

// WithTx implements the TaskStore interface. The mock has no real
// transaction, so it returns itself.
func (m *MockTaskStore) WithTx(tx *sql.Tx) store.TaskStore {
	return m
}

// AddTask seeds the default implementation with a task, assigning an ID if
// the task has none.
func (m *MockTaskStore) AddTask(task *domain.Task) *domain.Task {
	if task.ID == 0 {
		task.ID = m.nextID
		m.nextID++
	} else if task.ID >= m.nextID {
		m.nextID = task.ID + 1
	}
	m.Tasks[task.ID] = task
	return task
}

func (m *MockTaskStore) sortedTasks() []*domain.Task {
	tasks := make([]*domain.Task, 0, len(m.Tasks))
	for _, task := range m.Tasks {
		tasks = append(tasks, task)
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks
}

func taskMatches(task *domain.Task, filter store.TaskFilter) bool {
	if filter.TitleCont != nil &&
		!strings.Contains(strings.ToLower(task.Title), strings.ToLower(*filter.TitleCont)) {
		return false
	}
	if filter.AssigneeID != nil &&
		(task.AssigneeID == nil || *task.AssigneeID != *filter.AssigneeID) {
		return false
	}
	if filter.StatusSlug != nil && task.StatusSlug != *filter.StatusSlug {
		return false
	}
	if filter.LabelID != nil {
		found := false
		for _, id := range task.LabelIDs {
			if id == *filter.LabelID {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// Ensure MockTaskStore implements store.TaskStore
var _ store.TaskStore = (*MockTaskStore)(nil)
