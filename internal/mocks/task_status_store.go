package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// MockTaskStatusStore implements store.TaskStatusStore for testing
type MockTaskStatusStore struct {
	// Function fields for customizable behavior
	CreateFn    func(ctx context.Context, status *domain.TaskStatus) error
	GetByIDFn   func(ctx context.Context, id int64) (*domain.TaskStatus, error)
	GetBySlugFn func(ctx context.Context, slug string) (*domain.TaskStatus, error)
	ListFn      func(ctx context.Context) ([]*domain.TaskStatus, error)
	UpdateFn    func(ctx context.Context, status *domain.TaskStatus) error
	DeleteFn    func(ctx context.Context, id int64) error

	// Data for default implementation, keyed by ID
	Statuses map[int64]*domain.TaskStatus
	nextID   int64
}

// NewMockTaskStatusStore creates a new mock store with initialized defaults
func NewMockTaskStatusStore() *MockTaskStatusStore {
	return &MockTaskStatusStore{
		Statuses: make(map[int64]*domain.TaskStatus),
		nextID:   1,
	}
}

// Create implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Create(ctx context.Context, status *domain.TaskStatus) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, status)
	}

	for _, existing := range m.Statuses {
		if existing.Slug == status.Slug {
			return store.ErrSlugExists
		}
	}

	status.ID = m.nextID
	m.nextID++
	m.Statuses[status.ID] = status
	return nil
}

// GetByID implements the TaskStatusStore interface
func (m *MockTaskStatusStore) GetByID(ctx context.Context, id int64) (*domain.TaskStatus, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	status, exists := m.Statuses[id]
	if !exists {
		return nil, store.ErrTaskStatusNotFound
	}
	return status, nil
}

// GetBySlug implements the TaskStatusStore interface
func (m *MockTaskStatusStore) GetBySlug(ctx context.Context, slug string) (*domain.TaskStatus, error) {
	if m.GetBySlugFn != nil {
		return m.GetBySlugFn(ctx, slug)
	}

	for _, status := range m.Statuses {
		if status.Slug == slug {
			return status, nil
		}
	}
	return nil, store.ErrTaskStatusNotFound
}

// List implements the TaskStatusStore interface
func (m *MockTaskStatusStore) List(ctx context.Context) ([]*domain.TaskStatus, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	statuses := make([]*domain.TaskStatus, 0, len(m.Statuses))
	for _, status := range m.Statuses {
		statuses = append(statuses, status)
	}
	sort.Slice(statuses, func(i, j int) bool { return statuses[i].ID < statuses[j].ID })
	return statuses, nil
}

// Update implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Update(ctx context.Context, status *domain.TaskStatus) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, status)
	}

	if _, exists := m.Statuses[status.ID]; !exists {
		return store.ErrTaskStatusNotFound
	}
	for _, existing := range m.Statuses {
		if existing.ID != status.ID && existing.Slug == status.Slug {
			return store.ErrSlugExists
		}
	}
	m.Statuses[status.ID] = status
	return nil
}

// Delete implements the TaskStatusStore interface
func (m *MockTaskStatusStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Statuses[id]; !exists {
		return store.ErrTaskStatusNotFound
	}
	delete(m.Statuses, id)
	return nil
}

// WithTx implements the TaskStatusStore interface. The mock has no real
// transaction, so it returns itself.
func (m *MockTaskStatusStore) WithTx(tx *sql.Tx) store.TaskStatusStore {
	return m
}

// AddStatus seeds the default implementation with a status, assigning an ID
// if the status has none.
func (m *MockTaskStatusStore) AddStatus(status *domain.TaskStatus) *domain.TaskStatus {
	if status.ID == 0 {
		status.ID = m.nextID
		m.nextID++
	} else if status.ID >= m.nextID {
		m.nextID = status.ID + 1
	}
	m.Statuses[status.ID] = status
	return status
}

// Ensure MockTaskStatusStore implements store.TaskStatusStore
var _ store.TaskStatusStore = (*MockTaskStatusStore)(nil)
