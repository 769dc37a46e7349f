package mocks

import (
	"context"
	"database/sql"
	"sort"

	"github.com/mlukashev/task-manager-api/internal/domain"
	"github.com/mlukashev/task-manager-api/internal/store"
)

// MockLabelStore implements store.LabelStore for testing
type MockLabelStore struct {
	// Function fields for customizable behavior
	CreateFn   func(ctx context.Context, label *domain.Label) error
	GetByIDFn  func(ctx context.Context, id int64) (*domain.Label, error)
	GetByIDsFn func(ctx context.Context, ids []int64) ([]*domain.Label, error)
	ListFn     func(ctx context.Context) ([]*domain.Label, error)
	UpdateFn   func(ctx context.Context, label *domain.Label) error
	DeleteFn   func(ctx context.Context, id int64) error

	// Data for default implementation, keyed by ID
	Labels map[int64]*domain.Label
	nextID int64
}

// NewMockLabelStore creates a new mock store with initialized defaults
func NewMockLabelStore() *MockLabelStore {
	return &MockLabelStore{
		Labels: make(map[int64]*domain.Label),
		nextID: 1,
	}
}

// Create implements the LabelStore interface
func (m *MockLabelStore) Create(ctx context.Context, label *domain.Label) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, label)
	}

	for _, existing := range m.Labels {
		if existing.Name == label.Name {
			return store.ErrLabelNameExists
		}
	}

	label.ID = m.nextID
	m.nextID++
	m.Labels[label.ID] = label
	return nil
}

// GetByID implements the LabelStore interface
func (m *MockLabelStore) GetByID(ctx context.Context, id int64) (*domain.Label, error) {
	if m.GetByIDFn != nil {
		return m.GetByIDFn(ctx, id)
	}

	label, exists := m.Labels[id]
	if !exists {
		return nil, store.ErrLabelNotFound
	}
	return label, nil
}

// GetByIDs implements the LabelStore interface. Missing IDs are skipped and
// the result is ordered by ID, matching the real store.
func (m *MockLabelStore) GetByIDs(ctx context.Context, ids []int64) ([]*domain.Label, error) {
	if m.GetByIDsFn != nil {
		return m.GetByIDsFn(ctx, ids)
	}

	var labels []*domain.Label
	for _, id := range ids {
		if label, exists := m.Labels[id]; exists {
			labels = append(labels, label)
		}
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// List implements the LabelStore interface
func (m *MockLabelStore) List(ctx context.Context) ([]*domain.Label, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx)
	}

	labels := make([]*domain.Label, 0, len(m.Labels))
	for _, label := range m.Labels {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool { return labels[i].ID < labels[j].ID })
	return labels, nil
}

// Update implements the LabelStore interface
func (m *MockLabelStore) Update(ctx context.Context, label *domain.Label) error {
	if m.UpdateFn != nil {
		return m.UpdateFn(ctx, label)
	}

	if _, exists := m.Labels[label.ID]; !exists {
		return store.ErrLabelNotFound
	}
	for _, existing := range m.Labels {
		if existing.ID != label.ID && existing.Name == label.Name {
			return store.ErrLabelNameExists
		}
	}
	m.Labels[label.ID] = label
	return nil
}

// Delete implements the LabelStore interface
func (m *MockLabelStore) Delete(ctx context.Context, id int64) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, id)
	}

	if _, exists := m.Labels[id]; !exists {
		return store.ErrLabelNotFound
	}
	delete(m.Labels, id)
	return nil
}

// WithTx implements the LabelStore interface. The mock has no real
// transaction, so it returns itself.
func (m *MockLabelStore) WithTx(tx *sql.Tx) store.LabelStore {
	return m
}

// AddLabel seeds the default implementation with a label, assigning an ID if
// the label has none.
func (m *MockLabelStore) AddLabel(label *domain.Label) *domain.Label {
	if label.ID == 0 {
		label.ID = m.nextID
		m.nextID++
	} else if label.ID >= m.nextID {
		m.nextID = label.ID + 1
	}
	m.Labels[label.ID] = label
	return label
}

// Ensure MockLabelStore implements store.LabelStore
var _ store.LabelStore = (*MockLabelStore)(nil)
