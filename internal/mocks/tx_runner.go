package mocks

import (
	"context"

	"github.com/mlukashev/task-manager-api/internal/store"
)

// MockTxRunner implements store.TxRunner for testing. The default behavior
// invokes the function with a nil transaction, which works because every
// mock store's WithTx returns the store itself.
type MockTxRunner struct {
	// RunInTransactionFn overrides the pass-through behavior
	RunInTransactionFn func(ctx context.Context, fn store.TxFn) error

	// BeginError, if set, is returned without invoking fn
	BeginError error

	// Calls counts RunInTransaction invocations
	Calls int
}

// NewMockTxRunner creates a pass-through transaction runner
func NewMockTxRunner() *MockTxRunner {
	return &MockTxRunner{}
}

// RunInTransaction implements the store.TxRunner interface
func (m *MockTxRunner) RunInTransaction(ctx context.Context, fn store.TxFn) error {
	m.Calls++
	if m.RunInTransactionFn != nil {
		return m.RunInTransactionFn(ctx, fn)
	}
	if m.BeginError != nil {
		return m.BeginError
	}
	return fn(ctx, nil)
}

// Ensure MockTxRunner implements store.TxRunner
var _ store.TxRunner = (*MockTxRunner)(nil)
