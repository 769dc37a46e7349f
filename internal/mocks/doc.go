// Package mocks provides centralized mock implementations for testing.
//
// Instead of defining inline mocks in individual test files, these
// standardized implementations are shared across test packages. Every mock
// follows the same shape: a function field per interface method for
// customizable behavior, plus a map-backed default implementation that is
// good enough for the common happy path.
//
// Usage:
//
//	import "github.com/mlukashev/task-manager-api/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    users := mocks.NewMockUserStore()
//	    users.GetByIDFn = func(ctx context.Context, id int64) (*domain.User, error) {
//	        return nil, store.ErrUserNotFound
//	    }
//	    // Use the mock in your test...
//	}
package mocks
