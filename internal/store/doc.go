// Package store defines the persistence interfaces for the task manager's
// entities along with the sentinel errors implementations must return.
// Implementations live under internal/platform; services depend only on the
// interfaces here so storage backends stay swappable in tests.
package store
