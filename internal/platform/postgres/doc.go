// Package postgres contains the PostgreSQL implementations of the store
// interfaces. All implementations accept a store.DBTX so they run equally
// against a pooled connection or a transaction, and translate driver errors
// into the store package's sentinel errors via MapError.
package postgres
