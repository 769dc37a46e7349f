package mocks

import (
	"errors"

	"github.com/mlukashev/task-manager-api/internal/service/auth"
)

// ErrPasswordMismatch is the default error the mock verifier returns when the
// plaintext does not match the stored digest.
var ErrPasswordMismatch = errors.New("password does not match")

// MockPasswordHasher implements auth.PasswordHasher and auth.PasswordVerifier
// for testing. The default implementation prefixes the plaintext instead of
// hashing, so tests can assert on digests without paying for bcrypt.
type MockPasswordHasher struct {
	// Function fields for customizable behavior
	HashFn    func(password string) (string, error)
	CompareFn func(hashedPassword, password string) error

	// Default response values
	HashError    error
	CompareError error
}

// Hash implements the auth.PasswordHasher interface
func (m *MockPasswordHasher) Hash(password string) (string, error) {
	if m.HashFn != nil {
		return m.HashFn(password)
	}
	if m.HashError != nil {
		return "", m.HashError
	}
	return "hashed:" + password, nil
}

// Compare implements the auth.PasswordVerifier interface
func (m *MockPasswordHasher) Compare(hashedPassword, password string) error {
	if m.CompareFn != nil {
		return m.CompareFn(hashedPassword, password)
	}
	if m.CompareError != nil {
		return m.CompareError
	}
	if hashedPassword != "hashed:"+password {
		return ErrPasswordMismatch
	}
	return nil
}

// Ensure MockPasswordHasher implements both auth password interfaces
var (
	_ auth.PasswordHasher   = (*MockPasswordHasher)(nil)
	_ auth.PasswordVerifier = (*MockPasswordHasher)(nil)
)
