package domain

import (
	"errors"
	"time"
)

// Common label validation errors
var (
	ErrLabelNameTooShort = errors.New("label name must be at least 3 characters long")
	ErrLabelNameTooLong  = errors.New("label name must be at most 1000 characters long")
)

// Label is a tag attached to tasks. Names are unique across the system.
type Label struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NewLabel creates a new Label with the given name.
// Returns an error if validation fails.
func NewLabel(name string) (*Label, error) {
	label := &Label{
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	if err := label.Validate(); err != nil {
		return nil, err
	}

	return label, nil
}

// Validate checks if the Label has valid data.
func (l *Label) Validate() error {
	switch {
	case len(l.Name) < 3:
		return ErrLabelNameTooShort
	case len(l.Name) > 1000:
		return ErrLabelNameTooLong
	}
	return nil
}
