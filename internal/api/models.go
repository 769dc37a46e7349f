package api

import (
	"fmt"
	"time"
)

// dateFormat is the wire format for entity creation dates.
const dateFormat = "2006-01-02"

// Date is a time.Time that serializes as yyyy-MM-dd.
type Date struct {
	time.Time
}

// MarshalJSON implements json.Marshaler.
func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf("%q", d.Format(dateFormat))), nil
}

// UnmarshalJSON implements json.Unmarshaler.
func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if s == "null" {
		return nil
	}
	t, err := time.Parse(`"`+dateFormat+`"`, s)
	if err != nil {
		return err
	}
	d.Time = t
	return nil
}

// UserResponse is the wire representation of a user. The password digest
// never leaves the server.
type UserResponse struct {
	ID        int64  `json:"id"`
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	CreatedAt Date   `json:"createdAt"`
}

// TaskStatusResponse is the wire representation of a task status.
type TaskStatusResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt Date   `json:"createdAt"`
}

// LabelResponse is the wire representation of a label.
type LabelResponse struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	CreatedAt Date   `json:"createdAt"`
}

// TaskResponse is the wire representation of a task. Status carries the
// status slug; AssigneeID and Content are null when unset.
type TaskResponse struct {
	ID         int64   `json:"id"`
	Title      string  `json:"title"`
	Index      *int    `json:"index"`
	Content    *string `json:"content"`
	Status     string  `json:"status"`
	AssigneeID *int64  `json:"assignee_id"`
	LabelIDs   []int64 `json:"taskLabelIds"`
	CreatedAt  Date    `json:"createdAt"`
}
