package model

import (
	"encoding/json"
	"time"
)

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	Priority    string    `json:"priority"`
	DueDate     *string   `json:"dueDate"`
	CreatedAt   time.Time `json:"createdAt"`
	OwnerID     string    `json:"ownerId,omitempty"`
}

// TaskInput keeps fields raw so the validator can tell apart an absent
// field, a wrong-typed field and a bad value, and report all of them at once.
type TaskInput struct {
	Title       json.RawMessage `json:"title"`
	Description json.RawMessage `json:"description"`
	Completed   json.RawMessage `json:"completed"`
	Priority    json.RawMessage `json:"priority"`
	DueDate     json.RawMessage `json:"dueDate"`
}

// TaskChanges is a validated partial update; nil fields are left untouched.
type TaskChanges struct {
	Title       *string
	Description *string
	Completed   *bool
	Priority    *string
	DueDate     *string
}

type TaskFilter struct {
	Completed *bool
	Priority  *string
	DueDate   *string
}
