package models

import "time"

// Task represents a work item owned by a user.
type Task struct {
	ID          string    `json:"id"`
	User        *string   `json:"user"` // Nullable weak reference to the owning User's ID
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Deadline    string    `json:"deadline,omitempty"` // Free-form, not validated
	CreatedAt   time.Time `json:"createdAt"`
}

// TaskOwner is the subset of user fields attached to a task view.
type TaskOwner struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
}

// TaskWithOwner is a task whose user reference has been resolved to the
// owning user's public fields. Owner is nil when the reference dangles.
type TaskWithOwner struct {
	ID          string     `json:"id"`
	Owner       *TaskOwner `json:"user"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    string     `json:"deadline,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
}
