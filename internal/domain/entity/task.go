package entity

import "time"

// TaskStatus enumerates the task lifecycle states
type TaskStatus string

const (
	StatusPending    TaskStatus = "pending"
	StatusInProgress TaskStatus = "in-progress"
	StatusCompleted  TaskStatus = "completed"
)

// Valid reports whether s is one of the known statuses
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusPending, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task belongs to exactly one user. UserID is fixed at creation and never
// reassigned. Email is denormalized from the owner's token claim at creation
// time and is not re-synced if the user's email later changes.
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      TaskStatus
	UserID      int64
	Email       string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
