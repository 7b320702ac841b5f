package repository

import (
	"context"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
)

// TaskPatch carries a partial update: nil fields are left untouched on the
// stored record.
type TaskPatch struct {
	Title       *string
	Description *string
	Status      *entity.TaskStatus
}

// TaskRepository defines the interface for task-related database operations.
// ListByOwner is the only owner-scoped read: single-record operations look up
// by id alone, matching the reference system (see DESIGN.md).
type TaskRepository interface {
	Create(ctx context.Context, t *entity.Task) error
	ListByOwner(ctx context.Context, ownerID int64) ([]entity.Task, error)
	GetByID(ctx context.Context, id int64) (*entity.Task, error)
	Update(ctx context.Context, id int64, patch TaskPatch) (*entity.Task, error)
	Delete(ctx context.Context, id int64) error
}
