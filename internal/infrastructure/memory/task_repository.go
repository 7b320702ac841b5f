package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

type TaskRepository struct {
	mu   sync.Mutex
	seq  int64
	byID map[int64]entity.Task
}

func NewTaskRepository() *TaskRepository {
	return &TaskRepository{byID: make(map[int64]entity.Task)}
}

func (r *TaskRepository) Create(_ context.Context, t *entity.Task) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if t.Status == "" {
		t.Status = entity.StatusPending
	}
	r.seq++
	t.ID = r.seq
	t.CreatedAt = time.Now()
	t.UpdatedAt = t.CreatedAt
	r.byID[t.ID] = *t
	return nil
}

func (r *TaskRepository) ListByOwner(_ context.Context, ownerID int64) ([]entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tasks := make([]entity.Task, 0)
	for _, t := range r.byID {
		if t.UserID == ownerID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool { return tasks[i].ID < tasks[j].ID })
	return tasks, nil
}

func (r *TaskRepository) GetByID(_ context.Context, id int64) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &t, nil
}

func (r *TaskRepository) Update(_ context.Context, id int64, patch repository.TaskPatch) (*entity.Task, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	t, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if patch.Title != nil {
		t.Title = *patch.Title
	}
	if patch.Description != nil {
		t.Description = *patch.Description
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	t.UpdatedAt = time.Now()
	r.byID[id] = t
	return &t, nil
}

func (r *TaskRepository) Delete(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byID[id]; !ok {
		return repository.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
