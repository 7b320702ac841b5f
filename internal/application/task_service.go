package application

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

var ErrTaskNotFound = errors.New("task not found")

// TaskService implements task CRUD. List is owner-scoped; Get, Update, and
// Delete operate by id alone, matching the reference behavior documented in
// DESIGN.md.
type TaskService struct {
	Tasks  repo.TaskRepository
	Logger *logrus.Logger
}

func NewTaskService(tasks repo.TaskRepository, logger *logrus.Logger) *TaskService {
	return &TaskService{Tasks: tasks, Logger: logger}
}

// Create persists a task for the authenticated owner. The owner id and email
// come from the verified token claims, never from the request body.
func (s *TaskService) Create(ctx context.Context, ownerID int64, ownerEmail, title, description string) (*entity.Task, error) {
	t := &entity.Task{
		Title:       title,
		Description: description,
		Status:      entity.StatusPending,
		UserID:      ownerID,
		Email:       ownerEmail,
	}
	if err := s.Tasks.Create(ctx, t); err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", ownerID).Error("task create failed")
		}
		return nil, err
	}
	return t, nil
}

func (s *TaskService) List(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	return s.Tasks.ListByOwner(ctx, ownerID)
}

func (s *TaskService) Get(ctx context.Context, id int64) (*entity.Task, error) {
	t, err := s.Tasks.GetByID(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

func (s *TaskService) Update(ctx context.Context, id int64, patch repo.TaskPatch) (*entity.Task, error) {
	t, err := s.Tasks.Update(ctx, id, patch)
	if errors.Is(err, repo.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

func (s *TaskService) Delete(ctx context.Context, id int64) error {
	err := s.Tasks.Delete(ctx, id)
	if errors.Is(err, repo.ErrNotFound) {
		return ErrTaskNotFound
	}
	return err
}
