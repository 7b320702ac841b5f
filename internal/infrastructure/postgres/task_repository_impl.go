package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

const taskColumns = `id, title, description, status, user_id, email, created_at, updated_at`

type TaskRepository struct {
	pool *pgxpool.Pool
}

func NewTaskRepository(pool *pgxpool.Pool) *TaskRepository {
	return &TaskRepository{pool: pool}
}

func scanTask(row pgx.Row, t *entity.Task) error {
	return row.Scan(&t.ID, &t.Title, &t.Description, &t.Status, &t.UserID, &t.Email,
		&t.CreatedAt, &t.UpdatedAt)
}

func (r *TaskRepository) Create(ctx context.Context, t *entity.Task) error {
	if t.Status == "" {
		t.Status = entity.StatusPending
	}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO tasks (title, description, status, user_id, email)
			VALUES ($1, $2, $3, $4, $5)
			RETURNING id, created_at, updated_at
		`, t.Title, t.Description, t.Status, t.UserID, t.Email)
		return row.Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	})
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

// ListByOwner returns only tasks owned by ownerID. The scoping lives in the
// query itself, never in post-filtering.
func (r *TaskRepository) ListByOwner(ctx context.Context, ownerID int64) ([]entity.Task, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE user_id = $1
		ORDER BY id
	`, ownerID)
	if err != nil {
		return nil, mapPgError(err)
	}
	defer rows.Close()

	tasks := make([]entity.Task, 0)
	for rows.Next() {
		var t entity.Task
		if err := scanTask(rows, &t); err != nil {
			return nil, mapPgError(err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, mapPgError(err)
	}
	return tasks, nil
}

// GetByID fetches a task by id alone, without an owner filter.
func (r *TaskRepository) GetByID(ctx context.Context, id int64) (*entity.Task, error) {
	t := &entity.Task{}
	row := r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1
	`, id)
	if err := scanTask(row, t); err != nil {
		return nil, mapPgError(err)
	}
	return t, nil
}

// Update applies only the non-nil patch fields. Read and write happen inside
// one transaction with the row locked, so a concurrent partial update cannot
// be lost.
func (r *TaskRepository) Update(ctx context.Context, id int64, patch repository.TaskPatch) (*entity.Task, error) {
	t := &entity.Task{}
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			SELECT `+taskColumns+`
			FROM tasks
			WHERE id = $1
			FOR UPDATE
		`, id)
		if err := scanTask(row, t); err != nil {
			return err
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
		row = tx.QueryRow(ctx, `
			UPDATE tasks
			SET title = $1, description = $2, status = $3, updated_at = now()
			WHERE id = $4
			RETURNING updated_at
		`, t.Title, t.Description, t.Status, t.ID)
		return row.Scan(&t.UpdatedAt)
	})
	if err != nil {
		return nil, mapPgError(err)
	}
	return t, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		res, err := tx.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
		if err != nil {
			return err
		}
		if res.RowsAffected() == 0 {
			return repository.ErrNotFound
		}
		return nil
	})
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

var _ repository.TaskRepository = (*TaskRepository)(nil)
