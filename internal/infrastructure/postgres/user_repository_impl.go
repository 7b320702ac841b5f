package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	"github.com/oksasatya/go-task-tracker/internal/domain/repository"
)

// uniqueViolation is the Postgres error code for a unique constraint breach
const uniqueViolation = "23505"

func mapPgError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return repository.ErrDuplicate
	}
	return err
}

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

func (r *UserRepository) Create(ctx context.Context, u *entity.User) error {
	err := pgx.BeginFunc(ctx, r.pool, func(tx pgx.Tx) error {
		row := tx.QueryRow(ctx, `
			INSERT INTO users (first_name, last_name, phone, email, dob, username, password_hash)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
			RETURNING id, created_at, updated_at
		`, u.FirstName, u.LastName, u.Phone, u.Email, u.DOB, u.Username, u.Password)
		return row.Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	})
	if err != nil {
		return mapPgError(err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int64) (*entity.User, error) {
	return r.getBy(ctx, `WHERE id = $1`, id)
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.getBy(ctx, `WHERE email = $1`, email)
}

func (r *UserRepository) getBy(ctx context.Context, where string, arg any) (*entity.User, error) {
	u := &entity.User{}
	row := r.pool.QueryRow(ctx, `
		SELECT id, first_name, last_name, phone, email, dob, username, password_hash, created_at, updated_at
		FROM users
	`+where, arg)
	if err := row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Phone, &u.Email, &u.DOB,
		&u.Username, &u.Password, &u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapPgError(err)
	}
	return u, nil
}

var _ repository.UserRepository = (*UserRepository)(nil)
