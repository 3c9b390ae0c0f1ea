package tasks

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taskforge/taskforge/internal/platform/db"
	"github.com/taskforge/taskforge/internal/shared"
)

// RepositoryPort defines data access methods for tasks.
type RepositoryPort interface {
	Get(ctx context.Context, id int64) (*Task, error)
	Insert(ctx context.Context, t *Task) error
	Update(ctx context.Context, t *Task) error
	Delete(ctx context.Context, id int64) error
}

// Repository provides PostgreSQL backed persistence.
type Repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a repository.
func NewRepository(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

const taskColumns = `id, name, project_id, assignee_id, created_at, updated_at`

// Get fetches a task by id.
func (r *Repository) Get(ctx context.Context, id int64) (*Task, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+taskColumns+` FROM tasks WHERE id = $1`, id)
	return scanTask(row)
}

// Insert persists a new task inside a transaction, verifying the referenced
// project exists so a concurrent project deletion cannot race past the check.
func (r *Repository) Insert(ctx context.Context, t *Task) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1)`, t.ProjectID,
		).Scan(&exists); err != nil {
			return fmt.Errorf("tasks: check project: %w", err)
		}
		if !exists {
			return shared.ErrNotFound
		}
		row := tx.QueryRow(ctx,
			`INSERT INTO tasks (name, project_id, assignee_id, created_at, updated_at)
			 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
			t.Name, t.ProjectID, t.AssigneeID, t.CreatedAt, t.UpdatedAt,
		)
		if err := row.Scan(&t.ID); err != nil {
			if isUniqueViolation(err) {
				return shared.ErrDuplicate
			}
			return fmt.Errorf("tasks: insert: %w", err)
		}
		return nil
	})
}

// Update rewrites the mutable fields of an existing task.
func (r *Repository) Update(ctx context.Context, t *Task) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE tasks SET name = $2, updated_at = $3 WHERE id = $1`,
		t.ID, t.Name, t.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return shared.ErrDuplicate
		}
		return fmt.Errorf("tasks: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes a task.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("tasks: delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanTask(row pgx.Row) (*Task, error) {
	var t Task
	err := row.Scan(&t.ID, &t.Name, &t.ProjectID, &t.AssigneeID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, fmt.Errorf("tasks: scan: %w", err)
	}
	return &t, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ RepositoryPort = (*Repository)(nil)
