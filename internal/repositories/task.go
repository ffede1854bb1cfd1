package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/taskhive/taskhive/internal/logger"
	"github.com/taskhive/taskhive/internal/models"
)

const taskColumns = "id, name, description, done, alert_date_time, user_id"

type TaskReadRepository struct {
	db *sqlx.DB
}

func NewTaskReadRepository(db *sqlx.DB) *TaskReadRepository {
	return &TaskReadRepository{db: db}
}

// GetByID returns the task with the given id.
func (r *TaskReadRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)

	var task models.Task
	err := r.db.GetContext(ctx, &task, query, id)

	logger.Log.Infow("task select",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", ErrTaskNotFound, id)
		}
		return nil, err
	}

	return &task, nil
}

// ListByUser returns all tasks owned by the user. Order is unspecified.
func (r *TaskReadRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Task, error) {
	query := fmt.Sprintf(`SELECT %s FROM tasks WHERE user_id = $1`, taskColumns)

	tasks := []models.Task{}
	err := r.db.SelectContext(ctx, &tasks, query, userID)

	logger.Log.Infow("task list",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{userID},
		"count", len(tasks),
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return tasks, nil
}

type TaskWriteRepository struct {
	db *sqlx.DB
}

func NewTaskWriteRepository(db *sqlx.DB) *TaskWriteRepository {
	return &TaskWriteRepository{db: db}
}

// Create inserts a new task and returns the stored record with the
// server-assigned id and defaults.
func (r *TaskWriteRepository) Create(ctx context.Context, create models.TaskCreate) (*models.Task, error) {
	query := fmt.Sprintf(`
		INSERT INTO tasks (name, description, alert_date_time, user_id)
		VALUES ($1, $2, $3, $4)
		RETURNING %s
	`, taskColumns)
	args := []any{create.Name, create.Description, create.AlertDateTime, create.UserID}

	var task models.Task
	err := r.db.GetContext(ctx, &task, query, args...)

	logger.Log.Infow("task insert",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{create.Name, create.UserID},
		"error", err,
	)

	if err != nil {
		return nil, err
	}

	return &task, nil
}

// Update changes only the supplied fields and returns the updated record.
// The id and owner are immutable. An update with no fields returns the
// stored record unchanged, still failing if the id is absent.
func (r *TaskWriteRepository) Update(ctx context.Context, id uuid.UUID, upd models.TaskUpdate) (*models.Task, error) {
	set := make([]string, 0, 4)
	args := make([]any, 0, 5)
	if upd.Name != nil {
		args = append(args, *upd.Name)
		set = append(set, fmt.Sprintf("name = $%d", len(args)))
	}
	if upd.Description != nil {
		args = append(args, *upd.Description)
		set = append(set, fmt.Sprintf("description = $%d", len(args)))
	}
	if upd.AlertDateTime != nil {
		args = append(args, *upd.AlertDateTime)
		set = append(set, fmt.Sprintf("alert_date_time = $%d", len(args)))
	}
	if upd.Done != nil {
		args = append(args, *upd.Done)
		set = append(set, fmt.Sprintf("done = $%d", len(args)))
	}

	var query string
	if upd.IsEmpty() {
		query = fmt.Sprintf(`SELECT %s FROM tasks WHERE id = $1`, taskColumns)
		args = append(args, id)
	} else {
		args = append(args, id)
		query = fmt.Sprintf(`
			UPDATE tasks SET %s
			WHERE id = $%d
			RETURNING %s
		`, strings.Join(set, ", "), len(args), taskColumns)
	}

	var task models.Task
	err := r.db.GetContext(ctx, &task, query, args...)

	logger.Log.Infow("task update",
		"query", strings.Join(strings.Fields(query), " "),
		"args", []any{id},
		"error", err,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: id %s", ErrTaskNotFound, id)
		}
		return nil, err
	}

	return &task, nil
}

// Delete removes a task by id. Deleting an absent task is not an error.
func (r *TaskWriteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	var rowsAffected int64
	if res != nil {
		rowsAffected, _ = res.RowsAffected()
	}

	logger.Log.Infow("task delete",
		"query", query,
		"args", []any{id},
		"result", rowsAffected,
		"error", err,
	)

	return err
}
