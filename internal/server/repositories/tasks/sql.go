package tasks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/dbx"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/google/uuid"
)

type SQLRepository struct {
	db dbx.DBTX
}

func NewSQLRepository(db dbx.DBTX) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) Create(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`INSERT INTO tasks (id, title, description, owner_id, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 `

	id := uuid.NewString()
	createdAt := time.Now().UTC().Truncate(time.Microsecond)

	_, err := r.db.ExecContext(ctx, query, id, task.Title, nullString(task.Description), task.OwnerID, createdAt)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	task.ID = id
	task.CreatedAt = createdAt

	return task, nil
}

func (r *SQLRepository) Get(ctx context.Context, id string) (*models.Task, error) {
	query :=
		`SELECT id, title, description, owner_id, created_at FROM tasks
		 WHERE id = $1
		 `

	task, err := scanTask(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return task, nil
}

func (r *SQLRepository) ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*models.Task, error) {
	query :=
		`SELECT id, title, description, owner_id, created_at FROM tasks
		 WHERE owner_id = $1
		 ORDER BY seq
		 LIMIT $2 OFFSET $3
		 `

	rows, err := r.db.QueryContext(ctx, query, ownerID, limit, skip)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := make([]*models.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *SQLRepository) Update(ctx context.Context, task *models.Task) (*models.Task, error) {
	query :=
		`UPDATE tasks SET title = $1, description = $2
		 WHERE id = $3
		 `

	res, err := r.db.ExecContext(ctx, query, task.Title, nullString(task.Description), task.ID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	if err := expectOneRow(res); err != nil {
		return nil, err
	}

	return r.Get(ctx, task.ID)
}

func (r *SQLRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tasks WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	return expectOneRow(res)
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTask(s scanner) (*models.Task, error) {
	task := &models.Task{}
	var description sql.NullString

	if err := s.Scan(&task.ID, &task.Title, &description, &task.OwnerID, &task.CreatedAt); err != nil {
		return nil, err
	}
	if description.Valid {
		task.Description = &description.String
	}

	return task, nil
}

func expectOneRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}
	return nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
