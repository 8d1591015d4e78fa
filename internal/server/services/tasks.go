package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/taskmaster/internal/dbx"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
	"github.com/dmitrijs2005/taskmaster/internal/server/repositories/repomanager"
)

// TaskInput carries caller-supplied task fields. Lengths are validated by the
// transport layer; TaskService escapes the text before storing it.
type TaskInput struct {
	Title       string
	Description *string
}

// TaskService implements task CRUD for an authenticated user. Reads and
// mutations of a single task check existence first, then ownership.
type TaskService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	maxPageSize int
}

// NewTaskService constructs a TaskService. List clamps limit to maxPageSize
// when maxPageSize is positive.
func NewTaskService(db *sql.DB, m repomanager.RepositoryManager, maxPageSize int) *TaskService {
	return &TaskService{db: db, repomanager: m, maxPageSize: maxPageSize}
}

// Create stores a new task owned by owner.
func (s *TaskService) Create(ctx context.Context, owner *models.User, in TaskInput) (*models.Task, error) {
	task := &models.Task{OwnerID: owner.ID}
	in.applyTo(task)

	t, err := s.repomanager.Tasks(s.db).Create(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("error creating task: %w", err)
	}
	return t, nil
}

// List returns the owner's tasks in insertion order.
func (s *TaskService) List(ctx context.Context, owner *models.User, skip, limit int) ([]*models.Task, error) {
	if skip < 0 {
		skip = 0
	}
	if limit < 0 {
		limit = 0
	}
	if s.maxPageSize > 0 && limit > s.maxPageSize {
		limit = s.maxPageSize
	}

	return s.repomanager.Tasks(s.db).ListByOwner(ctx, owner.ID, skip, limit)
}

// Get returns the task if it exists and belongs to user.
func (s *TaskService) Get(ctx context.Context, user *models.User, id string) (*models.Task, error) {
	return s.loadOwned(ctx, s.db, user, id)
}

// Update replaces title and description of a task owned by user.
func (s *TaskService) Update(ctx context.Context, user *models.User, id string, in TaskInput) (*models.Task, error) {
	var updated *models.Task

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		task, err := s.loadOwned(ctx, tx, user, id)
		if err != nil {
			return err
		}

		in.applyTo(task)

		updated, err = s.repomanager.Tasks(tx).Update(ctx, task)
		return err
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete permanently removes a task owned by user.
func (s *TaskService) Delete(ctx context.Context, user *models.User, id string) error {
	return dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if _, err := s.loadOwned(ctx, tx, user, id); err != nil {
			return err
		}
		return s.repomanager.Tasks(tx).Delete(ctx, id)
	})
}

func (s *TaskService) loadOwned(ctx context.Context, db dbx.DBTX, user *models.User, id string) (*models.Task, error) {
	task, err := s.repomanager.Tasks(db).Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := Authorize(user, task); err != nil {
		return nil, err
	}
	return task, nil
}

// htmlEscaper produces the same entities as Python's html.escape, which
// existing API clients expect.
var htmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#x27;",
)

func (in TaskInput) applyTo(task *models.Task) {
	task.Title = htmlEscaper.Replace(in.Title)
	task.Description = nil
	if in.Description != nil {
		d := htmlEscaper.Replace(*in.Description)
		task.Description = &d
	}
}
