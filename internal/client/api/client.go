// Package api is the HTTP client for the TaskMaster API.
package api

import (
	"context"

	"github.com/dmitrijs2005/taskmaster/internal/client/models"
)

type Client interface {
	Ping(ctx context.Context) error
	Register(ctx context.Context, email string, password []byte) (*models.User, error)
	Login(ctx context.Context, email string, password []byte) error
	Logout()
	Me(ctx context.Context) (*models.User, error)
	CreateTask(ctx context.Context, in models.TaskInput) (*models.Task, error)
	ListTasks(ctx context.Context, skip, limit int) ([]*models.Task, error)
	GetTask(ctx context.Context, id string) (*models.Task, error)
	UpdateTask(ctx context.Context, id string, in models.TaskInput) (*models.Task, error)
	DeleteTask(ctx context.Context, id string) error
}
