// Package tasks is the task store. Every task belongs to exactly one owner;
// access control is the caller's job.
package tasks

import (
	"context"

	"github.com/dmitrijs2005/taskmaster/internal/server/models"
)

type Repository interface {
	// Create stores task, assigning ID and CreatedAt.
	Create(ctx context.Context, task *models.Task) (*models.Task, error)
	// Get returns common.ErrorNotFound for unknown ids.
	Get(ctx context.Context, id string) (*models.Task, error)
	// ListByOwner returns the owner's tasks in insertion order.
	ListByOwner(ctx context.Context, ownerID string, skip, limit int) ([]*models.Task, error)
	// Update replaces title and description and returns the stored row.
	Update(ctx context.Context, task *models.Task) (*models.Task, error)
	// Delete removes the task permanently.
	Delete(ctx context.Context, id string) error
}
