// Package users is the user directory: durable user records keyed by a
// unique email.
package users

import (
	"context"

	"github.com/dmitrijs2005/taskmaster/internal/server/models"
)

type Repository interface {
	// Create stores user, assigning ID and CreatedAt. It returns
	// common.ErrDuplicateEmail when the email is already taken.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
