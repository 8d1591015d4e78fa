package services

import (
	"github.com/dmitrijs2005/taskmaster/internal/common"
	"github.com/dmitrijs2005/taskmaster/internal/server/models"
)

// Authorize allows access only to the task's owner.
func Authorize(user *models.User, task *models.Task) error {
	if user == nil || task == nil || user.ID != task.OwnerID {
		return common.ErrForbidden
	}
	return nil
}
