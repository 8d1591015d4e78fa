package models

import "time"

// Task is a to-do item owned by exactly one user. Title and Description are
// stored already HTML-escaped; Description is nil when not provided.
type Task struct {
	ID          string
	Title       string
	Description *string
	OwnerID     string
	CreatedAt   time.Time
}
