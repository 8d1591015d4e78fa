// Package models defines server-side data models persisted in the database.
package models

import "time"

type User struct {
	ID             string
	Email          string
	HashedPassword string
	IsActive       bool
	CreatedAt      time.Time
}
