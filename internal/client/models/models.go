// Package models holds the client-side view of API resources.
package models

import (
	"fmt"
	"time"
)

type User struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description"`
	OwnerID     string    `json:"owner_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// TaskInput is the body of create and update requests.
type TaskInput struct {
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
}

// String renders a one-line summary for listings.
func (t Task) String() string {
	return fmt.Sprintf("%s  %s  (%s)", t.ID, t.Title, t.CreatedAt.Local().Format(time.DateTime))
}
