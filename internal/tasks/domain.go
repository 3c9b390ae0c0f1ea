package tasks

import (
	"time"

	"github.com/google/uuid"
)

// Task is a unit of work inside a project, assigned to exactly one user.
// ProjectID and AssigneeID are weak references validated at creation time.
type Task struct {
	ID         int64
	Name       string
	ProjectID  int64
	AssigneeID uuid.UUID
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
