package projects

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Status tracks a project's lifecycle.
type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in_progress"
	StatusCompleted  Status = "completed"
	StatusArchived   Status = "archived"
)

// ParseStatus converts a raw string into a Status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusPending, StatusInProgress, StatusCompleted, StatusArchived:
		return Status(s), nil
	default:
		return "", fmt.Errorf("projects: unknown status %q", s)
	}
}

// Priority ranks a project's urgency.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority converts a raw string into a Priority.
func ParsePriority(s string) (Priority, error) {
	switch Priority(s) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(s), nil
	default:
		return "", fmt.Errorf("projects: unknown priority %q", s)
	}
}

// Project is a unit of work owned by a user. OwnerID is a weak reference:
// the project does not own the user record and user deletion is out of scope.
type Project struct {
	ID        int64
	Name      string
	Status    Status
	Priority  Priority
	OwnerID   uuid.UUID
	CreatedAt time.Time
	UpdatedAt time.Time
}
