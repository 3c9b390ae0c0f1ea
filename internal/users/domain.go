package users

import (
	"time"

	"github.com/google/uuid"
)

// User represents a user account for management views. The password hash is
// deliberately absent from this projection.
type User struct {
	ID         uuid.UUID
	Email      string
	FullName   string
	Role       string
	IsActive   bool
	IsVerified bool
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
