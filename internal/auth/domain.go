package auth

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Role is an organizational role attached to a user account.
type Role string

const (
	RoleOwner           Role = "owner"
	RoleProjectLead     Role = "project_lead"
	RoleProjectDirector Role = "project_director"
	RoleRegular         Role = "regular"
)

// ParseRole converts a raw string into a Role.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleOwner, RoleProjectLead, RoleProjectDirector, RoleRegular:
		return Role(s), nil
	default:
		return "", fmt.Errorf("auth: unknown role %q", s)
	}
}

// Valid reports whether the role is one of the known values.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleProjectLead, RoleProjectDirector, RoleRegular:
		return true
	}
	return false
}

// User represents an authenticated user account. PasswordHash is opaque to
// every caller outside this package and is never serialized or logged.
type User struct {
	ID           uuid.UUID
	Email        string
	FullName     string
	PasswordHash string
	Role         Role
	IsActive     bool
	IsVerified   bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
