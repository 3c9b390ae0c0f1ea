package auth

import (
	"github.com/google/uuid"

	"github.com/taskforge/taskforge/internal/shared"
)

// Action enumerates the access decisions the policy can make.
type Action int

const (
	// ActionModifyProject covers project update and delete.
	ActionModifyProject Action = iota
	// ActionAccessTask covers task read, update, and delete.
	ActionAccessTask
)

// CanModifyProject reports whether u may mutate a project owned by
// projectOwnerID. Ownership grants access, and the owner and
// project_director roles bypass the ownership check organization-wide.
func CanModifyProject(u User, projectOwnerID uuid.UUID) bool {
	if u.ID == projectOwnerID {
		return true
	}
	switch u.Role {
	case RoleOwner, RoleProjectDirector:
		return true
	case RoleProjectLead, RoleRegular:
		return false
	}
	return false
}

// CanAccessTask reports whether u may read or mutate a task assigned to
// assigneeID. Only the assignee qualifies: unlike the project policy there is
// no role bypass, and the parent project's owner gets no access either. The
// asymmetry mirrors the upstream product behavior and is kept on purpose.
func CanAccessTask(u User, assigneeID uuid.UUID) bool {
	return u.ID == assigneeID
}

// Authorize converts a policy decision into an error outcome: nil when the
// action is allowed, shared.ErrForbidden otherwise. subjectID is the project
// owner for ActionModifyProject and the task assignee for ActionAccessTask.
func Authorize(u User, action Action, subjectID uuid.UUID) error {
	var allowed bool
	switch action {
	case ActionModifyProject:
		allowed = CanModifyProject(u, subjectID)
	case ActionAccessTask:
		allowed = CanAccessTask(u, subjectID)
	}
	if !allowed {
		return shared.ErrForbidden
	}
	return nil
}
