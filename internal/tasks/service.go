package tasks

import (
	"context"
	"time"

	"github.com/taskforge/taskforge/internal/auth"
)

// CreateInput collects the fields required to create a task.
type CreateInput struct {
	Name      string
	ProjectID int64
}

// UpdateInput carries a partial task update; nil fields are left untouched.
type UpdateInput struct {
	Name *string
}

// Service handles task business logic. Every read and mutation of an
// existing task is gated on the task-access policy: only the assignee gets
// through, with no bypass for elevated roles or the parent project's owner.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// Create inserts a task assigned to the caller. The referenced project must
// exist; a dangling reference surfaces as shared.ErrNotFound.
func (s *Service) Create(ctx context.Context, in CreateInput, assignee auth.User) (*Task, error) {
	now := time.Now().UTC()
	task := &Task{
		Name:       in.Name,
		ProjectID:  in.ProjectID,
		AssigneeID: assignee.ID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	if err := s.repo.Insert(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Get fetches a task the caller is assigned to.
func (s *Service) Get(ctx context.Context, id int64, user auth.User) (*Task, error) {
	task, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(user, auth.ActionAccessTask, task.AssigneeID); err != nil {
		return nil, err
	}
	return task, nil
}

// Update applies a partial update to a task the caller is assigned to.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput, user auth.User) (*Task, error) {
	task, err := s.Get(ctx, id, user)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		task.Name = *in.Name
	}
	task.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

// Delete removes a task the caller is assigned to.
func (s *Service) Delete(ctx context.Context, id int64, user auth.User) error {
	task, err := s.Get(ctx, id, user)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, task.ID)
}
