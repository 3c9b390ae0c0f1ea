package projects

import (
	"context"
	"time"

	"github.com/taskforge/taskforge/internal/auth"
)

// CreateInput collects the fields required to create a project.
type CreateInput struct {
	Name     string
	Status   Status
	Priority Priority
}

// UpdateInput carries a partial project update; nil fields are left untouched.
type UpdateInput struct {
	Name     *string
	Status   *Status
	Priority *Priority
}

// Service handles project business logic. Mutations are gated on the
// project-modification policy before touching storage.
type Service struct {
	repo RepositoryPort
}

// NewService builds a Service instance.
func NewService(repo RepositoryPort) *Service {
	return &Service{repo: repo}
}

// List returns all projects visible to an authenticated user.
func (s *Service) List(ctx context.Context) ([]Project, error) {
	return s.repo.List(ctx)
}

// Get fetches a single project.
func (s *Service) Get(ctx context.Context, id int64) (*Project, error) {
	return s.repo.Get(ctx, id)
}

// Create inserts a project owned by the caller.
func (s *Service) Create(ctx context.Context, in CreateInput, owner auth.User) (*Project, error) {
	now := time.Now().UTC()
	project := &Project{
		Name:      in.Name,
		Status:    in.Status,
		Priority:  in.Priority,
		OwnerID:   owner.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Update applies a partial update after the caller passes the
// project-modification policy.
func (s *Service) Update(ctx context.Context, id int64, in UpdateInput, user auth.User) (*Project, error) {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := auth.Authorize(user, auth.ActionModifyProject, project.OwnerID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		project.Name = *in.Name
	}
	if in.Status != nil {
		project.Status = *in.Status
	}
	if in.Priority != nil {
		project.Priority = *in.Priority
	}
	project.UpdatedAt = time.Now().UTC()
	if err := s.repo.Update(ctx, project); err != nil {
		return nil, err
	}
	return project, nil
}

// Delete removes a project after the caller passes the project-modification
// policy.
func (s *Service) Delete(ctx context.Context, id int64, user auth.User) error {
	project, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := auth.Authorize(user, auth.ActionModifyProject, project.OwnerID); err != nil {
		return err
	}
	return s.repo.Delete(ctx, project.ID)
}
