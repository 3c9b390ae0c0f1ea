package projects

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskforge/taskforge/internal/auth"
	"github.com/taskforge/taskforge/internal/shared"
)

type mockRepository struct {
	projects map[int64]*Project
	byName   map[string]int64
	nextID   int64
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		projects: make(map[int64]*Project),
		byName:   make(map[string]int64),
		nextID:   1,
	}
}

func (m *mockRepository) List(ctx context.Context) ([]Project, error) {
	result := make([]Project, 0, len(m.projects))
	for _, p := range m.projects {
		result = append(result, *p)
	}
	return result, nil
}

func (m *mockRepository) Get(ctx context.Context, id int64) (*Project, error) {
	p, ok := m.projects[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	clone := *p
	return &clone, nil
}

func (m *mockRepository) Insert(ctx context.Context, p *Project) error {
	if _, taken := m.byName[p.Name]; taken {
		return shared.ErrDuplicate
	}
	p.ID = m.nextID
	m.nextID++
	clone := *p
	m.projects[p.ID] = &clone
	m.byName[p.Name] = p.ID
	return nil
}

func (m *mockRepository) Update(ctx context.Context, p *Project) error {
	stored, ok := m.projects[p.ID]
	if !ok {
		return shared.ErrNotFound
	}
	if owner, taken := m.byName[p.Name]; taken && owner != p.ID {
		return shared.ErrDuplicate
	}
	delete(m.byName, stored.Name)
	clone := *p
	m.projects[p.ID] = &clone
	m.byName[p.Name] = p.ID
	return nil
}

func (m *mockRepository) Delete(ctx context.Context, id int64) error {
	p, ok := m.projects[id]
	if !ok {
		return shared.ErrNotFound
	}
	delete(m.byName, p.Name)
	delete(m.projects, id)
	return nil
}

func regularUser() auth.User {
	return auth.User{ID: uuid.New(), Role: auth.RoleRegular, IsActive: true}
}

func TestCreateProject(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	owner := regularUser()

	project, err := service.Create(context.Background(), CreateInput{
		Name:     "Website Relaunch",
		Status:   StatusPending,
		Priority: PriorityHigh,
	}, owner)
	require.NoError(t, err)
	assert.NotZero(t, project.ID)
	assert.Equal(t, owner.ID, project.OwnerID)
	assert.Equal(t, StatusPending, project.Status)
}

func TestCreateProjectDuplicateName(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	_, err := service.Create(context.Background(), CreateInput{Name: "Website Relaunch", Status: StatusPending, Priority: PriorityLow}, regularUser())
	require.NoError(t, err)

	_, err = service.Create(context.Background(), CreateInput{Name: "Website Relaunch", Status: StatusPending, Priority: PriorityHigh}, regularUser())
	assert.ErrorIs(t, err, shared.ErrDuplicate)
}

func TestUpdateProjectAuthorization(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	owner := regularUser()

	project, err := service.Create(context.Background(), CreateInput{Name: "Website Relaunch", Status: StatusPending, Priority: PriorityLow}, owner)
	require.NoError(t, err)

	newStatus := StatusInProgress

	cases := []struct {
		name    string
		user    auth.User
		wantErr error
	}{
		{"owner", owner, nil},
		{"stranger regular", regularUser(), shared.ErrForbidden},
		{"stranger project lead", auth.User{ID: uuid.New(), Role: auth.RoleProjectLead}, shared.ErrForbidden},
		{"org owner", auth.User{ID: uuid.New(), Role: auth.RoleOwner}, nil},
		{"project director", auth.User{ID: uuid.New(), Role: auth.RoleProjectDirector}, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := service.Update(context.Background(), project.ID, UpdateInput{Status: &newStatus}, tc.user)
			if tc.wantErr != nil {
				assert.ErrorIs(t, err, tc.wantErr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestUpdateProjectPartial(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	owner := regularUser()

	project, err := service.Create(context.Background(), CreateInput{Name: "Website Relaunch", Status: StatusPending, Priority: PriorityLow}, owner)
	require.NoError(t, err)

	newPriority := PriorityHigh
	updated, err := service.Update(context.Background(), project.ID, UpdateInput{Priority: &newPriority}, owner)
	require.NoError(t, err)

	assert.Equal(t, "Website Relaunch", updated.Name)
	assert.Equal(t, StatusPending, updated.Status)
	assert.Equal(t, PriorityHigh, updated.Priority)
}

func TestUpdateProjectNotFound(t *testing.T) {
	service := NewService(newMockRepository())

	newStatus := StatusCompleted
	_, err := service.Update(context.Background(), 42, UpdateInput{Status: &newStatus}, regularUser())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDeleteProject(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)
	owner := regularUser()

	project, err := service.Create(context.Background(), CreateInput{Name: "Website Relaunch", Status: StatusPending, Priority: PriorityLow}, owner)
	require.NoError(t, err)

	err = service.Delete(context.Background(), project.ID, regularUser())
	assert.ErrorIs(t, err, shared.ErrForbidden)

	require.NoError(t, service.Delete(context.Background(), project.ID, owner))

	_, err = service.Get(context.Background(), project.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestListProjectsVisibleToEveryone(t *testing.T) {
	repo := newMockRepository()
	service := NewService(repo)

	_, err := service.Create(context.Background(), CreateInput{Name: "Alpha", Status: StatusPending, Priority: PriorityLow}, regularUser())
	require.NoError(t, err)
	_, err = service.Create(context.Background(), CreateInput{Name: "Beta", Status: StatusInProgress, Priority: PriorityHigh}, regularUser())
	require.NoError(t, err)

	projects, err := service.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, projects, 2)
}

func TestParseStatusAndPriority(t *testing.T) {
	for _, raw := range []string{"pending", "in_progress", "completed", "archived"} {
		_, err := ParseStatus(raw)
		assert.NoError(t, err, raw)
	}
	_, err := ParseStatus("paused")
	assert.Error(t, err)

	for _, raw := range []string{"high", "medium", "low"} {
		_, err := ParsePriority(raw)
		assert.NoError(t, err, raw)
	}
	_, err = ParsePriority("urgent")
	assert.Error(t, err)
}
