package projects

import "time"

type createProjectRequest struct {
	Name     string `json:"name" validate:"required,max=200"`
	Status   string `json:"status" validate:"required,oneof=pending in_progress completed archived"`
	Priority string `json:"priority" validate:"required,oneof=high medium low"`
}

type updateProjectRequest struct {
	Name     *string `json:"name,omitempty" validate:"omitempty,max=200"`
	Status   *string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed archived"`
	Priority *string `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
}

type projectResponse struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Status    string    `json:"status"`
	Priority  string    `json:"priority"`
	OwnerID   string    `json:"owner_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func newProjectResponse(p *Project) projectResponse {
	return projectResponse{
		ID:        p.ID,
		Name:      p.Name,
		Status:    string(p.Status),
		Priority:  string(p.Priority),
		OwnerID:   p.OwnerID.String(),
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}
