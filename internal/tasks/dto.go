package tasks

import "time"

type createTaskRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	ProjectID int64  `json:"project_id" validate:"required,gt=0"`
}

type updateTaskRequest struct {
	Name *string `json:"name,omitempty" validate:"omitempty,max=200"`
}

type taskResponse struct {
	ID         int64     `json:"id"`
	Name       string    `json:"name"`
	ProjectID  int64     `json:"project_id"`
	AssigneeID string    `json:"assignee_id"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func newTaskResponse(t *Task) taskResponse {
	return taskResponse{
		ID:         t.ID,
		Name:       t.Name,
		ProjectID:  t.ProjectID,
		AssigneeID: t.AssigneeID.String(),
		CreatedAt:  t.CreatedAt,
		UpdatedAt:  t.UpdatedAt,
	}
}
