package backend

import (
	"context"
	"net/http"

	"shopdesk/internal/models"
)

// NewProject is the payload of POST projects.
type NewProject struct {
	Title         string               `json:"title"`
	Name          string               `json:"name"`
	Service       string               `json:"service"`
	Email         string               `json:"email"`
	ContactNumber string               `json:"contactNumber"`
	Address       string               `json:"address"`
	ExpectedDate  string               `json:"expectedDate"`
	Status        models.ProjectStatus `json:"status"`
	Tasks         []models.Task        `json:"tasks"`
}

// ProjectUpdate carries the editable project fields. Nil fields are left
// untouched by the backend; a non-nil empty Tasks clears the list.
type ProjectUpdate struct {
	Title        *string               `json:"title,omitempty"`
	ExpectedDate *string               `json:"expectedDate,omitempty"`
	Status       *models.ProjectStatus `json:"status,omitempty"`
	Tasks        *[]models.Task        `json:"tasks,omitempty"`
}

func (c *Client) Projects(ctx context.Context) ([]models.Project, error) {
	var out []models.Project
	if err := c.doJSON(ctx, http.MethodGet, "projects", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) ProjectsByStatus(ctx context.Context, status models.ProjectStatus) ([]models.Project, error) {
	return listByStatus[models.Project](ctx, c, "projects/"+segment(string(status)), "No projects found")
}

func (c *Client) CreateProject(ctx context.Context, p NewProject) error {
	return c.doJSON(ctx, http.MethodPost, "projects", p, nil)
}

func (c *Client) UpdateProject(ctx context.Context, id string, u ProjectUpdate) error {
	return c.doJSON(ctx, http.MethodPut, "projects/"+segment(id), u, nil)
}

func (c *Client) DeleteProject(ctx context.Context, id string) error {
	return c.doJSON(ctx, http.MethodDelete, "projects/"+segment(id), nil, nil)
}
