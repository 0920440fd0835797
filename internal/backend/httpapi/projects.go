package httpapi

import (
	"context"
	"net/http"
	"strconv"

	"taskboard/internal/service"
)

// ProjectsClient maps project operations onto the API.
type ProjectsClient struct {
	c *Client
}

// ListProjects returns the projects of an owner.
func (p *ProjectsClient) ListProjects(ctx context.Context, ownerID int64, page service.Page) (service.Collection[service.Project], error) {
	q := pageQuery(page, DefaultProjectsLimit)
	q.Set("owner_id", strconv.FormatInt(ownerID, 10))

	var out service.Collection[service.Project]
	if err := p.c.Do(ctx, http.MethodGet, "/projects", q, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateProject creates a project.
func (p *ProjectsClient) CreateProject(ctx context.Context, np service.NewProject) (service.Project, error) {
	var out service.Project
	if err := p.c.Do(ctx, http.MethodPost, "/projects", nil, np, &out); err != nil {
		return service.Project{}, err
	}
	return out, nil
}
