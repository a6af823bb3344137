package todoist

import (
	"context"

	"github.com/ziyixi/todoist/todoist/internal/restclient"
)

// GetProject fetches a project by id.
func (c *Client) GetProject(ctx context.Context, id string) (*Project, error) {
	if err := requireID("project id", id); err != nil {
		return nil, err
	}
	return fetch[Project](ctx, c, restclient.MethodGet, generatePath(endpointRestProjects, id), nil, projectSchema)
}

// GetProjects lists all projects.
func (c *Client) GetProjects(ctx context.Context) ([]Project, error) {
	return fetchList[Project](ctx, c, endpointRestProjects, nil, projectSchema)
}

// AddProject creates a project.
func (c *Client) AddProject(ctx context.Context, args AddProjectArgs, opts ...RequestOption) (*Project, error) {
	return fetch[Project](ctx, c, restclient.MethodPost, endpointRestProjects, args, projectSchema, opts...)
}

// UpdateProject updates a project and returns its new state.
func (c *Client) UpdateProject(ctx context.Context, id string, args UpdateProjectArgs, opts ...RequestOption) (*Project, error) {
	if err := requireID("project id", id); err != nil {
		return nil, err
	}
	return fetch[Project](ctx, c, restclient.MethodPost, generatePath(endpointRestProjects, id), args, projectSchema, opts...)
}

// DeleteProject deletes a project and everything in it.
func (c *Client) DeleteProject(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("project id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodDelete, generatePath(endpointRestProjects, id), nil, opts)
}

// GetProjectCollaborators lists the users a project is shared with.
func (c *Client) GetProjectCollaborators(ctx context.Context, projectID string) ([]User, error) {
	if err := requireID("project id", projectID); err != nil {
		return nil, err
	}
	path := generatePath(endpointRestProjects, projectID, endpointRestProjectCollaborators)
	return fetchList[User](ctx, c, path, nil, userSchema)
}
