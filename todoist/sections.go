package todoist

import (
	"context"

	"github.com/ziyixi/todoist/todoist/internal/restclient"
)

type getSectionsArgs struct {
	ProjectID string `json:"project_id,omitempty"`
}

// GetSections lists sections, limited to one project when projectID is set.
func (c *Client) GetSections(ctx context.Context, projectID string) ([]Section, error) {
	var args any
	if projectID != "" {
		args = getSectionsArgs{ProjectID: projectID}
	}
	return fetchList[Section](ctx, c, endpointRestSections, args, sectionSchema)
}

// GetSection fetches a section by id.
func (c *Client) GetSection(ctx context.Context, id string) (*Section, error) {
	if err := requireID("section id", id); err != nil {
		return nil, err
	}
	return fetch[Section](ctx, c, restclient.MethodGet, generatePath(endpointRestSections, id), nil, sectionSchema)
}

// AddSection creates a section.
func (c *Client) AddSection(ctx context.Context, args AddSectionArgs, opts ...RequestOption) (*Section, error) {
	return fetch[Section](ctx, c, restclient.MethodPost, endpointRestSections, args, sectionSchema, opts...)
}

// UpdateSection renames a section.
func (c *Client) UpdateSection(ctx context.Context, id string, args UpdateSectionArgs, opts ...RequestOption) (*Section, error) {
	if err := requireID("section id", id); err != nil {
		return nil, err
	}
	return fetch[Section](ctx, c, restclient.MethodPost, generatePath(endpointRestSections, id), args, sectionSchema, opts...)
}

// DeleteSection deletes a section and its tasks.
func (c *Client) DeleteSection(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("section id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodDelete, generatePath(endpointRestSections, id), nil, opts)
}
