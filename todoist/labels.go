package todoist

import (
	"context"

	"github.com/ziyixi/todoist/todoist/internal/restclient"
	"github.com/ziyixi/todoist/todoist/internal/schema"
)

// GetLabel fetches a personal label.
func (c *Client) GetLabel(ctx context.Context, id string) (*Label, error) {
	if err := requireID("label id", id); err != nil {
		return nil, err
	}
	return fetch[Label](ctx, c, restclient.MethodGet, generatePath(endpointRestLabels, id), nil, labelSchema)
}

// GetLabels lists the personal labels.
func (c *Client) GetLabels(ctx context.Context) ([]Label, error) {
	return fetchList[Label](ctx, c, endpointRestLabels, nil, labelSchema)
}

// AddLabel adds a personal label.
func (c *Client) AddLabel(ctx context.Context, args AddLabelArgs, opts ...RequestOption) (*Label, error) {
	return fetch[Label](ctx, c, restclient.MethodPost, endpointRestLabels, args, labelSchema, opts...)
}

// UpdateLabel updates a personal label.
func (c *Client) UpdateLabel(ctx context.Context, id string, args UpdateLabelArgs, opts ...RequestOption) (*Label, error) {
	if err := requireID("label id", id); err != nil {
		return nil, err
	}
	return fetch[Label](ctx, c, restclient.MethodPost, generatePath(endpointRestLabels, id), args, labelSchema, opts...)
}

// DeleteLabel deletes a personal label.
func (c *Client) DeleteLabel(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("label id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodDelete, generatePath(endpointRestLabels, id), nil, opts)
}

// GetSharedLabels lists the names of labels used on shared tasks.
func (c *Client) GetSharedLabels(ctx context.Context) ([]string, error) {
	resp, err := c.request(ctx, restclient.MethodGet, c.restBase, endpointRestLabelsShared, nil, nil)
	if err != nil {
		return nil, err
	}
	names, err := schema.DecodeValues[string](resp.Body, "shared labels", sharedLabelElem)
	if err != nil {
		return nil, c.validationFailed(endpointRestLabelsShared, err)
	}
	return names, nil
}

// RenameSharedLabel renames every occurrence of a shared label.
func (c *Client) RenameSharedLabel(ctx context.Context, args RenameSharedLabelArgs) error {
	if args.Name == "" || args.NewName == "" {
		return invalidArgument("shared label name and new name must be non-empty")
	}
	_, err := c.exec(ctx, restclient.MethodPost, endpointRestLabelsSharedRename, args, nil)
	return err
}

// RemoveSharedLabel removes a shared label from every task.
func (c *Client) RemoveSharedLabel(ctx context.Context, args RemoveSharedLabelArgs) error {
	if args.Name == "" {
		return invalidArgument("shared label name must be non-empty")
	}
	_, err := c.exec(ctx, restclient.MethodPost, endpointRestLabelsSharedRemove, args, nil)
	return err
}
