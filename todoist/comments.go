package todoist

import (
	"context"

	"github.com/ziyixi/todoist/todoist/internal/restclient"
)

func exactlyOne(values ...string) bool {
	n := 0
	for _, v := range values {
		if v != "" {
			n++
		}
	}
	return n == 1
}

// GetComments lists the comments of a task or of a project.
func (c *Client) GetComments(ctx context.Context, args GetCommentsArgs) ([]Comment, error) {
	if !exactlyOne(args.TaskID, args.ProjectID) {
		return nil, invalidArgument("exactly one of task id and project id must be set")
	}
	return fetchList[Comment](ctx, c, endpointRestComments, args, commentSchema)
}

// GetComment fetches a comment by id.
func (c *Client) GetComment(ctx context.Context, id string) (*Comment, error) {
	if err := requireID("comment id", id); err != nil {
		return nil, err
	}
	return fetch[Comment](ctx, c, restclient.MethodGet, generatePath(endpointRestComments, id), nil, commentSchema)
}

// AddComment comments on a task or a project.
func (c *Client) AddComment(ctx context.Context, args AddCommentArgs, opts ...RequestOption) (*Comment, error) {
	if !exactlyOne(args.TaskID, args.ProjectID) {
		return nil, invalidArgument("exactly one of task id and project id must be set")
	}
	return fetch[Comment](ctx, c, restclient.MethodPost, endpointRestComments, args, commentSchema, opts...)
}

// UpdateComment edits a comment and returns its new state.
func (c *Client) UpdateComment(ctx context.Context, id string, args UpdateCommentArgs, opts ...RequestOption) (*Comment, error) {
	if err := requireID("comment id", id); err != nil {
		return nil, err
	}
	return fetch[Comment](ctx, c, restclient.MethodPost, generatePath(endpointRestComments, id), args, commentSchema, opts...)
}

// DeleteComment deletes a comment.
func (c *Client) DeleteComment(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("comment id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodDelete, generatePath(endpointRestComments, id), nil, opts)
}
