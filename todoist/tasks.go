package todoist

import (
	"context"

	"github.com/ziyixi/todoist/todoist/internal/restclient"
	"github.com/ziyixi/todoist/todoist/internal/schema"
)

// GetTask fetches an active task by id.
func (c *Client) GetTask(ctx context.Context, id string) (*Task, error) {
	if err := requireID("task id", id); err != nil {
		return nil, err
	}
	return fetch[Task](ctx, c, restclient.MethodGet, generatePath(endpointRestTasks, id), nil, taskSchema)
}

// GetTasks lists active tasks matching args.
func (c *Client) GetTasks(ctx context.Context, args GetTasksArgs) ([]Task, error) {
	return fetchList[Task](ctx, c, endpointRestTasks, args, taskSchema)
}

// AddTask creates a task.
func (c *Client) AddTask(ctx context.Context, args AddTaskArgs, opts ...RequestOption) (*Task, error) {
	return fetch[Task](ctx, c, restclient.MethodPost, endpointRestTasks, args, taskSchema, opts...)
}

// QuickAddTask creates a task from free text through the Sync API and
// returns it in the REST task shape.
func (c *Client) QuickAddTask(ctx context.Context, args QuickAddTaskArgs) (*Task, error) {
	resp, err := c.request(ctx, restclient.MethodPost, c.syncBase, endpointSyncQuickAdd, args, nil)
	if err != nil {
		return nil, err
	}
	item, err := schema.Decode[QuickAddTaskResponse](resp.Body, quickAddSchema)
	if err != nil {
		return nil, c.validationFailed(endpointSyncQuickAdd, err)
	}
	task, err := taskFromQuickAdd(item)
	if err != nil {
		return nil, c.validationFailed(endpointSyncQuickAdd, err)
	}
	return task, nil
}

// UpdateTask updates a task and returns its new state.
func (c *Client) UpdateTask(ctx context.Context, id string, args UpdateTaskArgs, opts ...RequestOption) (*Task, error) {
	if err := requireID("task id", id); err != nil {
		return nil, err
	}
	return fetch[Task](ctx, c, restclient.MethodPost, generatePath(endpointRestTasks, id), args, taskSchema, opts...)
}

// CloseTask completes a task.
func (c *Client) CloseTask(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("task id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodPost, generatePath(endpointRestTasks, id, endpointRestTaskClose), nil, opts)
}

// ReopenTask reopens a completed task.
func (c *Client) ReopenTask(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("task id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodPost, generatePath(endpointRestTasks, id, endpointRestTaskReopen), nil, opts)
}

// DeleteTask deletes a task.
func (c *Client) DeleteTask(ctx context.Context, id string, opts ...RequestOption) (bool, error) {
	if err := requireID("task id", id); err != nil {
		return false, err
	}
	return c.exec(ctx, restclient.MethodDelete, generatePath(endpointRestTasks, id), nil, opts)
}
