package todoist

import (
	"context"
	"encoding/json"

	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"

	"github.com/ziyixi/todoist/todoist/internal/batch"
	"github.com/ziyixi/todoist/todoist/internal/restclient"
)

// Command is a queued Sync API command.
type Command = batch.Command

type moveCommandArgs struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id,omitempty"`
	SectionID string `json:"section_id,omitempty"`
	ParentID  string `json:"parent_id,omitempty"`
}

type reorderCommandArgs struct {
	Items []ReorderItem `json:"items"`
}

type uncompleteCommandArgs struct {
	ID string `json:"id"`
}

type syncArgs struct {
	Commands []batch.Command `json:"commands"`
}

// MoveTask queues a move of a task to a project, a section or under a parent
// task. Nothing is sent until Sync.
func (c *Client) MoveTask(id string, args MoveTaskArgs) error {
	if err := requireID("task id", id); err != nil {
		return err
	}
	if !exactlyOne(args.ProjectID, args.SectionID, args.ParentID) {
		return invalidArgument("exactly one of project id, section id and parent id must be set")
	}
	return c.enqueue(batch.ItemMove, moveCommandArgs{
		ID:        id,
		ProjectID: args.ProjectID,
		SectionID: args.SectionID,
		ParentID:  args.ParentID,
	})
}

// ReorderTasks queues new child orders for sibling tasks.
func (c *Client) ReorderTasks(items []ReorderItem) error {
	if len(items) == 0 {
		return invalidArgument("at least one item is required")
	}
	for i, item := range items {
		if item.ID == "" {
			return invalidArgument("items[%d].id must be a non-empty string", i)
		}
	}
	return c.enqueue(batch.ItemReorder, reorderCommandArgs{Items: items})
}

// UncompleteTask queues the reopening of a completed task.
func (c *Client) UncompleteTask(id string) error {
	if err := requireID("task id", id); err != nil {
		return err
	}
	return c.enqueue(batch.ItemUncomplete, uncompleteCommandArgs{ID: id})
}

func (c *Client) enqueue(typ batch.CommandType, args any) error {
	cmd, err := batch.NewCommand(typ, args)
	if err != nil {
		return commandFailed(string(typ), err)
	}
	if err := c.queue.Enqueue(cmd); err != nil {
		return commandFailed(string(typ), err)
	}
	c.log.WithFields(logrus.Fields{
		"type": typ,
		"uuid": cmd.UUID,
	}).Debug("queued sync command")
	return nil
}

// PendingCommands returns a copy of the commands waiting for Sync.
func (c *Client) PendingCommands() []Command {
	return c.queue.Snapshot()
}

// DiscardPending drops every queued command without sending it.
func (c *Client) DiscardPending() {
	c.queue.Reset()
}

// Sync sends every queued command in one request, in the order they were
// queued. An empty queue makes no request. The sent commands leave the queue
// only when the server accepts all of them; on failure they stay queued and a
// later Sync resends them with the same uuids. Commands queued or discarded
// while a Sync is in flight are not affected by its outcome.
func (c *Client) Sync(ctx context.Context) (bool, error) {
	commands := c.queue.Snapshot()
	if len(commands) == 0 {
		return true, nil
	}

	resp, err := c.request(ctx, restclient.MethodPost, c.syncBase, endpointSync, syncArgs{Commands: commands}, nil)
	if err != nil {
		c.log.WithError(err).WithField("commands", len(commands)).Warn("sync failed, commands kept in queue")
		return false, err
	}

	if failures := failedCommands(resp.Body); len(failures) > 0 {
		cmdErr := &CommandError{Failures: failures}
		c.log.WithField("failed", len(failures)).Warn("server rejected sync commands")
		return false, (&RequestError{
			Message:        cmdErr.Error(),
			HTTPStatusCode: resp.StatusCode,
			Err:            cmdErr,
		}).WithStack(restclient.CaptureStack(1))
	}

	c.queue.Ack(commands)
	return true, nil
}

// failedCommands collects the sync_status entries that are not "ok".
func failedCommands(body []byte) map[string]json.RawMessage {
	status := gjson.GetBytes(body, "sync_status")
	if !status.IsObject() {
		return nil
	}
	failures := make(map[string]json.RawMessage)
	status.ForEach(func(key, value gjson.Result) bool {
		if value.Type == gjson.String && value.Str == "ok" {
			return true
		}
		failures[key.String()] = json.RawMessage(value.Raw)
		return true
	})
	return failures
}
