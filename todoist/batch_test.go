package todoist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ziyixi/todoist/testutils"
	"github.com/ziyixi/todoist/todoist/internal/batch"
)

type syncBody struct {
	Commands []struct {
		Type string         `json:"type"`
		UUID string         `json:"uuid"`
		Args map[string]any `json:"args"`
	} `json:"commands"`
}

// replySyncOK answers every sync request with "ok" for each command it carries.
func replySyncOK(c *gin.Context) {
	var body syncBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	status := gin.H{}
	for _, cmd := range body.Commands {
		status[cmd.UUID] = "ok"
	}
	c.JSON(http.StatusOK, gin.H{"sync_status": status, "temp_id_mapping": gin.H{}})
}

func TestClient_SyncEmptyQueue(t *testing.T) {
	client, fake := newTestClient(t)

	ok, err := client.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.Requests())
}

func TestClient_SyncSendsQueuedCommandsInOrder(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Handle(http.MethodPost, "/sync/v9/sync", replySyncOK)

	require.NoError(t, client.MoveTask("1", MoveTaskArgs{ProjectID: "2"}))
	require.NoError(t, client.ReorderTasks([]ReorderItem{{ID: "1", ChildOrder: 3}}))

	pending := client.PendingCommands()
	require.Len(t, pending, 2)

	ok, err := client.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, client.PendingCommands())

	reqs := fake.Requests()
	require.Len(t, reqs, 1)
	assert.NotEmpty(t, reqs[0].Header.Get("X-Request-Id"))

	var body syncBody
	reqs[0].DecodeJSON(t, &body)
	require.Len(t, body.Commands, 2)

	assert.Equal(t, "item_move", body.Commands[0].Type)
	assert.Equal(t, pending[0].UUID, body.Commands[0].UUID)
	assert.Equal(t, map[string]any{"id": "1", "project_id": "2"}, body.Commands[0].Args)

	assert.Equal(t, "item_reorder", body.Commands[1].Type)
	assert.Equal(t, pending[1].UUID, body.Commands[1].UUID)
	assert.Equal(t, map[string]any{
		"items": []any{map[string]any{"id": "1", "child_order": float64(3)}},
	}, body.Commands[1].Args)
}

func TestClient_SyncKeepsQueueOnFailure(t *testing.T) {
	t.Run("transport failure keeps commands for the next flush", func(t *testing.T) {
		client, fake := newTestClient(t)
		calls := 0
		fake.Handle(http.MethodPost, "/sync/v9/sync", func(c *gin.Context) {
			calls++
			if calls == 1 {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"})
				return
			}
			replySyncOK(c)
		})

		require.NoError(t, client.UncompleteTask("1"))
		uuid := client.PendingCommands()[0].UUID

		ok, err := client.Sync(context.Background())
		assert.False(t, ok)
		reqErr := requireRequestError(t, err)
		assert.Equal(t, http.StatusInternalServerError, reqErr.HTTPStatusCode)
		require.Len(t, client.PendingCommands(), 1)

		ok, err = client.Sync(context.Background())
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Empty(t, client.PendingCommands())

		var body syncBody
		fake.LastRequest(t).DecodeJSON(t, &body)
		require.Len(t, body.Commands, 1)
		assert.Equal(t, uuid, body.Commands[0].UUID, "retried command keeps its uuid")
	})

	t.Run("rejected command reports a command error", func(t *testing.T) {
		client, fake := newTestClient(t)
		require.NoError(t, client.MoveTask("1", MoveTaskArgs{SectionID: "9"}))
		require.NoError(t, client.UncompleteTask("2"))
		pending := client.PendingCommands()

		fake.Handle(http.MethodPost, "/sync/v9/sync", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"sync_status": gin.H{
				pending[0].UUID: "ok",
				pending[1].UUID: gin.H{"error_code": 22, "error": "Item not found"},
			}})
		})

		ok, err := client.Sync(context.Background())

		assert.False(t, ok)
		requireRequestError(t, err)
		var cmdErr *CommandError
		require.True(t, errors.As(err, &cmdErr))
		require.Len(t, cmdErr.Failures, 1)
		assert.JSONEq(t, `{"error_code": 22, "error": "Item not found"}`, string(cmdErr.Failures[pending[1].UUID]))
		assert.Contains(t, cmdErr.Error(), pending[1].UUID)
		assert.Len(t, client.PendingCommands(), 2)
	})
}

func TestClient_SyncLeavesLaterCommandsQueued(t *testing.T) {
	client, fake := newTestClient(t)
	fake.Handle(http.MethodPost, "/sync/v9/sync", func(c *gin.Context) {
		// A command queued while the flush is in flight.
		assert.NoError(t, client.UncompleteTask("late"))
		replySyncOK(c)
	})

	require.NoError(t, client.UncompleteTask("early"))

	ok, err := client.Sync(context.Background())

	require.NoError(t, err)
	assert.True(t, ok)
	pending := client.PendingCommands()
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"id": "late"}`, string(pending[0].Args))
}

// holdSync registers a sync handler that reports each arrival on arrived and
// answers only once release is closed.
func holdSync(fake *testutils.FakeTodoist, arrived chan<- struct{}, release <-chan struct{}) {
	fake.Handle(http.MethodPost, "/sync/v9/sync", func(c *gin.Context) {
		arrived <- struct{}{}
		<-release
		replySyncOK(c)
	})
}

func TestClient_ConcurrentSyncKeepsUnsentCommands(t *testing.T) {
	client, fake := newTestClient(t)
	arrived := make(chan struct{}, 2)
	release := make(chan struct{})
	holdSync(fake, arrived, release)

	require.NoError(t, client.UncompleteTask("early"))

	var wg sync.WaitGroup
	results := make([]bool, 2)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			ok, err := client.Sync(context.Background())
			assert.NoError(t, err)
			results[i] = ok
		}(i)
	}
	<-arrived
	<-arrived

	require.NoError(t, client.UncompleteTask("late"))
	close(release)
	wg.Wait()

	assert.Equal(t, []bool{true, true}, results)
	pending := client.PendingCommands()
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"id": "late"}`, string(pending[0].Args))
}

func TestClient_DiscardDuringSyncKeepsNewCommands(t *testing.T) {
	client, fake := newTestClient(t)
	arrived := make(chan struct{}, 1)
	release := make(chan struct{})
	holdSync(fake, arrived, release)

	require.NoError(t, client.UncompleteTask("old"))

	done := make(chan error, 1)
	go func() {
		_, err := client.Sync(context.Background())
		done <- err
	}()
	<-arrived

	client.DiscardPending()
	require.NoError(t, client.UncompleteTask("new"))
	close(release)
	require.NoError(t, <-done)

	pending := client.PendingCommands()
	require.Len(t, pending, 1)
	assert.JSONEq(t, `{"id": "new"}`, string(pending[0].Args))
}

func TestClient_DiscardPending(t *testing.T) {
	client, fake := newTestClient(t)
	require.NoError(t, client.UncompleteTask("1"))

	client.DiscardPending()

	ok, err := client.Sync(context.Background())
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, fake.Requests())
}

func TestClient_QueueingRejectsInvalidInput(t *testing.T) {
	client, _ := newTestClient(t)

	tests := []struct {
		name string
		run  func() error
	}{
		{"move without id", func() error { return client.MoveTask("", MoveTaskArgs{ProjectID: "1"}) }},
		{"move without destination", func() error { return client.MoveTask("1", MoveTaskArgs{}) }},
		{"move with two destinations", func() error {
			return client.MoveTask("1", MoveTaskArgs{ProjectID: "1", ParentID: "2"})
		}},
		{"reorder without items", func() error { return client.ReorderTasks(nil) }},
		{"reorder item without id", func() error {
			return client.ReorderTasks([]ReorderItem{{ID: "1"}, {ChildOrder: 2}})
		}},
		{"uncomplete without id", func() error { return client.UncompleteTask("") }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.run()
			requireRequestError(t, err)
			assert.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
	assert.Empty(t, client.PendingCommands())
}

func TestCommandFailed(t *testing.T) {
	_, cmdErr := batch.NewCommand(batch.ItemMove, []string{"not", "an", "object"})
	require.Error(t, cmdErr)

	err := commandFailed("item_move", cmdErr)

	assert.ErrorIs(t, err, ErrInvalidArgument)
	assert.ErrorIs(t, err, batch.ErrInvalidCommand)
	assert.Contains(t, err.Error(), "item_move")
}

func TestFailedCommands(t *testing.T) {
	assert.Empty(t, failedCommands([]byte(`{}`)))
	assert.Empty(t, failedCommands([]byte(`{"sync_status": {"a": "ok"}}`)))

	failures := failedCommands([]byte(`{"sync_status": {"a": "ok", "b": {"error": "x"}, "c": "failed"}}`))
	assert.Len(t, failures, 2)
	assert.Equal(t, json.RawMessage(`"failed"`), failures["c"])
}
