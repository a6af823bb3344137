// Package batch holds Sync API commands until they are flushed as one
// atomic request.
package batch

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// CommandType names a Sync API command.
type CommandType string

const (
	ItemMove       CommandType = "item_move"
	ItemReorder    CommandType = "item_reorder"
	ItemUncomplete CommandType = "item_uncomplete"
)

// ErrInvalidCommand is returned when a command fails shape validation.
var ErrInvalidCommand = errors.New("invalid command")

// Command is a single Sync API mutation. Args are encoded when the command is
// created, so a command cannot change after it has been queued.
type Command struct {
	Type CommandType     `json:"type"`
	UUID string          `json:"uuid"`
	Args json.RawMessage `json:"args"`
}

// NewCommand encodes args and assigns a fresh UUID used by the server to
// detect replays.
func NewCommand(typ CommandType, args any) (Command, error) {
	if typ == "" {
		return Command{}, fmt.Errorf("%w: command type is empty", ErrInvalidCommand)
	}
	raw, err := json.Marshal(args)
	if err != nil {
		return Command{}, fmt.Errorf("%w: failed to encode %s args: %v", ErrInvalidCommand, typ, err)
	}
	if len(raw) == 0 || raw[0] != '{' {
		return Command{}, fmt.Errorf("%w: %s args must be an object", ErrInvalidCommand, typ)
	}
	return Command{Type: typ, UUID: uuid.NewString(), Args: raw}, nil
}

// Queue is an ordered list of commands. Insertion order is flush order.
// All methods are safe for concurrent use.
type Queue struct {
	mu       sync.Mutex
	commands []Command
}

// NewQueue returns an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Enqueue appends cmd after checking its shape.
func (q *Queue) Enqueue(cmd Command) error {
	if cmd.Type == "" || cmd.UUID == "" {
		return fmt.Errorf("%w: type and uuid are required", ErrInvalidCommand)
	}
	if !json.Valid(cmd.Args) {
		return fmt.Errorf("%w: args of %s are not valid JSON", ErrInvalidCommand, cmd.Type)
	}
	q.mu.Lock()
	defer q.mu.Unlock()
	q.commands = append(q.commands, cmd)
	return nil
}

// Snapshot returns a copy of the queued commands in order.
func (q *Queue) Snapshot() []Command {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := make([]Command, len(q.commands))
	copy(out, q.commands)
	return out
}

// Ack removes the given commands, matched by UUID. It is called with the
// commands of a Snapshot once the server accepted them; commands enqueued
// after that snapshot, and commands already removed, are left alone.
func (q *Queue) Ack(sent []Command) {
	if len(sent) == 0 {
		return
	}
	done := make(map[string]struct{}, len(sent))
	for _, cmd := range sent {
		done[cmd.UUID] = struct{}{}
	}

	q.mu.Lock()
	defer q.mu.Unlock()
	kept := make([]Command, 0, len(q.commands))
	for _, cmd := range q.commands {
		if _, ok := done[cmd.UUID]; !ok {
			kept = append(kept, cmd)
		}
	}
	q.commands = kept
}

// Len returns the number of queued commands.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.commands)
}

// Reset drops every queued command.
func (q *Queue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.commands = nil
}
