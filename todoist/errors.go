package todoist

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/ziyixi/todoist/todoist/internal/batch"
	"github.com/ziyixi/todoist/todoist/internal/restclient"
	"github.com/ziyixi/todoist/todoist/internal/schema"
)

// RequestError is returned by every client method. HTTPStatusCode is set when
// the server answered with an error status.
type RequestError = restclient.RequestError

// ValidationError identifies the field of a response that did not match the
// expected entity shape. It is wrapped in a RequestError.
type ValidationError = schema.ValidationError

// ErrInvalidArgument is wrapped by errors raised for invalid input before any
// request is made.
var ErrInvalidArgument = errors.New("invalid argument")

// CommandError lists the sync commands the server refused, keyed by command
// uuid. It is wrapped in a RequestError returned by Sync.
type CommandError struct {
	Failures map[string]json.RawMessage
}

// Error implements the error interface.
func (e *CommandError) Error() string {
	uuids := make([]string, 0, len(e.Failures))
	for id := range e.Failures {
		uuids = append(uuids, id)
	}
	sort.Strings(uuids)
	return fmt.Sprintf("%d sync command(s) failed: %s", len(uuids), strings.Join(uuids, ", "))
}

func invalidArgument(format string, args ...any) error {
	err := fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
	return (&RequestError{Message: err.Error(), Err: err}).WithStack(restclient.CaptureStack(1))
}

func requireID(name, id string) error {
	switch id {
	case "":
		return invalidArgument("%s must be a non-empty string", name)
	case ".", "..":
		return invalidArgument("%s must not be a dot segment, got %q", name, id)
	}
	return nil
}

func (c *Client) validationFailed(path string, err error) error {
	c.log.WithField("path", path).WithError(err).Debug("response failed validation")
	return (&RequestError{Message: err.Error(), Err: err}).WithStack(restclient.CaptureStack(2))
}

func commandFailed(cmd string, err error) error {
	if errors.Is(err, batch.ErrInvalidCommand) {
		return (&RequestError{
			Message: fmt.Sprintf("%s: %v", cmd, err),
			Err:     fmt.Errorf("%w: %w", ErrInvalidArgument, err),
		}).WithStack(restclient.CaptureStack(2))
	}
	return (&RequestError{Message: err.Error(), Err: err}).WithStack(restclient.CaptureStack(2))
}
