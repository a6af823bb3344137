package restclient

import (
	"encoding/json"
	"fmt"
	"runtime"
	"strings"

	"github.com/tidwall/gjson"
)

// authenticationErrorCodes are the HTTP statuses the API uses for a missing,
// invalid or under-privileged token.
var authenticationErrorCodes = []int{401, 403}

// RequestError is the single error type surfaced by the client.
// HTTPStatusCode is zero when no response was received.
type RequestError struct {
	Message        string
	HTTPStatusCode int
	ResponseData   any
	Err            error

	stack []uintptr
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	if e.HTTPStatusCode != 0 {
		return fmt.Sprintf("todoist request error (status %d): %s", e.HTTPStatusCode, e.Message)
	}
	return fmt.Sprintf("todoist request error: %s", e.Message)
}

// Unwrap returns the underlying cause.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// IsAuthenticationError reports whether the server rejected the credentials.
func (e *RequestError) IsAuthenticationError() bool {
	for _, code := range authenticationErrorCodes {
		if e.HTTPStatusCode == code {
			return true
		}
	}
	return false
}

// StackTrace formats the call stack captured when the request was started.
func (e *RequestError) StackTrace() string {
	if len(e.stack) == 0 {
		return ""
	}
	var b strings.Builder
	frames := runtime.CallersFrames(e.stack)
	for {
		frame, more := frames.Next()
		fmt.Fprintf(&b, "%s\n\t%s:%d\n", frame.Function, frame.File, frame.Line)
		if !more {
			break
		}
	}
	return b.String()
}

// WithStack attaches a captured call stack to the error.
func (e *RequestError) WithStack(stack []uintptr) *RequestError {
	e.stack = stack
	return e
}

// CaptureStack records the caller's stack, skipping skip frames above the
// caller of CaptureStack.
func CaptureStack(skip int) []uintptr {
	pcs := make([]uintptr, 32)
	n := runtime.Callers(skip+2, pcs)
	return pcs[:n]
}

// statusError is a response that arrived with a non-2xx status.
type statusError struct {
	resp *Response
}

func (e *statusError) Error() string {
	return fmt.Sprintf("request failed with status code %d", e.resp.StatusCode)
}

// translate converts a dispatch failure into a RequestError carrying the
// stack captured at the call site.
func translate(err error, stack []uintptr) *RequestError {
	if se, ok := err.(*statusError); ok {
		return (&RequestError{
			Message:        se.Error(),
			HTTPStatusCode: se.resp.StatusCode,
			ResponseData:   responseData(se.resp.Body),
		}).WithStack(stack)
	}
	return (&RequestError{Message: err.Error(), Err: err}).WithStack(stack)
}

// responseData decodes a JSON error body, falling back to the raw text.
func responseData(body []byte) any {
	if len(body) == 0 {
		return nil
	}
	if gjson.ValidBytes(body) {
		var data any
		if err := json.Unmarshal(body, &data); err == nil {
			return data
		}
	}
	return string(body)
}
