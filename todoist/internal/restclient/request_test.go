package restclient

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ziyixi/todoist/testutils/mocks"
)

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDispatcher(opts ...Option) *Dispatcher {
	base := []Option{WithLogger(quietLogger()), WithRetryDelay(time.Millisecond)}
	return New(append(base, opts...)...)
}

func TestDispatcher_Headers(t *testing.T) {
	t.Run("sends auth, content type and generated request id on POST", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "POST", r.Method)
			assert.Equal(t, "/rest/v2/tasks", r.URL.Path)
			assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
			assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
			assert.Equal(t, "generated-id", r.Header.Get("X-Request-Id"))

			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "Buy milk", body["content"])

			_, _ = w.Write([]byte(`{"id":"1"}`)) // Best effort write
		}))
		defer server.Close()

		d := newTestDispatcher(WithRequestIDGenerator(func() string { return "generated-id" }))
		resp, err := d.Do(context.Background(), Request{
			Method:  MethodPost,
			BaseURI: server.URL + "/rest/v2/",
			Path:    "tasks",
			Token:   "test-token",
			Payload: map[string]string{"content": "Buy milk"},
		})

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.JSONEq(t, `{"id":"1"}`, string(resp.Body))
	})

	t.Run("keeps caller supplied request id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "req-123", r.Header.Get("X-Request-Id"))
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		d := newTestDispatcher()
		resp, err := d.Do(context.Background(), Request{
			Method:    MethodPost,
			BaseURI:   server.URL,
			Path:      "tasks/1/close",
			Token:     "test-token",
			RequestID: "req-123",
		})

		require.NoError(t, err)
		assert.True(t, IsSuccess(resp))
	})

	t.Run("generates a non-empty request id by default", func(t *testing.T) {
		var seen string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			seen = r.Header.Get("X-Request-Id")
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		_, err := newTestDispatcher().Do(context.Background(), Request{Method: MethodPost, BaseURI: server.URL, Path: "sync"})

		require.NoError(t, err)
		assert.NotEmpty(t, seen)
	})

	t.Run("GET and DELETE carry no request id or auth when absent", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Empty(t, r.Header.Get("X-Request-Id"))
			assert.Empty(t, r.Header.Get("Authorization"))
			body, _ := io.ReadAll(r.Body)
			assert.Empty(t, body)
			w.WriteHeader(http.StatusNoContent)
		}))
		defer server.Close()

		d := newTestDispatcher()
		for _, method := range []Method{MethodGet, MethodDelete} {
			_, err := d.Do(context.Background(), Request{Method: method, BaseURI: server.URL, Path: "labels/9"})
			assert.NoError(t, err)
		}
	})

	t.Run("GET payload becomes query parameters", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			q := r.URL.Query()
			assert.Equal(t, "12", q.Get("project_id"))
			assert.Equal(t, "1,2,3", q.Get("ids"))
			assert.False(t, q.Has("section_id"))
			_, _ = w.Write([]byte(`[]`)) // Best effort write
		}))
		defer server.Close()

		payload := struct {
			ProjectID string   `json:"project_id"`
			SectionID *string  `json:"section_id"`
			IDs       []string `json:"ids"`
		}{ProjectID: "12", IDs: []string{"1", "2", "3"}}

		_, err := newTestDispatcher().Do(context.Background(), Request{
			Method: MethodGet, BaseURI: server.URL, Path: "tasks", Payload: payload,
		})
		assert.NoError(t, err)
	})
}

func TestDispatcher_Retry(t *testing.T) {
	t.Run("single transport call on success", func(t *testing.T) {
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Return(mocks.JSONResponse(200, `{"id":"42"}`), nil).Once()

		d := newTestDispatcher(WithTransport(rt))
		_, err := d.Do(context.Background(), Request{Method: MethodGet, BaseURI: "http://todoist.test", Path: "tasks/42"})

		require.NoError(t, err)
		rt.AssertNumberOfCalls(t, "RoundTrip", 1)
	})

	t.Run("connection refused twice then success", func(t *testing.T) {
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Return(nil, mocks.ConnRefused()).Twice()
		rt.On("RoundTrip", mock.Anything).Return(mocks.JSONResponse(200, `{"id":"42"}`), nil).Once()

		d := newTestDispatcher(WithTransport(rt))
		resp, err := d.Do(context.Background(), Request{Method: MethodGet, BaseURI: "http://todoist.test", Path: "tasks/42"})

		require.NoError(t, err)
		assert.JSONEq(t, `{"id":"42"}`, string(resp.Body))
		rt.AssertNumberOfCalls(t, "RoundTrip", 3)
	})

	t.Run("gives up after three retries", func(t *testing.T) {
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Return(nil, mocks.ConnRefused())

		d := newTestDispatcher(WithTransport(rt))
		_, err := d.Do(context.Background(), Request{Method: MethodGet, BaseURI: "http://todoist.test", Path: "tasks"})

		require.Error(t, err)
		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Zero(t, reqErr.HTTPStatusCode)
		assert.Nil(t, reqErr.ResponseData)
		assert.True(t, IsNetworkError(reqErr.Err))
		rt.AssertNumberOfCalls(t, "RoundTrip", 1+MaxRetries)
	})

	t.Run("HTTP errors are not retried", func(t *testing.T) {
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Return(mocks.JSONResponse(500, `{"error":"boom"}`), nil).Once()

		d := newTestDispatcher(WithTransport(rt))
		_, err := d.Do(context.Background(), Request{Method: MethodPost, BaseURI: "http://todoist.test", Path: "tasks"})

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, 500, reqErr.HTTPStatusCode)
		assert.Equal(t, map[string]any{"error": "boom"}, reqErr.ResponseData)
		assert.Contains(t, err.Error(), "500")
		rt.AssertNumberOfCalls(t, "RoundTrip", 1)
	})

	t.Run("cancelled context is not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := newTestDispatcher().Do(ctx, Request{Method: MethodGet, BaseURI: server.URL, Path: "tasks"})

		require.Error(t, err)
		assert.True(t, errors.Is(err, context.Canceled))
		assert.Zero(t, calls.Load())
	})

	t.Run("dial timeout is retried", func(t *testing.T) {
		dialTimeout := &net.OpError{Op: "dial", Net: "tcp", Err: os.ErrDeadlineExceeded}
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Return(nil, dialTimeout).Twice()
		rt.On("RoundTrip", mock.Anything).Return(mocks.JSONResponse(200, `{"id":"1"}`), nil).Once()

		d := newTestDispatcher(WithTransport(rt))
		resp, err := d.Do(context.Background(), Request{Method: MethodGet, BaseURI: "http://todoist.test", Path: "tasks/1"})

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		rt.AssertNumberOfCalls(t, "RoundTrip", 3)
	})

	t.Run("network error after caller cancellation is not retried", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		rt := &mocks.MockRoundTripper{}
		rt.On("RoundTrip", mock.Anything).Run(func(mock.Arguments) { cancel() }).Return(nil, mocks.ConnRefused()).Once()

		d := newTestDispatcher(WithTransport(rt))
		_, err := d.Do(ctx, Request{Method: MethodGet, BaseURI: "http://todoist.test", Path: "tasks"})

		require.Error(t, err)
		rt.AssertNumberOfCalls(t, "RoundTrip", 1)
	})

	t.Run("client timeout is not retried", func(t *testing.T) {
		var calls atomic.Int32
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		d := newTestDispatcher(WithTimeout(20 * time.Millisecond))
		_, err := d.Do(context.Background(), Request{Method: MethodGet, BaseURI: server.URL, Path: "tasks"})

		require.Error(t, err)
		assert.EqualValues(t, 1, calls.Load())
	})
}

func TestDispatcher_Errors(t *testing.T) {
	t.Run("non JSON body is kept as text", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_, _ = w.Write([]byte("Forbidden")) // Best effort write
		}))
		defer server.Close()

		_, err := newTestDispatcher().Do(context.Background(), Request{Method: MethodGet, BaseURI: server.URL, Path: "projects"})

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Equal(t, "Forbidden", reqErr.ResponseData)
		assert.True(t, reqErr.IsAuthenticationError())
	})

	t.Run("stack points at the call site", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
		}))
		defer server.Close()

		_, err := newTestDispatcher().Do(context.Background(), Request{Method: MethodGet, BaseURI: server.URL, Path: "tasks"})

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Contains(t, reqErr.StackTrace(), "TestDispatcher_Errors")
	})

	t.Run("unencodable payload fails without I/O", func(t *testing.T) {
		rt := &mocks.MockRoundTripper{}

		d := newTestDispatcher(WithTransport(rt))
		_, err := d.Do(context.Background(), Request{
			Method: MethodPost, BaseURI: "http://todoist.test", Path: "tasks", Payload: map[string]any{"bad": make(chan int)},
		})

		var reqErr *RequestError
		require.ErrorAs(t, err, &reqErr)
		assert.Zero(t, reqErr.HTTPStatusCode)
		assert.Contains(t, err.Error(), "failed to encode request payload")
		rt.AssertNotCalled(t, "RoundTrip", mock.Anything)
	})
}

func TestIsSuccess(t *testing.T) {
	tests := []struct {
		status int
		want   bool
	}{
		{199, false},
		{200, true},
		{204, true},
		{299, true},
		{300, false},
		{400, false},
		{404, false},
		{500, false},
		{599, false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSuccess(&Response{StatusCode: tt.status}), "status %d", tt.status)
	}
	assert.False(t, IsSuccess(nil))
}

func TestRetryDelay(t *testing.T) {
	assert.Equal(t, time.Duration(0), RetryDelay(1, DefaultRetryDelay))
	assert.Equal(t, DefaultRetryDelay, RetryDelay(2, DefaultRetryDelay))
	assert.Equal(t, DefaultRetryDelay, RetryDelay(3, DefaultRetryDelay))
}

func TestIsNetworkError(t *testing.T) {
	assert.False(t, IsNetworkError(nil))
	assert.True(t, IsNetworkError(mocks.ConnRefused()))
	assert.False(t, IsNetworkError(context.Canceled))
	assert.False(t, IsNetworkError(context.DeadlineExceeded))
	assert.False(t, IsNetworkError(errors.New("plain failure")))

	dialTimeout := &net.OpError{Op: "dial", Net: "tcp", Err: os.ErrDeadlineExceeded}
	assert.True(t, IsNetworkError(dialTimeout), "dial timeouts are retried")
	assert.True(t, IsNetworkError(&url.Error{Op: "Get", URL: "http://todoist.test", Err: dialTimeout}))

	clientTimeout := &url.Error{Op: "Get", URL: "http://todoist.test", Err: timeoutError{}}
	assert.False(t, IsNetworkError(clientTimeout), "client timeouts are not retried")
	assert.False(t, IsNetworkError(&url.Error{Op: "Get", URL: "http://todoist.test", Err: context.DeadlineExceeded}))
}

// timeoutError mimics the error net/http reports when Client.Timeout expires.
type timeoutError struct{}

func (timeoutError) Error() string   { return "Client.Timeout exceeded while awaiting headers" }
func (timeoutError) Timeout() bool   { return true }
func (timeoutError) Temporary() bool { return true }

func TestQueryParams(t *testing.T) {
	params, err := QueryParams(nil)
	require.NoError(t, err)
	assert.Nil(t, params)

	params, err = QueryParams(map[string]any{"filter": "today", "lang": nil, "limit": 5})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"filter": "today", "limit": "5"}, params)

	_, err = QueryParams([]string{"a"})
	assert.Error(t, err)
}
