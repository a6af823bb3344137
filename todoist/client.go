// Package todoist provides a typed client for the Todoist REST and Sync APIs.
//
// Every method validates the response against the entity schema before
// returning it, and every failure is reported as a *RequestError. Sync
// commands (MoveTask, ReorderTasks, UncompleteTask) are queued locally and
// sent together by Sync.
package todoist

import (
	"context"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/ziyixi/todoist/todoist/internal/batch"
	"github.com/ziyixi/todoist/todoist/internal/restclient"
	"github.com/ziyixi/todoist/todoist/internal/schema"
)

// Client is a client for interacting with the Todoist API.
type Client struct {
	token      string
	restBase   string
	syncBase   string
	dispatcher *restclient.Dispatcher
	queue      *batch.Queue
	log        *logrus.Logger
}

type clientOptions struct {
	baseURL    string
	log        *logrus.Logger
	httpClient *http.Client
	transport  http.RoundTripper
	timeout    time.Duration
	retryDelay *time.Duration
}

// Option configures a Client.
type Option func(*clientOptions)

// WithBaseURL overrides the API domain. The REST and Sync base URIs are
// derived from it.
func WithBaseURL(baseURL string) Option {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithLogger sets the logger used by the client.
func WithLogger(log *logrus.Logger) Option {
	return func(o *clientOptions) {
		o.log = log
	}
}

// WithHTTPClient sends requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(o *clientOptions) {
		o.httpClient = hc
	}
}

// WithTransport replaces the HTTP round tripper.
func WithTransport(rt http.RoundTripper) Option {
	return func(o *clientOptions) {
		o.transport = rt
	}
}

// WithTimeout sets the timeout of a single HTTP attempt.
func WithTimeout(timeout time.Duration) Option {
	return func(o *clientOptions) {
		o.timeout = timeout
	}
}

// WithRetryDelay sets the fixed delay between network retries.
func WithRetryDelay(delay time.Duration) Option {
	return func(o *clientOptions) {
		o.retryDelay = &delay
	}
}

func defaultLogger() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})
	return log
}

// NewClient creates and returns a new Todoist API client.
// It requires an API token for authentication.
func NewClient(token string, opts ...Option) *Client {
	o := &clientOptions{baseURL: DefaultBaseURL}
	for _, opt := range opts {
		opt(o)
	}
	if o.log == nil {
		o.log = defaultLogger()
	}

	var dopts []restclient.Option
	if o.httpClient != nil {
		dopts = append(dopts, restclient.WithHTTPClient(o.httpClient))
	}
	if o.transport != nil {
		dopts = append(dopts, restclient.WithTransport(o.transport))
	}
	if o.timeout > 0 {
		dopts = append(dopts, restclient.WithTimeout(o.timeout))
	}
	if o.retryDelay != nil {
		dopts = append(dopts, restclient.WithRetryDelay(*o.retryDelay))
	}
	dopts = append(dopts, restclient.WithLogger(o.log))

	return &Client{
		token:      token,
		restBase:   RestBaseURI(o.baseURL),
		syncBase:   SyncBaseURI(o.baseURL),
		dispatcher: restclient.New(dopts...),
		queue:      batch.NewQueue(),
		log:        o.log,
	}
}

type requestOptions struct {
	requestID string
}

// RequestOption configures a single mutating call.
type RequestOption func(*requestOptions)

// WithRequestID sets the X-Request-Id idempotency key of the call. When it is
// not set, POST requests get a generated one.
func WithRequestID(id string) RequestOption {
	return func(o *requestOptions) {
		o.requestID = id
	}
}

func (c *Client) request(ctx context.Context, method restclient.Method, base, path string, payload any, opts []RequestOption) (*restclient.Response, error) {
	ro := requestOptions{}
	for _, opt := range opts {
		opt(&ro)
	}
	return c.dispatcher.Do(ctx, restclient.Request{
		Method:    method,
		BaseURI:   base,
		Path:      path,
		Token:     c.token,
		Payload:   payload,
		RequestID: ro.requestID,
	})
}

// fetch dispatches a call and validates the body as a single entity.
func fetch[T any](ctx context.Context, c *Client, method restclient.Method, path string, payload any, s *schema.Schema, opts ...RequestOption) (*T, error) {
	resp, err := c.request(ctx, method, c.restBase, path, payload, opts)
	if err != nil {
		return nil, err
	}
	out, err := schema.Decode[T](resp.Body, s)
	if err != nil {
		return nil, c.validationFailed(path, err)
	}
	return out, nil
}

// fetchList dispatches a GET and validates the body as a list of entities.
func fetchList[T any](ctx context.Context, c *Client, path string, payload any, s *schema.Schema) ([]T, error) {
	resp, err := c.request(ctx, restclient.MethodGet, c.restBase, path, payload, nil)
	if err != nil {
		return nil, err
	}
	out, err := schema.DecodeArray[T](resp.Body, s)
	if err != nil {
		return nil, c.validationFailed(path, err)
	}
	return out, nil
}

// exec dispatches a call whose body is ignored and reports success.
func (c *Client) exec(ctx context.Context, method restclient.Method, path string, payload any, opts []RequestOption) (bool, error) {
	resp, err := c.request(ctx, method, c.restBase, path, payload, opts)
	if err != nil {
		return false, err
	}
	return restclient.IsSuccess(resp), nil
}
