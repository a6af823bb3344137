// Package restclient issues authenticated requests against the Todoist APIs.
// It owns the retry policy and translates every failure into a RequestError.
package restclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/tidwall/gjson"
)

// defaultTimeout specifies the default timeout for HTTP requests.
const defaultTimeout = 10 * time.Second

// Method is an HTTP method supported by the dispatcher.
type Method string

const (
	MethodGet    Method = http.MethodGet
	MethodPost   Method = http.MethodPost
	MethodDelete Method = http.MethodDelete
)

// Request describes one logical API call.
type Request struct {
	Method    Method
	BaseURI   string
	Path      string
	Token     string
	Payload   any
	RequestID string
}

// Response is a completed HTTP exchange.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// IsSuccess reports whether the response status is in [200, 300).
func IsSuccess(resp *Response) bool {
	return resp != nil && resp.StatusCode >= 200 && resp.StatusCode < 300
}

// Dispatcher executes requests with a bounded retry loop.
type Dispatcher struct {
	client     *resty.Client
	log        *logrus.Logger
	maxRetries int
	retryDelay time.Duration
	newID      func() string
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithHTTPClient makes the dispatcher send requests through hc.
func WithHTTPClient(hc *http.Client) Option {
	return func(d *Dispatcher) {
		d.client = resty.NewWithClient(hc)
	}
}

// WithTransport replaces the round tripper of the underlying client.
func WithTransport(rt http.RoundTripper) Option {
	return func(d *Dispatcher) {
		d.client.SetTransport(rt)
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(timeout time.Duration) Option {
	return func(d *Dispatcher) {
		d.client.SetTimeout(timeout)
	}
}

// WithRetryDelay sets the fixed delay used from the second retry on.
func WithRetryDelay(delay time.Duration) Option {
	return func(d *Dispatcher) {
		d.retryDelay = delay
	}
}

// WithLogger sets the logger used for retries and failures.
func WithLogger(log *logrus.Logger) Option {
	return func(d *Dispatcher) {
		d.log = log
	}
}

// WithRequestIDGenerator overrides how idempotency keys are generated.
func WithRequestIDGenerator(gen func() string) Option {
	return func(d *Dispatcher) {
		d.newID = gen
	}
}

// New creates a Dispatcher. Options are applied in order, so WithHTTPClient
// must precede WithTransport and WithTimeout to keep their effect.
func New(opts ...Option) *Dispatcher {
	d := &Dispatcher{
		client:     resty.New().SetTimeout(defaultTimeout),
		log:        logrus.New(),
		maxRetries: MaxRetries,
		retryDelay: DefaultRetryDelay,
		newID:      uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.client.SetRetryCount(0).SetLogger(d.log)
	return d
}

// Do sends req, retrying network-level failures. Responses outside the 2xx
// range are returned as a *RequestError and never retried.
func (d *Dispatcher) Do(ctx context.Context, req Request) (*Response, error) {
	stack := CaptureStack(1)

	if req.Method == MethodPost && req.RequestID == "" {
		req.RequestID = d.newID()
	}

	endpoint, err := url.JoinPath(req.BaseURI, req.Path)
	if err != nil {
		return nil, translate(fmt.Errorf("failed to build request url: %w", err), stack)
	}

	var body []byte
	var query map[string]string
	switch req.Method {
	case MethodGet:
		query, err = QueryParams(req.Payload)
	case MethodPost:
		if req.Payload != nil {
			body, err = json.Marshal(req.Payload)
		}
	case MethodDelete:
	default:
		err = fmt.Errorf("unsupported method %q", req.Method)
	}
	if err != nil {
		return nil, translate(fmt.Errorf("failed to encode request payload: %w", err), stack)
	}

	fields := logrus.Fields{"method": req.Method, "path": req.Path}
	for attempt := 0; ; attempt++ {
		resp, err := d.execute(ctx, req, endpoint, query, body)
		if err == nil {
			if !IsSuccess(resp) {
				d.log.WithFields(fields).WithField("status", resp.StatusCode).Debug("request failed")
				return nil, translate(&statusError{resp: resp}, stack)
			}
			return resp, nil
		}

		if attempt >= d.maxRetries || ctx.Err() != nil || !IsNetworkError(err) {
			d.log.WithFields(fields).WithError(err).Debug("request failed")
			return nil, translate(err, stack)
		}

		delay := RetryDelay(attempt+1, d.retryDelay)
		d.log.WithFields(fields).WithFields(logrus.Fields{
			"attempt": attempt + 1,
			"delay":   delay,
		}).WithError(err).Warn("network error, retrying request")
		if err := wait(ctx, delay); err != nil {
			return nil, translate(err, stack)
		}
	}
}

func (d *Dispatcher) execute(ctx context.Context, req Request, endpoint string, query map[string]string, body []byte) (*Response, error) {
	r := d.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json")
	if req.Token != "" {
		r.SetHeader("Authorization", "Bearer "+req.Token)
	}
	if req.RequestID != "" {
		r.SetHeader("X-Request-Id", req.RequestID)
	}
	if len(query) > 0 {
		r.SetQueryParams(query)
	}
	if body != nil {
		r.SetBody(body)
	}

	resp, err := r.Execute(string(req.Method), endpoint)
	if err != nil {
		return nil, err
	}
	return &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}, nil
}

// QueryParams flattens a payload into query parameters: scalars are kept
// verbatim, arrays are comma-joined and nulls are dropped.
func QueryParams(payload any) (map[string]string, error) {
	if payload == nil {
		return nil, nil
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	parsed := gjson.ParseBytes(raw)
	if parsed.Type == gjson.Null {
		return nil, nil
	}
	if !parsed.IsObject() {
		return nil, fmt.Errorf("query payload must be an object, got %s", parsed.Type)
	}

	params := make(map[string]string)
	parsed.ForEach(func(key, value gjson.Result) bool {
		switch {
		case value.Type == gjson.Null:
		case value.IsArray():
			items := value.Array()
			parts := make([]string, 0, len(items))
			for _, item := range items {
				parts = append(parts, item.String())
			}
			params[key.String()] = strings.Join(parts, ",")
		default:
			params[key.String()] = value.String()
		}
		return true
	})
	return params, nil
}
