package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/miniappkit/tmauth/pkg/logger"
)

// TokenSource supplies the bearer token for authenticated requests.
// An empty token with a nil error means "no token available" and the
// Authorization header is simply omitted.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client is a JSON HTTP client with per-attempt timeouts, exponential-backoff
// retries, and bearer token injection. It performs no session bookkeeping:
// persistence and state belong to the auth service layer.
type Client struct {
	httpClient *http.Client
	baseURL    string
	timeout    time.Duration
	attempts   int
	delay      time.Duration
	tokens     TokenSource
	logger     *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTokenSource sets the source of bearer tokens for authenticated requests.
func WithTokenSource(src TokenSource) Option {
	return func(c *Client) {
		c.tokens = src
	}
}

// WithLogger sets the logger for request and retry diagnostics.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.logger = log
		}
	}
}

// New creates a Client from the given configuration.
func New(cfg Config, opts ...Option) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: BaseURL is required", ErrInvalidConfig)
	}
	if _, err := url.Parse(cfg.BaseURL); err != nil {
		return nil, fmt.Errorf("%w: BaseURL: %v", ErrInvalidConfig, err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if cfg.RetryAttempts <= 0 {
		cfg.RetryAttempts = 3
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = time.Second
	}

	c := &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		timeout:    cfg.Timeout,
		attempts:   cfg.RetryAttempts,
		delay:      cfg.RetryDelay,
		logger:     slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c, nil
}

// Response is a decoded-enough view of a backend reply: the status line plus
// the raw body for the caller to unmarshal.
type Response struct {
	Status     int
	StatusText string
	Body       json.RawMessage
}

// Decode unmarshals the response body into v.
func (r *Response) Decode(v any) error {
	if len(r.Body) == 0 {
		return fmt.Errorf("%w: empty response body", ErrNetwork)
	}
	return json.Unmarshal(r.Body, v)
}

// requestOptions holds per-request settings.
type requestOptions struct {
	withAuth bool
}

// RequestOption configures a single request.
type RequestOption func(*requestOptions)

// WithoutAuth disables Authorization header injection for one request.
// Used for the login exchange itself, which runs before a token exists.
func WithoutAuth() RequestOption {
	return func(o *requestOptions) {
		o.withAuth = false
	}
}

// Get issues a GET request.
func (c *Client) Get(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodGet, path, nil, opts...)
}

// Post issues a POST request with a JSON body.
func (c *Client) Post(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPost, path, body, opts...)
}

// Put issues a PUT request with a JSON body.
func (c *Client) Put(ctx context.Context, path string, body any, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodPut, path, body, opts...)
}

// Delete issues a DELETE request.
func (c *Client) Delete(ctx context.Context, path string, opts ...RequestOption) (*Response, error) {
	return c.Do(ctx, http.MethodDelete, path, nil, opts...)
}

// Do issues a request and retries failures with exponential backoff: the
// configured number of attempts, the configured initial delay, doubling after
// each failure. Network errors, timeouts, and temporary API errors (5xx, 408,
// 429) are retried; other client errors fail immediately. The last attempt's
// error is surfaced to the caller.
func (c *Client) Do(ctx context.Context, method, path string, body any, opts ...RequestOption) (*Response, error) {
	ro := requestOptions{withAuth: true}
	for _, opt := range opts {
		opt(&ro)
	}

	var payload []byte
	if body != nil {
		var err error
		if payload, err = json.Marshal(body); err != nil {
			return nil, fmt.Errorf("marshal request body: %w", err)
		}
	}

	requestID := uuid.New().String()
	started := time.Now()

	var (
		resp    *Response
		attempt int
	)
	operation := func() error {
		attempt++
		res, err := c.attempt(ctx, method, path, payload, ro.withAuth, requestID)
		if err != nil {
			c.logger.WarnContext(ctx, "request attempt failed",
				logger.Method(method),
				logger.Path(path),
				logger.RequestID(requestID),
				logger.Count("attempt", attempt),
				logger.Error(err),
			)

			var apiErr *APIError
			if errors.As(err, &apiErr) && !apiErr.Temporary() {
				return backoff.Permanent(err)
			}
			return err
		}
		resp = res
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = c.delay
	bo.Multiplier = 2
	bo.RandomizationFactor = 0
	bo.MaxElapsedTime = 0

	err := backoff.Retry(operation, backoff.WithContext(backoff.WithMaxRetries(bo, uint64(c.attempts-1)), ctx))
	if err != nil {
		return nil, err
	}

	c.logger.DebugContext(ctx, "request completed",
		logger.Method(method),
		logger.Path(path),
		logger.RequestID(requestID),
		logger.StatusCode(resp.Status),
		logger.Count("attempts", attempt),
		logger.Elapsed(started),
	)

	return resp, nil
}

// attempt performs a single request with its own deadline.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, withAuth bool, requestID string) (*Response, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Request-ID", requestID)

	if withAuth && c.tokens != nil {
		token, err := c.tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("resolve auth token: %w", err)
		}
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	res, err := c.httpClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, errors.Join(ErrTimeout, err)
		}
		return nil, errors.Join(ErrNetwork, err)
	}
	defer func() { _ = res.Body.Close() }()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Join(ErrNetwork, err)
	}

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		return nil, newAPIError(res.StatusCode)
	}

	return &Response{
		Status:     res.StatusCode,
		StatusText: http.StatusText(res.StatusCode),
		Body:       raw,
	}, nil
}
