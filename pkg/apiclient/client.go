// Package apiclient talks to the hospital REST API: collection listing,
// counts, updates, deletes and staff registration.
package apiclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const RequestIDHeader = "X-Request-ID"

// Error body keys used by the hospital API.
const (
	KeyError   = "error"
	KeyMessage = "message"
)

// ErrTransport wraps failures that happened before a response was received.
var ErrTransport = errors.New("hospital API unreachable")

// APIError is a non-2xx response. Message holds the text the service put
// under the expected key, or is empty when the body had none.
type APIError struct {
	Method  string
	Path    string
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s %s: status %d", e.Method, e.Path, e.Status)
	}
	return fmt.Sprintf("%s %s: status %d: %s", e.Method, e.Path, e.Status, e.Message)
}

// UserMessage returns the service-supplied text for display.
func (e *APIError) UserMessage() string {
	return e.Message
}

type Options struct {
	BaseURL string
	Timeout time.Duration
	Logger  zerolog.Logger
	// HTTPClient overrides the underlying transport, mostly for tests.
	HTTPClient *http.Client
}

// Client is safe for concurrent use.
type Client struct {
	rest   *resty.Client
	logger zerolog.Logger
}

func New(opts Options) (*Client, error) {
	baseURL, err := validateBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	rest := resty.New()
	if opts.HTTPClient != nil {
		rest = resty.NewWithClient(opts.HTTPClient)
	}
	rest.
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")
	if opts.Timeout > 0 {
		rest.SetTimeout(opts.Timeout)
	}

	return &Client{
		rest:   rest,
		logger: opts.Logger.With().Str("component", "apiclient").Logger(),
	}, nil
}

func validateBaseURL(raw string) (string, error) {
	raw = strings.TrimRight(strings.TrimSpace(raw), "/")
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}
	if !parsed.IsAbs() || parsed.Host == "" {
		return "", fmt.Errorf("base URL must be absolute, got: %q", raw)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", fmt.Errorf("base URL scheme must be http or https, got: %s", parsed.Scheme)
	}
	return raw, nil
}

// do sends one request. A 2xx body is decoded into out when out is non-nil;
// any other status becomes an *APIError carrying the text under errKey.
func (c *Client) do(ctx context.Context, method, path string, body, out any, errKey string) error {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader(RequestIDHeader, uuid.NewString())
	if body != nil {
		req.SetBody(body)
	}

	start := time.Now()
	resp, err := req.Execute(method, path)
	if err != nil {
		c.logger.Debug().Err(err).Str("method", method).Str("path", path).Msg("request failed")
		return fmt.Errorf("%w: %s %s: %w", ErrTransport, method, path, err)
	}

	c.logger.Debug().
		Str("method", method).
		Str("path", path).
		Int("status", resp.StatusCode()).
		Dur("latency", time.Since(start)).
		Msg("request")

	if !resp.IsSuccess() {
		return &APIError{
			Method:  method,
			Path:    path,
			Status:  resp.StatusCode(),
			Message: parseErrorMessage(resp.Body(), errKey),
		}
	}
	if out == nil {
		return nil
	}
	if err := json.Unmarshal(resp.Body(), out); err != nil {
		return fmt.Errorf("decode %s %s: %w", method, path, err)
	}
	return nil
}

func parseErrorMessage(body []byte, key string) string {
	if len(body) == 0 {
		return ""
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil {
		return ""
	}
	raw, ok := envelope[key]
	if !ok {
		return ""
	}
	var msg string
	if err := json.Unmarshal(raw, &msg); err != nil {
		return ""
	}
	return strings.TrimSpace(msg)
}

// Counter returns a function that reads the integer under key from the JSON
// object served at path, e.g. GET /nurses/count -> {"nurseCount": 12}.
func (c *Client) Counter(path, key string) func(context.Context) (int, error) {
	return func(ctx context.Context) (int, error) {
		var body map[string]json.RawMessage
		if err := c.do(ctx, http.MethodGet, path, nil, &body, KeyError); err != nil {
			return 0, err
		}
		raw, ok := body[key]
		if !ok {
			return 0, fmt.Errorf("GET %s: response has no %q", path, key)
		}
		var n int
		if err := json.Unmarshal(raw, &n); err != nil {
			return 0, fmt.Errorf("GET %s: %q is not an integer: %w", path, key, err)
		}
		return n, nil
	}
}

// Register submits a staff registration. Rejections carry the service text
// under "message".
func (c *Client) Register(ctx context.Context, form any) error {
	return c.do(ctx, http.MethodPost, "/register", form, nil, KeyMessage)
}
