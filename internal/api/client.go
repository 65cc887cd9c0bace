// Package api is the client for the provisioning service.
//
// Every operation is a single remote call: an HTTP POST to
// <endpoint>/<operation> whose JSON body carries the positional parameters.
// Responses are decoded into ordered Objects.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aidanlsb/pbapi/internal/credentials"
)

// DefaultEndpoint is the public service endpoint.
const DefaultEndpoint = "https://api.profitbricks.com/1.1"

// NoRequestInfo is recorded when the first response carried no request id.
const NoRequestInfo = "(no info)"

// maxResponseSize bounds how much of a response body is read.
const maxResponseSize = 8 << 20

// Caller performs remote operations. The Client implements it; tests use
// recording fakes.
type Caller interface {
	Call(ctx context.Context, operation string, params ...any) (any, error)
}

// Client calls the service over HTTP.
type Client struct {
	endpoint string
	creds    credentials.Credentials
	http     *http.Client
	logger   *slog.Logger
	newID    func() string

	mu        sync.Mutex
	requestID string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithTimeout sets the per-request timeout of the default HTTP client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.http = &http.Client{Timeout: d}
		}
	}
}

// WithLogger routes debug output to logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// NewClient returns a client for endpoint authenticating with creds.
func NewClient(endpoint string, creds credentials.Credentials, opts ...Option) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	c := &Client{
		endpoint: strings.TrimRight(endpoint, "/"),
		creds:    creds,
		http:     &http.Client{Timeout: 60 * time.Second},
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RequestID returns the request id of the first completed call, NoRequestInfo
// if that response had none, or "" before any call completed.
func (c *Client) RequestID() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.requestID
}

type request struct {
	Params []any `json:"params"`
}

type fault struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type envelope struct {
	RequestID string          `json:"requestId"`
	Result    json.RawMessage `json:"result"`
	Fault     *fault          `json:"fault"`
}

// Call invokes operation with params and returns the decoded result.
func (c *Client) Call(ctx context.Context, operation string, params ...any) (any, error) {
	if params == nil {
		params = []any{}
	}
	body, err := json.Marshal(request{Params: params})
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: fmt.Errorf("encoding params: %w", err)}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint+"/"+operation, bytes.NewReader(body))
	if err != nil {
		return nil, &TransportError{Operation: operation, Err: err}
	}
	correlationID := c.newID()
	req.SetBasicAuth(c.creds.Username, c.creds.Password)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Correlation-Id", correlationID)

	c.logger.Debug("calling remote operation",
		"operation", operation,
		"params", string(body),
		"correlation_id", correlationID,
	)
	start := time.Now()

	resp, err := c.http.Do(req)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			err = ctxErr
		}
		return nil, &TransportError{Operation: operation, Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return nil, &TransportError{Operation: operation, Status: resp.StatusCode, Err: fmt.Errorf("reading response: %w", err)}
	}

	c.logger.Debug("remote operation returned",
		"operation", operation,
		"status", resp.StatusCode,
		"duration", time.Since(start),
		"correlation_id", correlationID,
	)

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, &AuthError{Operation: operation, Status: resp.StatusCode}
	case resp.StatusCode == http.StatusInternalServerError:
		var env envelope
		if json.Unmarshal(data, &env) == nil && env.Fault != nil {
			return nil, &FaultError{Operation: operation, Code: env.Fault.Code, Message: env.Fault.Message}
		}
		return nil, &TransportError{Operation: operation, Status: resp.StatusCode, Err: errors.New(statusText(resp.StatusCode, data))}
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, &TransportError{Operation: operation, Status: resp.StatusCode, Err: errors.New(statusText(resp.StatusCode, data))}
	}

	var env envelope
	if len(bytes.TrimSpace(data)) > 0 {
		if err := json.Unmarshal(data, &env); err != nil {
			return nil, &TransportError{Operation: operation, Status: resp.StatusCode, Err: fmt.Errorf("decoding response: %w", err)}
		}
	}
	if env.Fault != nil {
		return nil, &FaultError{Operation: operation, Code: env.Fault.Code, Message: env.Fault.Message}
	}

	c.recordRequestID(env.RequestID)

	if len(env.Result) == 0 {
		return nil, nil
	}
	result, err := Decode(env.Result)
	if err != nil {
		return nil, &TransportError{Operation: operation, Status: resp.StatusCode, Err: fmt.Errorf("decoding result: %w", err)}
	}
	return result, nil
}

// recordRequestID keeps the id of the first completed call.
func (c *Client) recordRequestID(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.requestID != "" {
		return
	}
	if id == "" {
		id = NoRequestInfo
	}
	c.requestID = id
}

func statusText(code int, body []byte) string {
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200] + "..."
	}
	if text == "" {
		return http.StatusText(code)
	}
	return text
}
