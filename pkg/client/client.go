// Package client is a typed HTTP client for the teacher transfer API. It
// carries the stored session token on every request, maps the API's error
// envelope into Go errors, and drops the credential when the server says it is
// no longer valid.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"teacher-transfer-system/pkg/session"
)

var (
	// ErrUnavailable wraps transport failures: DNS, refused connections,
	// timeouts. The request may never have reached the server.
	ErrUnavailable = errors.New("service unavailable")

	// ErrPayloadTooLarge is returned when the server rejects a request body
	// for exceeding its upload limit.
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrSubmitInFlight is returned when a status submission is attempted
	// while a previous one has not finished.
	ErrSubmitInFlight = errors.New("a submission is already in flight")
)

// APIError is a structured error decoded from the server's error envelope.
type APIError struct {
	StatusCode int
	Code       string
	Message    string
	Details    string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return e.Message
	}

	return fmt.Sprintf("request failed with status %d", e.StatusCode)
}

type Client struct {
	baseURL string
	httpc   *http.Client
	session *session.Session

	statusSubmitInFlight atomic.Bool
}

type Option func(*Client)

func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

func WithSession(s *session.Session) Option {
	return func(c *Client) { c.session = s }
}

func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpc:   &http.Client{Timeout: 30 * time.Second},
		session: session.New(session.DefaultStore()),
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Session exposes the credential store the client reads its token from.
func (c *Client) Session() *session.Session {
	return c.session
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details string `json:"details"`
	} `json:"error"`
}

// do issues one API request and decodes the response envelope into out. A 401
// clears the stored credential before returning the error.
func (c *Client) do(ctx context.Context, method string, path string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.session.Token(); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpc.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}

	if resp.StatusCode == http.StatusUnauthorized {
		// The stored token is stale or revoked. Keep it and every later
		// request fails the same way, so drop it now.
		_ = c.session.Clear()
	}

	var env envelope
	if len(data) > 0 {
		// A non-JSON body (proxy error page, empty 502) falls through to
		// the status-only error below.
		_ = json.Unmarshal(data, &env)
	}

	if resp.StatusCode >= 400 || (len(data) > 0 && !env.Success && env.Error != nil) {
		return c.apiError(resp.StatusCode, env)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}

	return nil
}

func (c *Client) apiError(statusCode int, env envelope) error {
	apiErr := &APIError{StatusCode: statusCode}
	if env.Error != nil {
		apiErr.Code = env.Error.Code
		apiErr.Message = env.Error.Message
		apiErr.Details = env.Error.Details
	}

	if statusCode == http.StatusRequestEntityTooLarge {
		return fmt.Errorf("%w: %s", ErrPayloadTooLarge, apiErr.Error())
	}

	return apiErr
}

// IsStatus reports whether err is an APIError with the given HTTP status.
func IsStatus(err error, statusCode int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.StatusCode == statusCode
}
