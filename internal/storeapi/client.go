package storeapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/tiffanyadora/storefront/pkg/httpclient"
)

// HTTPDoer abstracts the HTTP client so tests can inject fakes and production
// can wrap the client in a circuit breaker.
type HTTPDoer interface {
	Do(ctx context.Context, req *http.Request) (*http.Response, error)
}

// ServerError is a rejection the store API reported in its response body
// ({"success": false, "error": "..."}). It is distinct from transport
// failures: callers surface the server's own message for these.
type ServerError struct {
	Message string
	cause   error
}

func (e *ServerError) Error() string {
	return e.Message
}

func (e *ServerError) Unwrap() error {
	return e.cause
}

// AsServerError extracts a ServerError from an error chain.
func AsServerError(err error) (*ServerError, bool) {
	var serverErr *ServerError
	ok := errors.As(err, &serverErr)
	return serverErr, ok
}

// Client talks to the remote store API. All cart state lives on the server;
// this client never caches responses.
type Client struct {
	baseURL    string
	httpClient HTTPDoer
	logger     *slog.Logger
}

// NewClient creates a store API client. baseURL is the root of the store API,
// e.g. "http://store:8000".
func NewClient(baseURL string, httpClient HTTPDoer, logger *slog.Logger) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: httpClient,
		logger:     logger,
	}
}

// newRequest builds a request against the store API with the session attached.
func (c *Client) newRequest(ctx context.Context, method, path, sessionID string, body []byte) (*http.Request, error) {
	var req *http.Request
	var err error
	if body != nil {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, strings.NewReader(string(body)))
	} else {
		req, err = http.NewRequestWithContext(ctx, method, c.baseURL+path, http.NoBody)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s %s request: %w", method, path, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if sessionID != "" {
		req.Header.Set("X-Session-ID", sessionID)
	}
	return req, nil
}

// do executes the request and returns the response, translating non-2xx
// statuses into errors. Structured rejections come back as *ServerError.
func (c *Client) do(ctx context.Context, req *http.Request, operation string) (*http.Response, error) {
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", operation, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		parsed := httpclient.ParseResponseError(resp, operation)
		if msg := httpclient.ServerMessage(parsed); msg != "" {
			return nil, &ServerError{Message: msg, cause: parsed}
		}
		return nil, parsed
	}

	return resp, nil
}

// decode reads a 2xx response body into target and closes it.
func decode(resp *http.Response, target any) error {
	defer func() { _ = resp.Body.Close() }()
	if err := json.NewDecoder(resp.Body).Decode(target); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// mutationResponse is the store API's envelope for cart and review mutations.
type mutationResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error,omitempty"`
	OrderID json.Number `json:"order_id,omitempty"`
}

// checkMutation decodes a mutation response and converts a declined mutation
// into a ServerError carrying the server's message.
func checkMutation(resp *http.Response) (*mutationResponse, error) {
	var out mutationResponse
	if err := decode(resp, &out); err != nil {
		return nil, err
	}
	if !out.Success {
		msg := out.Error
		if msg == "" {
			msg = "request rejected"
		}
		return nil, &ServerError{Message: msg}
	}
	return &out, nil
}

// Ping verifies the store API is reachable. Any HTTP response counts as
// healthy; only transport failures are reported. Used as a readiness check.
func (c *Client) Ping(ctx context.Context) error {
	req, err := c.newRequest(ctx, http.MethodGet, "/api/products/", "", nil)
	if err != nil {
		return err
	}
	resp, err := c.httpClient.Do(ctx, req)
	if err != nil {
		return fmt.Errorf("store api unreachable: %w", err)
	}
	_ = resp.Body.Close()
	return nil
}
