package httpclient

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	apperrors "github.com/tiffanyadora/storefront/pkg/errors"
)

// upstreamErrorBody mirrors the error shapes the store API produces. Mutation
// endpoints answer {"success": false, "error": "message"} while the
// resource-style endpoints use {"error": {"code": ..., "message": ...}}.
type upstreamErrorBody struct {
	Success *bool           `json:"success"`
	Error   json.RawMessage `json:"error"`
}

func (b upstreamErrorBody) message() (string, bool) {
	if len(b.Error) == 0 {
		return "", false
	}
	var s string
	if json.Unmarshal(b.Error, &s) == nil {
		return s, s != ""
	}
	var obj struct {
		Message string `json:"message"`
	}
	if json.Unmarshal(b.Error, &obj) == nil && obj.Message != "" {
		return obj.Message, true
	}
	return "", false
}

// ParseResponseError reads the body of a non-2xx HTTP response from the store
// API and translates it into an appropriate AppError. If the response body
// matches a known error format, the server's message is preserved. Otherwise
// a generic error is returned with the status code and raw body.
//
// The caller should only invoke this when resp.StatusCode indicates an error
// (i.e., not 2xx). The response body is fully consumed and closed.
func ParseResponseError(resp *http.Response, operation string) error {
	defer func() { _ = resp.Body.Close() }()

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20)) // 1 MB limit
	if err != nil {
		return fmt.Errorf("%s returned status %d (failed to read body: %w)", operation, resp.StatusCode, err)
	}

	var upstream upstreamErrorBody
	if json.Unmarshal(bodyBytes, &upstream) == nil {
		if msg, ok := upstream.message(); ok {
			return mapUpstreamError(resp.StatusCode, msg, operation)
		}
	}

	// Fallback: unstructured error body.
	return fmt.Errorf("%s returned status %d: %s", operation, resp.StatusCode, string(bodyBytes))
}

// mapUpstreamError translates the store API's HTTP status code and error
// message into an AppError that preserves the error semantics.
func mapUpstreamError(status int, message, operation string) error {
	switch {
	case status == http.StatusNotFound:
		return &apperrors.AppError{
			Code:    "NOT_FOUND",
			Message: message,
			Status:  http.StatusNotFound,
			Err:     apperrors.ErrNotFound,
		}
	case status == http.StatusBadRequest:
		return apperrors.InvalidInput(message)
	case status == http.StatusConflict:
		return apperrors.Conflict(message)
	case status == http.StatusUnauthorized:
		return apperrors.Unauthorized(message)
	case status == http.StatusForbidden:
		return apperrors.Forbidden(message)
	case status == http.StatusGone:
		return apperrors.Gone(message)
	case status == http.StatusServiceUnavailable:
		return apperrors.ServiceUnavailable(message)
	case status >= 500:
		return apperrors.Upstream(fmt.Sprintf("%s: %s", operation, message))
	default:
		return &apperrors.AppError{
			Code:    "UPSTREAM_ERROR",
			Message: message,
			Status:  status,
		}
	}
}

// ServerMessage extracts the server-provided error text from an AppError
// produced by ParseResponseError. It returns the empty string for transport
// errors and other non-AppError failures, letting callers distinguish a
// server-reported rejection from a network problem.
func ServerMessage(err error) string {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		return appErr.Message
	}
	return ""
}

// IsClientError returns true if the HTTP status code is a 4xx client error.
// Client errors (e.g., validation) should not trip the circuit breaker since
// the request itself was invalid.
func IsClientError(status int) bool {
	return status >= 400 && status < 500
}
