package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/tiffanyadora/storefront/pkg/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

// sessionIDKey is the context key for the shopper session ID.
const sessionIDKey contextKey = "session_id"

// SessionHeader carries the shopper session between the storefront and its
// clients. Sessions are anonymous: a request without one gets a fresh ID.
const SessionHeader = "X-Session-ID"

// SessionFromHeader reads the X-Session-ID header and stores it in the
// request context. A missing header starts a new session rather than
// rejecting the request; the assigned ID is echoed back so the client can
// persist it.
func SessionFromHeader(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sid := r.Header.Get(SessionHeader)
		if sid == "" {
			sid = uuid.New().String()
		}
		w.Header().Set(SessionHeader, sid)

		ctx := context.WithValue(r.Context(), sessionIDKey, sid)
		ctx = logger.WithSessionID(ctx, sid)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// sessionFromContext extracts the shopper session ID from the request context.
func sessionFromContext(ctx context.Context) (string, bool) {
	sid, ok := ctx.Value(sessionIDKey).(string)
	return sid, ok && sid != ""
}

// ContentTypeJSON enforces that requests with a body declare
// Content-Type: application/json. A missing header on a body-carrying
// method is rejected the same as a wrong one.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
