package http

import (
	"net/http"

	"github.com/tiffanyadora/storefront/internal/notify"
	"github.com/tiffanyadora/storefront/pkg/httputil"
)

// NotificationHandler exposes the session's active transient notifications.
// Clients poll this endpoint and let entries fade after expiry.
type NotificationHandler struct {
	center *notify.Center
}

// NewNotificationHandler creates a new notification HTTP handler.
func NewNotificationHandler(center *notify.Center) *NotificationHandler {
	return &NotificationHandler{center: center}
}

// Active handles GET /storefront/notifications
func (h *NotificationHandler) Active(w http.ResponseWriter, r *http.Request) {
	sid, ok := sessionFromContext(r.Context())
	if !ok {
		httputil.WriteJSON(w, http.StatusBadRequest, httputil.Response{
			Error: &httputil.ErrorResponse{Code: "INVALID_INPUT", Message: "session ID is required"},
		})
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{
		Data: map[string][]notify.Notification{"notifications": h.center.Active(sid)},
	})
}
