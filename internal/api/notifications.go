package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListNotifications handles GET /api/notifications
func (h *Handler) ListNotifications(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_notifications", h.svc.ListNotifications(r.Context()))
}

// MarkNotificationRead handles POST /api/notifications/{notificationId}/read
func (h *Handler) MarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "notificationId")
	h.respond(w, "mark_notification_read", h.svc.MarkNotificationRead(r.Context(), id))
}

// MarkAllNotificationsRead handles POST /api/notifications/read-all
func (h *Handler) MarkAllNotificationsRead(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "mark_all_notifications_read", h.svc.MarkAllNotificationsRead(r.Context()))
}
