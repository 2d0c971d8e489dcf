// Package api exposes the service facade over HTTP for the dashboard. Every
// endpoint writes the facade's response envelope verbatim; only the HTTP
// status code is derived from the error code.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/metrics"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// Handler holds the facade and everything its endpoints share
type Handler struct {
	svc     *service.Service
	metrics *metrics.Metrics
	logger  zerolog.Logger
}

// NewHandler creates a new Handler
func NewHandler(svc *service.Service, m *metrics.Metrics, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		metrics: m,
		logger:  logger.With().Str("component", "api").Logger(),
	}
}

// Routes registers every endpoint on the given router. The auth middleware
// is applied by the caller; only login is expected to be mounted outside it.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/auth/logout", h.Logout)
	r.Get("/auth/me", h.Me)

	r.Get("/conversations", h.ListConversations)
	r.Get("/conversations/{conversationId}", h.GetConversation)
	r.Put("/conversations/{conversationId}", h.UpdateConversation)
	r.Post("/conversations/{conversationId}/assign", h.AssignConversation)
	r.Post("/conversations/{conversationId}/transfer", h.TransferConversation)
	r.Post("/conversations/{conversationId}/escalate", h.EscalateConversation)
	r.Post("/conversations/{conversationId}/messages", h.SendMessage)
	r.Get("/conversations/{conversationId}/sla", h.GetSLA)
	r.Post("/conversations/{conversationId}/sla/check", h.CheckSLA)

	r.Get("/escalations", h.ListEscalations)
	r.Post("/escalations/{escalationId}/resolve", h.ResolveEscalation)

	r.Get("/tasks", h.ListTasks)
	r.Post("/tasks", h.CreateTask)
	r.Put("/tasks/{taskId}/status", h.UpdateTaskStatus)

	r.Get("/reports", h.ListReports)
	r.Post("/reports", h.CreateReport)
	r.Post("/reports/{reportId}/submit", h.SubmitReport)
	r.Post("/reports/{reportId}/review", h.ReviewReport)

	r.Get("/agents", h.ListAgents)
	r.Put("/agents/{agentId}", h.UpdateAgent)
	r.Post("/agents/{agentId}/reassign", h.ReassignAgent)
	r.Get("/branches", h.ListBranches)

	r.Get("/notifications", h.ListNotifications)
	r.Post("/notifications/{notificationId}/read", h.MarkNotificationRead)
	r.Post("/notifications/read-all", h.MarkAllNotificationsRead)

	r.Get("/audit", h.QueryAudit)
	r.Put("/config/latency", h.SetLatency)
}

// statusFor maps the facade's error codes onto HTTP status codes
func statusFor(resp types.Response) int {
	if resp.Success {
		return http.StatusOK
	}
	switch resp.Error.Code {
	case types.ErrInvalidCredentials, types.ErrNoSession:
		return http.StatusUnauthorized
	case types.ErrPermissionDenied:
		return http.StatusForbidden
	case types.ErrUserNotFound, types.ErrBranchNotFound, types.ErrAgentNotFound,
		types.ErrConversationNotFound, types.ErrTaskNotFound, types.ErrReportNotFound,
		types.ErrEscalationNotFound, types.ErrNotificationNotFound:
		return http.StatusNotFound
	case types.ErrAgentAtCapacity:
		return http.StatusConflict
	case types.ErrValidation:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the envelope and records the operation metric
func (h *Handler) respond(w http.ResponseWriter, operation string, resp types.Response) {
	h.metrics.RecordOp(operation, resp.Success)

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusFor(resp))
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Str("operation", operation).Msg("failed to encode response")
	}
}

// decode reads a JSON body into dst and writes a validation envelope on
// failure. Returns false when the caller should stop.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, operation string, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respond(w, operation, types.Fail(types.ErrValidation, "invalid JSON body"))
		return false
	}
	return true
}
