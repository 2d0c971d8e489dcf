package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

// QueryAudit handles GET /api/audit
func (h *Handler) QueryAudit(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := types.AuditFilter{
		ActionType:     types.ActionType(q.Get("actionType")),
		PerformedBy:    q.Get("performedBy"),
		ConversationID: q.Get("conversationId"),
	}
	if v := q.Get("since"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Since = ts
		}
	}
	if v := q.Get("until"); v != "" {
		if ts, err := time.Parse(time.RFC3339, v); err == nil {
			filter.Until = ts
		}
	}
	limit, _ := strconv.Atoi(q.Get("limit"))

	h.respond(w, "query_audit", h.svc.QueryAudit(r.Context(), filter, limit))
}

// SetLatency handles PUT /api/config/latency. The simulated latency applies
// to every facade call from the next request on.
func (h *Handler) SetLatency(w http.ResponseWriter, r *http.Request) {
	var req struct {
		BaseMs     int `json:"baseMs"`
		VarianceMs int `json:"varianceMs"`
	}
	if !h.decode(w, r, "set_latency", &req) {
		return
	}

	h.svc.SetLatency(time.Duration(req.BaseMs)*time.Millisecond, time.Duration(req.VarianceMs)*time.Millisecond)
	h.logger.Info().Int("base_ms", req.BaseMs).Int("variance_ms", req.VarianceMs).Msg("latency updated")

	h.respond(w, "set_latency", types.OK(map[string]int{
		"baseMs":     req.BaseMs,
		"varianceMs": req.VarianceMs,
	}))
}
