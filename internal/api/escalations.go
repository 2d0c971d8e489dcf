package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// ListEscalations handles GET /api/escalations
func (h *Handler) ListEscalations(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_escalations", h.svc.ListEscalations(r.Context()))
}

// ResolveEscalation handles POST /api/escalations/{escalationId}/resolve
func (h *Handler) ResolveEscalation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "escalationId")
	var req struct {
		Resolution string `json:"resolution"`
	}
	if !h.decode(w, r, "resolve_escalation", &req) {
		return
	}
	h.respond(w, "resolve_escalation", h.svc.ResolveEscalation(r.Context(), id, req.Resolution))
}
