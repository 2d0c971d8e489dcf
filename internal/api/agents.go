package api

import (
	"net/http"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/go-chi/chi/v5"
)

// ListAgents handles GET /api/agents
func (h *Handler) ListAgents(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_agents", h.svc.ListAgents(r.Context()))
}

// UpdateAgent handles PUT /api/agents/{agentId}
func (h *Handler) UpdateAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	var update service.AgentUpdate
	if !h.decode(w, r, "update_agent", &update) {
		return
	}
	h.respond(w, "update_agent", h.svc.UpdateAgent(r.Context(), id, update))
}

// ReassignAgent handles POST /api/agents/{agentId}/reassign
func (h *Handler) ReassignAgent(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "agentId")
	var req struct {
		BranchID string `json:"branchId"`
	}
	if !h.decode(w, r, "reassign_agent", &req) {
		return
	}
	h.respond(w, "reassign_agent", h.svc.ReassignAgent(r.Context(), id, req.BranchID))
}

// ListBranches handles GET /api/branches
func (h *Handler) ListBranches(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_branches", h.svc.ListBranches(r.Context()))
}
