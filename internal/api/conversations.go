package api

import (
	"net/http"
	"strconv"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
	"github.com/go-chi/chi/v5"
)

// ListConversations handles GET /api/conversations
func (h *Handler) ListConversations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := types.ConversationFilter{
		BranchID: q.Get("branchId"),
		AgentID:  q.Get("agentId"),
		Status:   types.ConversationStatus(q.Get("status")),
	}
	page, _ := strconv.Atoi(q.Get("page"))
	limit, _ := strconv.Atoi(q.Get("limit"))

	h.respond(w, "list_conversations", h.svc.ListConversations(r.Context(), filter, page, limit))
}

// GetConversation handles GET /api/conversations/{conversationId}
func (h *Handler) GetConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	h.respond(w, "get_conversation", h.svc.GetConversation(r.Context(), id))
}

// UpdateConversation handles PUT /api/conversations/{conversationId}
func (h *Handler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	var update service.ConversationUpdate
	if !h.decode(w, r, "update_conversation", &update) {
		return
	}
	h.respond(w, "update_conversation", h.svc.UpdateConversation(r.Context(), id, update))
}

// AssignConversation handles POST /api/conversations/{conversationId}/assign
func (h *Handler) AssignConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	var req struct {
		AgentID string `json:"agentId"`
	}
	if !h.decode(w, r, "assign_conversation", &req) {
		return
	}
	h.respond(w, "assign_conversation", h.svc.AssignConversation(r.Context(), id, req.AgentID))
}

// TransferConversation handles POST /api/conversations/{conversationId}/transfer
func (h *Handler) TransferConversation(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	var req struct {
		AgentID string `json:"agentId"`
		Reason  string `json:"reason"`
	}
	if !h.decode(w, r, "transfer_conversation", &req) {
		return
	}
	h.respond(w, "transfer_conversation", h.svc.TransferConversation(r.Context(), id, req.AgentID, req.Reason))
}

// EscalateConversation handles POST /api/conversations/{conversationId}/escalate
func (h *Handler) EscalateConversation(w http.ResponseWriter, r *http.Request) {
	var input service.EscalationInput
	if !h.decode(w, r, "escalate_conversation", &input) {
		return
	}
	input.ConversationID = chi.URLParam(r, "conversationId")
	h.respond(w, "escalate_conversation", h.svc.EscalateConversation(r.Context(), input))
}

// SendMessage handles POST /api/conversations/{conversationId}/messages
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	var req struct {
		Content string `json:"content"`
		TaskID  string `json:"taskId,omitempty"`
	}
	if !h.decode(w, r, "send_message", &req) {
		return
	}
	h.respond(w, "send_message", h.svc.SendMessage(r.Context(), id, req.Content, req.TaskID))
}

// GetSLA handles GET /api/conversations/{conversationId}/sla
func (h *Handler) GetSLA(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	h.respond(w, "get_sla", h.svc.GetSLA(r.Context(), id))
}

// CheckSLA handles POST /api/conversations/{conversationId}/sla/check
func (h *Handler) CheckSLA(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "conversationId")
	h.respond(w, "check_sla", h.svc.CheckSLA(r.Context(), id))
}
