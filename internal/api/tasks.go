package api

import (
	"net/http"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
	"github.com/go-chi/chi/v5"
)

// ListTasks handles GET /api/tasks
func (h *Handler) ListTasks(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_tasks", h.svc.ListTasks(r.Context()))
}

// CreateTask handles POST /api/tasks
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var input service.TaskInput
	if !h.decode(w, r, "create_task", &input) {
		return
	}
	h.respond(w, "create_task", h.svc.CreateTask(r.Context(), input))
}

// UpdateTaskStatus handles PUT /api/tasks/{taskId}/status
func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "taskId")
	var req struct {
		Status types.TaskStatus `json:"status"`
	}
	if !h.decode(w, r, "update_task_status", &req) {
		return
	}
	h.respond(w, "update_task_status", h.svc.UpdateTaskStatus(r.Context(), id, req.Status))
}
