package api

import (
	"net/http"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/go-chi/chi/v5"
)

// ListReports handles GET /api/reports
func (h *Handler) ListReports(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "list_reports", h.svc.ListReports(r.Context()))
}

// CreateReport handles POST /api/reports
func (h *Handler) CreateReport(w http.ResponseWriter, r *http.Request) {
	var input service.ReportInput
	if !h.decode(w, r, "create_report", &input) {
		return
	}
	h.respond(w, "create_report", h.svc.CreateReport(r.Context(), input))
}

// SubmitReport handles POST /api/reports/{reportId}/submit
func (h *Handler) SubmitReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")
	h.respond(w, "submit_report", h.svc.SubmitReport(r.Context(), id))
}

// ReviewReport handles POST /api/reports/{reportId}/review
func (h *Handler) ReviewReport(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "reportId")
	var req struct {
		Approve    bool   `json:"approve"`
		AdminNotes string `json:"adminNotes,omitempty"`
	}
	if !h.decode(w, r, "review_report", &req) {
		return
	}
	h.respond(w, "review_report", h.svc.ReviewReport(r.Context(), id, req.Approve, req.AdminNotes))
}
