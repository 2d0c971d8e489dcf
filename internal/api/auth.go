package api

import (
	"net/http"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login. Mounted outside the auth middleware.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !h.decode(w, r, "login", &req) {
		return
	}
	h.respond(w, "login", h.svc.Login(r.Context(), req.Email, req.Password))
}

// Logout handles POST /api/auth/logout
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "logout", h.svc.Logout(r.Context()))
}

// Me handles GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	h.respond(w, "current_user", h.svc.CurrentUser(r.Context()))
}
