package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/auth"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/config"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/metrics"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/service"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/storage"
	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// newTestServer wires the full router the way the server binary does, with
// zero simulated latency
func newTestServer(t *testing.T) (*service.Service, http.Handler) {
	t.Helper()
	cfg := &config.Config{
		JWTSecret:     "test-secret",
		ReplyMinDelay: 5 * time.Millisecond,
		ReplyMaxDelay: 10 * time.Millisecond,
		AuditLogCap:   1000,
	}
	logger := zerolog.New(&bytes.Buffer{})
	svc := service.New(cfg, storage.NewNoopStore(), logger)
	t.Cleanup(svc.Close)

	h := NewHandler(svc, metrics.New(), logger)

	r := chi.NewRouter()
	r.Post("/api/auth/login", h.Login)
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware(svc.TokenIssuer()))
		r.Route("/api", h.Routes)
	})
	return svc, r
}

// doJSON performs a request with an optional bearer token and decodes the
// envelope
func doJSON(t *testing.T, handler http.Handler, method, path, token, body string) (int, types.Response) {
	t.Helper()
	var reqBody *strings.Reader
	if body == "" {
		reqBody = strings.NewReader("{}")
	} else {
		reqBody = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var resp types.Response
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("%s %s: failed to decode envelope: %v (body %q)", method, path, err, rec.Body.String())
	}
	return rec.Code, resp
}

// loginToken logs in over HTTP and returns the bearer token
func loginToken(t *testing.T, handler http.Handler, email string) string {
	t.Helper()
	code, resp := doJSON(t, handler, http.MethodPost, "/api/auth/login", "",
		`{"email":"`+email+`","password":"x"}`)
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("login as %s failed: %d %+v", email, code, resp.Error)
	}
	data := resp.Data.(map[string]any)
	token, _ := data["token"].(string)
	if token == "" {
		t.Fatal("expected a token in the login payload")
	}
	return token
}

func TestLoginEndpoint(t *testing.T) {
	_, handler := newTestServer(t)

	code, resp := doJSON(t, handler, http.MethodPost, "/api/auth/login", "",
		`{"email":"admin@callcenter.co.ke","password":"anything"}`)
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("expected 200 success, got %d %+v", code, resp.Error)
	}

	code, resp = doJSON(t, handler, http.MethodPost, "/api/auth/login", "",
		`{"email":"nobody@example.com","password":"wrong"}`)
	if code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != types.ErrInvalidCredentials {
		t.Errorf("expected INVALID_CREDENTIALS, got %+v", resp.Error)
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	_, handler := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/conversations", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}
}

func TestConversationEndpoints(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler, "admin@callcenter.co.ke")

	code, resp := doJSON(t, handler, http.MethodGet, "/api/conversations?page=1&limit=5", token, "")
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("list failed: %d %+v", code, resp.Error)
	}
	if resp.Metadata == nil || resp.Metadata.Total != 14 || !resp.Metadata.HasMore {
		t.Errorf("unexpected pagination metadata: %+v", resp.Metadata)
	}

	code, resp = doJSON(t, handler, http.MethodPost, "/api/conversations/conv-1001/assign", token,
		`{"agentId":"agent-5"}`)
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("assign failed: %d %+v", code, resp.Error)
	}

	code, resp = doJSON(t, handler, http.MethodGet, "/api/conversations/conv-9999", token, "")
	if code != http.StatusNotFound {
		t.Errorf("expected 404, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != types.ErrConversationNotFound {
		t.Errorf("expected CONVERSATION_NOT_FOUND, got %+v", resp.Error)
	}
}

func TestCapacityConflictStatus(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler, "admin@callcenter.co.ke")

	// agent-5 takes two conversations, its maximum
	for _, conv := range []string{"conv-1001", "conv-1004"} {
		if code, resp := doJSON(t, handler, http.MethodPost, "/api/conversations/"+conv+"/assign", token,
			`{"agentId":"agent-5"}`); code != http.StatusOK {
			t.Fatalf("assign %s failed: %d %+v", conv, code, resp.Error)
		}
	}

	code, resp := doJSON(t, handler, http.MethodPost, "/api/conversations/conv-1008/assign", token,
		`{"agentId":"agent-5"}`)
	if code != http.StatusConflict {
		t.Errorf("expected 409, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != types.ErrAgentAtCapacity {
		t.Errorf("expected AGENT_AT_CAPACITY, got %+v", resp.Error)
	}
}

func TestPermissionDeniedStatus(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler, "brian.kip@callcenter.co.ke")

	code, resp := doJSON(t, handler, http.MethodPost, "/api/conversations/conv-1002/assign", token,
		`{"agentId":"agent-2"}`)
	if code != http.StatusForbidden {
		t.Errorf("expected 403, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != types.ErrPermissionDenied {
		t.Errorf("expected PERMISSION_DENIED, got %+v", resp.Error)
	}
}

func TestSetLatencyEndpoint(t *testing.T) {
	svc, handler := newTestServer(t)
	token := loginToken(t, handler, "admin@callcenter.co.ke")

	code, resp := doJSON(t, handler, http.MethodPut, "/api/config/latency", token,
		`{"baseMs":40,"varianceMs":0}`)
	if code != http.StatusOK || !resp.Success {
		t.Fatalf("set latency failed: %d %+v", code, resp.Error)
	}

	start := time.Now()
	svc.ListBranches(context.Background())
	if elapsed := time.Since(start); elapsed < 30*time.Millisecond {
		t.Errorf("expected the configured latency to apply, call took %v", elapsed)
	}
}

func TestInvalidBodyReturnsBadRequest(t *testing.T) {
	_, handler := newTestServer(t)
	token := loginToken(t, handler, "admin@callcenter.co.ke")

	code, resp := doJSON(t, handler, http.MethodPost, "/api/tasks", token, `{"title":`)
	if code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", code)
	}
	if resp.Error == nil || resp.Error.Code != types.ErrValidation {
		t.Errorf("expected VALIDATION_ERROR, got %+v", resp.Error)
	}
}
