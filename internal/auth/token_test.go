package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/denderemichael/WhatsApp-business-call-center/internal/types"
)

func TestMintAndVerify(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	user := types.User{
		ID:       "user-1",
		Email:    "manager@north.example",
		Role:     types.RoleBranchManager,
		BranchID: "branch-north",
	}

	token, err := issuer.Mint(user)
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	claims, err := issuer.Verify(token)
	if err != nil {
		t.Fatalf("failed to verify token: %v", err)
	}
	if claims.UserID != "user-1" {
		t.Errorf("expected user-1, got %s", claims.UserID)
	}
	if claims.Role != types.RoleBranchManager {
		t.Errorf("expected branch_manager role, got %s", claims.Role)
	}
	if claims.BranchID != "branch-north" {
		t.Errorf("expected branch-north, got %s", claims.BranchID)
	}
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
	issuer := NewTokenIssuer("secret-a", time.Hour)
	other := NewTokenIssuer("secret-b", time.Hour)

	token, err := issuer.Mint(types.User{ID: "user-1", Role: types.RoleAgent})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	if _, err := other.Verify(token); err == nil {
		t.Error("expected verification to fail with wrong secret")
	}
}

func TestVerifyRejectsExpired(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", -time.Minute)

	token, err := issuer.Mint(types.User{ID: "user-1", Role: types.RoleAgent})
	if err != nil {
		t.Fatalf("failed to mint token: %v", err)
	}

	if _, err := issuer.Verify(token); err == nil {
		t.Error("expected verification to fail for expired token")
	}
}

func TestMiddleware(t *testing.T) {
	issuer := NewTokenIssuer("test-secret", time.Hour)
	token, _ := issuer.Mint(types.User{ID: "user-1", Role: types.RoleAdmin})

	var gotClaims *Claims
	handler := Middleware(issuer)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotClaims, _ = ClaimsFromContext(r.Context())
		w.WriteHeader(http.StatusOK)
	}))

	// Bearer header
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d", rec.Code)
	}
	if gotClaims == nil || gotClaims.UserID != "user-1" {
		t.Error("expected claims in request context")
	}

	// Query parameter fallback
	req = httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Errorf("expected 200 with query token, got %d", rec.Code)
	}

	// Missing token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 without token, got %d", rec.Code)
	}

	// Garbage token
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401 with garbage token, got %d", rec.Code)
	}
}

func TestClaimsFromContextMissing(t *testing.T) {
	if _, ok := ClaimsFromContext(context.Background()); ok {
		t.Error("expected no claims in empty context")
	}
}
