package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/CategoryLeaders/productlobby-sub003/internal/api/auth"
)

func newProtectedHandler(t *testing.T) http.Handler {
	t.Helper()

	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	return JWTAuthMiddleware(jwtManager, nil)(next)
}

func TestMissingTokenGetsEnvelope(t *testing.T) {
	handler := newProtectedHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/campaigns/x/engagement", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid JSON: %v", err)
	}
	if body["success"] != false {
		t.Errorf("expected success=false in 401 body, got %v", body["success"])
	}
	if msg, _ := body["error"].(string); msg == "" {
		t.Error("expected a non-empty error message")
	}
}

func TestGarbageTokenRejected(t *testing.T) {
	handler := newProtectedHandler(t)

	req := httptest.NewRequest("GET", "/api/v1/auth/me", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
