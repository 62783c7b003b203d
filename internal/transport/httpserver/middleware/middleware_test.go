package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"expense-ledger-go/internal/auth"
	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/pkg/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

type fakeUsers map[string]*userdomain.User

func (f fakeUsers) GetUser(ctx context.Context, userID string) (*userdomain.User, error) {
	user, ok := f[userID]
	if !ok {
		return nil, userdomain.ErrUserNotFound
	}
	return user, nil
}

type failingUsers struct{}

func (failingUsers) GetUser(context.Context, string) (*userdomain.User, error) {
	return nil, errors.New("db down")
}

func newTokens(t *testing.T) *auth.TokenManager {
	t.Helper()
	tokens, err := auth.NewTokenManager("secret", time.Minute)
	if err != nil {
		t.Fatalf("token manager: %v", err)
	}
	return tokens
}

func serve(mw *JWTAuth, header string) (*httptest.ResponseRecorder, User) {
	var seen User
	handler := mw.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	}))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec, seen
}

func TestJWTAuthAcceptsValidToken(t *testing.T) {
	tokens := newTokens(t)
	users := fakeUsers{"u-1": {ID: "u-1", Email: "alice@example.com", Name: "Alice"}}
	mw := NewJWTAuth(tokens, users, logger.Nop())

	token, err := tokens.Generate("u-1", "alice@example.com")
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	rec, user := serve(mw, "Bearer "+token)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}
	if user.ID != "u-1" || user.Name != "Alice" {
		t.Fatalf("unexpected user in context %+v", user)
	}
}

func TestJWTAuthRejects(t *testing.T) {
	tokens := newTokens(t)
	orphan, _ := tokens.Generate("deleted-user", "")

	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "wrong scheme", header: "Basic abc"},
		{name: "garbage token", header: "Bearer abc"},
		{name: "unknown user", header: "Bearer " + orphan},
	}

	mw := NewJWTAuth(tokens, fakeUsers{}, logger.Nop())
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := serve(mw, tt.header)
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			if rec.Header().Get("WWW-Authenticate") != "Bearer" {
				t.Fatalf("expected WWW-Authenticate header")
			}
		})
	}
}

func TestJWTAuthStorageFailure(t *testing.T) {
	tokens := newTokens(t)
	token, _ := tokens.Generate("u-1", "")

	rec, _ := serve(NewJWTAuth(tokens, failingUsers{}, logger.Nop()), "Bearer "+token)
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
}

func TestCORS(t *testing.T) {
	handler := NewCORS([]string{"http://app.test"})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/expenses", nil)
	req.Header.Set("Origin", "http://app.test")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "http://app.test" {
		t.Fatalf("expected origin to be allowed")
	}

	req = httptest.NewRequest(http.MethodGet, "/api/expenses", nil)
	req.Header.Set("Origin", "http://evil.test")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Fatalf("expected foreign origin to be ignored")
	}
}

func TestRequestLoggerTagsRequestID(t *testing.T) {
	var buf bytes.Buffer
	base := logger.New(logger.Options{Level: slog.LevelInfo, Format: logger.FormatJSON, Output: &buf})

	handler := chimw.RequestID(RequestLogger(base)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.FromContext(r.Context(), logger.Nop()).Info("handled")
		w.WriteHeader(http.StatusNoContent)
	})))
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(chimw.RequestIDHeader, "req-42")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("decode log line %q: %v", buf.String(), err)
	}
	if record["request_id"] != "req-42" {
		t.Fatalf("expected request_id req-42, got %v", record["request_id"])
	}
}
