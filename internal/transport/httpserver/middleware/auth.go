package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"expense-ledger-go/internal/auth"
	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/pkg/logger"
)

type contextKey int

const (
	userIDKey contextKey = iota
	userKey
)

type User struct {
	ID    string
	Email string
	Name  string
}

type TokenVerifier interface {
	Validate(token string) (*auth.Claims, error)
}

// UserLoader resolves the subject of a token to a stored user.
type UserLoader interface {
	GetUser(ctx context.Context, userID string) (*userdomain.User, error)
}

type JWTAuth struct {
	tokens TokenVerifier
	users  UserLoader
	log    logger.Logger
}

func NewJWTAuth(tokens TokenVerifier, users UserLoader, log logger.Logger) *JWTAuth {
	return &JWTAuth{tokens: tokens, users: users, log: log}
}

func (a *JWTAuth) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token, ok := bearerToken(r.Header.Get("Authorization"))
		if !ok {
			unauthorized(w)
			return
		}

		log := logger.FromContext(r.Context(), a.log)

		claims, err := a.tokens.Validate(token)
		if err != nil {
			log.Debug("auth: token rejected", "error", err)
			unauthorized(w)
			return
		}

		stored, err := a.users.GetUser(r.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, userdomain.ErrUserNotFound) {
				unauthorized(w)
				return
			}
			log.InternalError("auth: load user failed", err, "user_id", claims.Subject)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
			return
		}

		ctx := WithUser(r.Context(), User{ID: stored.ID, Email: stored.Email, Name: stored.Name})
		ctx = logger.NewContext(ctx, log.With("user_id", stored.ID))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(value string) (string, bool) {
	parts := strings.Fields(value)
	if len(parts) != 2 {
		return "", false
	}
	if !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeError(w, http.StatusUnauthorized, "invalid_token", "could not validate credentials")
}

func WithUser(ctx context.Context, user User) context.Context {
	ctx = context.WithValue(ctx, userKey, user)
	return context.WithValue(ctx, userIDKey, user.ID)
}

func UserFromContext(ctx context.Context) (User, bool) {
	value := ctx.Value(userKey)
	user, ok := value.(User)
	if !ok || user.ID == "" {
		return User{}, false
	}
	return user, true
}

func UserIDFromContext(ctx context.Context) (string, bool) {
	value := ctx.Value(userIDKey)
	userID, ok := value.(string)
	if !ok || userID == "" {
		return "", false
	}
	return userID, true
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{
		"error": map[string]string{
			"code":    code,
			"message": message,
		},
	})
}
