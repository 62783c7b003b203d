package middleware

import (
	"net/http"

	"expense-ledger-go/pkg/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// RequestLogger stores log, tagged with the chi request id, in the request
// context. It must run after chi's RequestID middleware.
func RequestLogger(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			scoped := log
			if id := chimw.GetReqID(r.Context()); id != "" {
				scoped = log.With("request_id", id)
			}
			next.ServeHTTP(w, r.WithContext(logger.NewContext(r.Context(), scoped)))
		})
	}
}
