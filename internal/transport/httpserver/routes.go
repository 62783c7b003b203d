package httpserver

import (
	"net/http"
	"time"

	"expense-ledger-go/internal/config"
	"expense-ledger-go/internal/metrics"
	"expense-ledger-go/internal/transport/httpserver/handler"
	authmw "expense-ledger-go/internal/transport/httpserver/middleware"
	"expense-ledger-go/pkg/logger"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, auth *authmw.JWTAuth, m *metrics.Metrics, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(authmw.RequestLogger(log))
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(m.Middleware)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Handle("/metrics", m.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/users", handlers.RegisterUser)
		r.Post("/token", handlers.IssueToken)

		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)
			r.Get("/users/{id}", handlers.GetUser)

			r.Get("/expenses", handlers.ListMyExpenses)
			r.Post("/expenses", handlers.CreateExpense)
			r.Get("/expenses/{id}", handlers.GetExpense)
			r.Get("/expenses/user/{user_id}", handlers.ListUserExpenses)

			r.Get("/balance_sheet", handlers.BalanceSheet)
			r.Get("/balance_sheet/download", handlers.DownloadBalanceSheet)
		})
	})

	return r
}
