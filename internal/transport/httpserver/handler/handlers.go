package handler

import (
	"net/http"

	"expense-ledger-go/internal/auth"
	balancedomain "expense-ledger-go/internal/domain/balance"
	expensesdomain "expense-ledger-go/internal/domain/expenses"
	userdomain "expense-ledger-go/internal/domain/user"
	"expense-ledger-go/pkg/logger"
)

type Handlers struct {
	Users    *userdomain.Service
	Expenses *expensesdomain.Service
	Balance  *balancedomain.Service
	Tokens   *auth.TokenManager

	// scale is the number of decimals amounts are rendered with.
	scale     int32
	validator *requestValidator
	log       logger.Logger
}

func New(users *userdomain.Service, expenses *expensesdomain.Service, balance *balancedomain.Service, tokens *auth.TokenManager, scale int32, log logger.Logger) *Handlers {
	return &Handlers{
		Users:     users,
		Expenses:  expenses,
		Balance:   balance,
		Tokens:    tokens,
		scale:     scale,
		validator: newRequestValidator(),
		log:       log,
	}
}

// logger returns the request scoped logger set up by the router.
func (h *Handlers) logger(r *http.Request) logger.Logger {
	return logger.FromContext(r.Context(), h.log)
}
