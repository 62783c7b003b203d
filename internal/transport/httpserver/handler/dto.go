package handler

import (
	"time"

	balancedomain "expense-ledger-go/internal/domain/balance"
	expensesdomain "expense-ledger-go/internal/domain/expenses"
	userdomain "expense-ledger-go/internal/domain/user"
)

type userResponse struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	CreatedAt    time.Time `json:"created_at"`
}

type shareResponse struct {
	UserID     string `json:"user_id"`
	AmountOwed string `json:"amount_owed"`
	Percentage string `json:"percentage"`
}

type expenseResponse struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	Amount      string          `json:"amount"`
	Method      string          `json:"method"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
	Shares      []shareResponse `json:"shares"`
}

type balanceExpenseResponse struct {
	ID          string    `json:"id"`
	Amount      string    `json:"amount"`
	Method      string    `json:"method"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type balanceEntryResponse struct {
	UserID             string                   `json:"user_id"`
	UserName           string                   `json:"user_name"`
	TotalExpense       string                   `json:"total_expense"`
	TotalOwed          string                   `json:"total_owed"`
	NetBalance         string                   `json:"net_balance"`
	IndividualExpenses []balanceExpenseResponse `json:"individual_expenses"`
}

type balanceSheetResponse struct {
	Currency    string                 `json:"currency"`
	GeneratedAt time.Time              `json:"generated_at"`
	Entries     []balanceEntryResponse `json:"entries"`
}

func toUserResponse(user userdomain.User) userResponse {
	return userResponse{
		ID:           user.ID,
		Email:        user.Email,
		Name:         user.Name,
		MobileNumber: user.MobileNumber,
		CreatedAt:    user.CreatedAt,
	}
}

func (h *Handlers) toExpenseResponse(expense expensesdomain.Expense) expenseResponse {
	shares := make([]shareResponse, 0, len(expense.Shares))
	for _, share := range expense.Shares {
		shares = append(shares, shareResponse{
			UserID:     share.UserID,
			AmountOwed: share.AmountOwed.StringFixed(h.scale),
			Percentage: share.Percentage.StringFixed(2),
		})
	}
	return expenseResponse{
		ID:          expense.ID,
		UserID:      expense.UserID,
		Amount:      expense.Amount.StringFixed(h.scale),
		Method:      expense.Method.String(),
		Description: expense.Description,
		CreatedAt:   expense.CreatedAt,
		Shares:      shares,
	}
}

func (h *Handlers) toExpenseList(expenses []expensesdomain.Expense) []expenseResponse {
	items := make([]expenseResponse, 0, len(expenses))
	for _, expense := range expenses {
		items = append(items, h.toExpenseResponse(expense))
	}
	return items
}

func (h *Handlers) toBalanceSheetResponse(sheet balancedomain.Sheet) balanceSheetResponse {
	entries := make([]balanceEntryResponse, 0, len(sheet.Entries))
	for _, entry := range sheet.Entries {
		items := make([]balanceExpenseResponse, 0, len(entry.IndividualExpenses))
		for _, item := range entry.IndividualExpenses {
			items = append(items, balanceExpenseResponse{
				ID:          item.ID,
				Amount:      item.Amount.StringFixed(h.scale),
				Method:      item.Method.String(),
				Description: item.Description,
				CreatedAt:   item.CreatedAt,
			})
		}
		entries = append(entries, balanceEntryResponse{
			UserID:             entry.UserID,
			UserName:           entry.UserName,
			TotalExpense:       entry.TotalExpense.StringFixed(h.scale),
			TotalOwed:          entry.TotalOwed.StringFixed(h.scale),
			NetBalance:         entry.NetBalance.StringFixed(h.scale),
			IndividualExpenses: items,
		})
	}
	return balanceSheetResponse{
		Currency:    sheet.Currency,
		GeneratedAt: sheet.GeneratedAt,
		Entries:     entries,
	}
}
