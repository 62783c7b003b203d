package expenses

import "context"

type Repository interface {
	Transaction(ctx context.Context, fn func(Repository) error) error
	CountUsersByIDs(ctx context.Context, userIDs []string) (int64, error)
	CreateExpense(ctx context.Context, expense *Expense) error
	CreateShare(ctx context.Context, share *Share) error
	GetExpenseByID(ctx context.Context, expenseID string) (*Expense, error)
	ListExpensesByUser(ctx context.Context, userID string) ([]Expense, error)
	ListExpenses(ctx context.Context) ([]Expense, error)
}
