package balance

import (
	"context"

	balancedomain "expense-ledger-go/internal/domain/balance"
	"gorm.io/gorm"
)

const (
	totalsPaidQuery = "SELECT u.id AS user_id, u.name AS user_name, COALESCE(SUM(e.amount), 0) AS total FROM users u JOIN expenses e ON e.user_id = u.id GROUP BY u.id, u.name"
	totalsOwedQuery = "SELECT u.id AS user_id, u.name AS user_name, COALESCE(SUM(s.amount_owed), 0) AS total FROM users u JOIN expense_shares s ON s.user_id = u.id GROUP BY u.id, u.name"
	expensesQuery   = "SELECT e.id, e.user_id, e.amount, e.method, e.description, e.created_at FROM expenses e ORDER BY e.created_at, e.id"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) TotalsPaid(ctx context.Context) ([]balancedomain.UserTotal, error) {
	return r.totals(ctx, totalsPaidQuery)
}

func (r *PostgresRepository) TotalsOwed(ctx context.Context) ([]balancedomain.UserTotal, error) {
	return r.totals(ctx, totalsOwedQuery)
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]balancedomain.ExpenseItem, error) {
	var rows []balancedomain.ExpenseItem
	if err := r.db.WithContext(ctx).Raw(expensesQuery).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *PostgresRepository) totals(ctx context.Context, query string) ([]balancedomain.UserTotal, error) {
	var rows []balancedomain.UserTotal
	if err := r.db.WithContext(ctx).Raw(query).Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}
