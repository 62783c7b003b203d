package expenses

import (
	"context"
	"errors"

	expensesdomain "expense-ledger-go/internal/domain/expenses"
	userdomain "expense-ledger-go/internal/domain/user"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Transaction(ctx context.Context, fn func(expensesdomain.Repository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&PostgresRepository{db: tx})
	})
}

func (r *PostgresRepository) CountUsersByIDs(ctx context.Context, userIDs []string) (int64, error) {
	if len(userIDs) == 0 {
		return 0, nil
	}
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&userdomain.User{}).
		Where("id IN ?", userIDs).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *PostgresRepository) CreateExpense(ctx context.Context, expense *expensesdomain.Expense) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(expense).Error
}

func (r *PostgresRepository) CreateShare(ctx context.Context, share *expensesdomain.Share) error {
	return r.db.WithContext(ctx).Create(share).Error
}

func (r *PostgresRepository) GetExpenseByID(ctx context.Context, expenseID string) (*expensesdomain.Expense, error) {
	var expense expensesdomain.Expense
	if err := r.withShares(ctx).
		Where("id = ?", expenseID).
		First(&expense).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, expensesdomain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

func (r *PostgresRepository) ListExpensesByUser(ctx context.Context, userID string) ([]expensesdomain.Expense, error) {
	var items []expensesdomain.Expense
	if err := r.withShares(ctx).
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) ListExpenses(ctx context.Context) ([]expensesdomain.Expense, error) {
	var items []expensesdomain.Expense
	if err := r.withShares(ctx).
		Order("created_at, id").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (r *PostgresRepository) withShares(ctx context.Context) *gorm.DB {
	return r.db.WithContext(ctx).Preload("Shares", func(db *gorm.DB) *gorm.DB {
		return db.Order("position")
	})
}
