package expenses

import (
	"time"

	"expense-ledger-go/internal/domain/split"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID          string          `gorm:"type:uuid;primaryKey"`
	UserID      string          `gorm:"type:uuid;index;not null"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Method      split.Method    `gorm:"type:varchar(16);not null"`
	Description string          `gorm:"not null;default:''"`
	CreatedAt   time.Time       `gorm:"autoCreateTime"`
	Shares      []Share         `gorm:"foreignKey:ExpenseID"`
}

// Share is the obligation of one participant towards an expense.
type Share struct {
	ID         string          `gorm:"type:uuid;primaryKey"`
	ExpenseID  string          `gorm:"type:uuid;not null;uniqueIndex:idx_expense_shares_expense_user"`
	UserID     string          `gorm:"type:uuid;not null;uniqueIndex:idx_expense_shares_expense_user;index"`
	AmountOwed decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Percentage decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	// Position keeps the participant order of the request.
	Position int `gorm:"not null;default:0"`
}

func (Share) TableName() string {
	return "expense_shares"
}

type CreateExpenseInput struct {
	UserID       string
	Amount       decimal.Decimal
	Method       split.Method
	Description  string
	Participants []split.Participant
}
