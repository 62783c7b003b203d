package balance

import (
	"time"

	"expense-ledger-go/internal/domain/split"

	"github.com/shopspring/decimal"
)

// ExpenseItem is an expense as listed on its owner's balance sheet line.
type ExpenseItem struct {
	ID          string
	UserID      string
	Amount      decimal.Decimal
	Method      split.Method
	Description string
	CreatedAt   time.Time
}

// UserTotal is an aggregated amount for one user.
type UserTotal struct {
	UserID   string
	UserName string
	Total    decimal.Decimal
}

// Entry is one line of the balance sheet. NetBalance is what the user paid
// minus what they owe; positive means others owe them.
type Entry struct {
	UserID             string
	UserName           string
	TotalExpense       decimal.Decimal
	TotalOwed          decimal.Decimal
	NetBalance         decimal.Decimal
	IndividualExpenses []ExpenseItem
}

type Sheet struct {
	Currency    string
	GeneratedAt time.Time
	Entries     []Entry
}

func (s Sheet) Clone() Sheet {
	cloned := s
	cloned.Entries = make([]Entry, len(s.Entries))
	for i, entry := range s.Entries {
		cloned.Entries[i] = entry
		cloned.Entries[i].IndividualExpenses = append([]ExpenseItem(nil), entry.IndividualExpenses...)
	}
	return cloned
}
