package balance

import (
	"context"
	"time"
)

type Repository interface {
	// TotalsPaid sums the amounts of the expenses each user owns.
	TotalsPaid(ctx context.Context) ([]UserTotal, error)
	// TotalsOwed sums the shares each user owes across all expenses.
	TotalsOwed(ctx context.Context) ([]UserTotal, error)
	ListExpenses(ctx context.Context) ([]ExpenseItem, error)
}

// Cache holds the last computed sheet. Every Invalidate starts a new
// generation, and Set only stores a sheet for the generation that was current
// when its computation began, so a sheet read before a commit cannot outlive
// that commit's invalidation.
type Cache interface {
	Generation(ctx context.Context) (uint64, error)
	Get(ctx context.Context) (*Sheet, bool, error)
	Set(ctx context.Context, generation uint64, sheet Sheet, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

type noopCache struct{}

func (noopCache) Generation(context.Context) (uint64, error) {
	return 0, nil
}

func (noopCache) Get(context.Context) (*Sheet, bool, error) {
	return nil, false, nil
}

func (noopCache) Set(context.Context, uint64, Sheet, time.Duration) error {
	return nil
}

func (noopCache) Invalidate(context.Context) error {
	return nil
}
