package expenses

import (
	"context"

	"expense-ledger-go/internal/domain/split"
)

// SheetCache is the part of the balance sheet cache the service needs to
// drop stale aggregates after a write.
type SheetCache interface {
	Invalidate(ctx context.Context) error
}

// Recorder receives the outcome of every create attempt.
type Recorder interface {
	ExpenseCreated(method split.Method)
	ExpenseRejected(reason string)
}

type noopSheetCache struct{}

func (noopSheetCache) Invalidate(context.Context) error {
	return nil
}

type noopRecorder struct{}

func (noopRecorder) ExpenseCreated(split.Method) {}

func (noopRecorder) ExpenseRejected(string) {}
