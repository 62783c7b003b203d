package redis

import (
	"context"
	"os"
	"testing"
	"time"

	balancedomain "expense-ledger-go/internal/domain/balance"
	"expense-ledger-go/internal/domain/split"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Runs against a live server only when TEST_REDIS_URL is set.
func newTestCache(t *testing.T) *BalanceSheetCache {
	t.Helper()
	url := os.Getenv("TEST_REDIS_URL")
	if url == "" {
		t.Skip("TEST_REDIS_URL not set")
	}

	client, err := NewClient(context.Background(), url)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	cache := NewBalanceSheetCache(client, "expense-ledger-test:"+uuid.NewString()+":")
	t.Cleanup(func() {
		ctx := context.Background()
		generation, _ := cache.Generation(ctx)
		_ = client.Del(ctx, cache.generationKey, cache.sheetKey(generation)).Err()
	})
	return cache
}

func TestBalanceSheetCacheRoundTrip(t *testing.T) {
	cache := newTestCache(t)
	ctx := context.Background()

	if _, ok, err := cache.Get(ctx); err != nil || ok {
		t.Fatalf("expected miss, got ok=%v err=%v", ok, err)
	}

	sheet := balancedomain.Sheet{
		Currency: "USD",
		Entries: []balancedomain.Entry{{
			UserID:       "u-1",
			UserName:     "Alice",
			TotalExpense: decimal.RequireFromString("33.34"),
			TotalOwed:    decimal.RequireFromString("33.33"),
			NetBalance:   decimal.RequireFromString("0.01"),
			IndividualExpenses: []balancedomain.ExpenseItem{
				{ID: "e-1", UserID: "u-1", Amount: decimal.RequireFromString("33.34"), Method: split.MethodEqual},
			},
		}},
	}
	generation, err := cache.Generation(ctx)
	if err != nil {
		t.Fatalf("generation: %v", err)
	}
	if err := cache.Set(ctx, generation, sheet, time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	cached, ok, err := cache.Get(ctx)
	if err != nil || !ok {
		t.Fatalf("expected hit, got ok=%v err=%v", ok, err)
	}
	if !cached.Entries[0].NetBalance.Equal(decimal.RequireFromString("0.01")) {
		t.Fatalf("decimal not preserved: %s", cached.Entries[0].NetBalance)
	}
	if cached.Entries[0].IndividualExpenses[0].Method != split.MethodEqual {
		t.Fatalf("method not preserved")
	}

	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatalf("expected miss after invalidate")
	}

	if err := cache.Set(ctx, generation, sheet, time.Minute); err != nil {
		t.Fatalf("stale set: %v", err)
	}
	if _, ok, _ := cache.Get(ctx); ok {
		t.Fatalf("expected sheet of an older generation to stay invisible")
	}
}

func TestNewClientRejectsBadURL(t *testing.T) {
	if _, err := NewClient(context.Background(), "not a url"); err == nil {
		t.Fatalf("expected error")
	}
}
