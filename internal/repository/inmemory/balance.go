package inmemory

import (
	"context"
	"sync"
	"time"

	balancedomain "expense-ledger-go/internal/domain/balance"
)

// BalanceSheetCache keeps the last computed balance sheet in process memory.
type BalanceSheetCache struct {
	mu         sync.RWMutex
	generation uint64
	item       *sheetItem
	now        func() time.Time
}

type sheetItem struct {
	value     balancedomain.Sheet
	expiresAt time.Time
}

func NewBalanceSheetCache() *BalanceSheetCache {
	return &BalanceSheetCache{now: time.Now}
}

func (c *BalanceSheetCache) Generation(_ context.Context) (uint64, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.generation, nil
}

func (c *BalanceSheetCache) Get(_ context.Context) (*balancedomain.Sheet, bool, error) {
	now := c.now()

	c.mu.RLock()
	item := c.item
	c.mu.RUnlock()
	if item == nil {
		return nil, false, nil
	}

	if !item.expiresAt.After(now) {
		c.mu.Lock()
		if c.item == item {
			c.item = nil
		}
		c.mu.Unlock()
		return nil, false, nil
	}

	sheet := item.value.Clone()
	return &sheet, true, nil
}

// Set drops the sheet when generation is no longer current.
func (c *BalanceSheetCache) Set(ctx context.Context, generation uint64, sheet balancedomain.Sheet, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if generation != c.generation {
		return nil
	}
	c.item = &sheetItem{
		value:     sheet.Clone(),
		expiresAt: c.now().Add(ttl),
	}
	return nil
}

func (c *BalanceSheetCache) Invalidate(_ context.Context) error {
	c.mu.Lock()
	c.generation++
	c.item = nil
	c.mu.Unlock()
	return nil
}
