package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	balancedomain "expense-ledger-go/internal/domain/balance"

	"github.com/redis/go-redis/v9"
)

const (
	defaultKeyPrefix = "expense-ledger:"
	balanceSheetKey  = "balance_sheet"
	pingTimeout      = 5 * time.Second
)

// NewClient parses a redis:// URL and verifies the server answers.
func NewClient(ctx context.Context, connectionURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(connectionURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = 20
	opt.MinIdleConns = 2
	opt.ConnMaxIdleTime = 200 * time.Second

	client := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return client, nil
}

// BalanceSheetCache stores the balance sheet as JSON under a key per cache
// generation. Invalidate bumps the generation counter, so a sheet written for
// an older generation is never read again and simply expires.
type BalanceSheetCache struct {
	client        redis.Cmdable
	generationKey string
	sheetPrefix   string
}

func NewBalanceSheetCache(client redis.Cmdable, prefix string) *BalanceSheetCache {
	if prefix == "" {
		prefix = defaultKeyPrefix
	}
	return &BalanceSheetCache{
		client:        client,
		generationKey: prefix + balanceSheetKey + ":generation",
		sheetPrefix:   prefix + balanceSheetKey + ":",
	}
}

func (c *BalanceSheetCache) Generation(ctx context.Context) (uint64, error) {
	generation, err := c.client.Get(ctx, c.generationKey).Uint64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("redis get %s: %w", c.generationKey, err)
	}
	return generation, nil
}

func (c *BalanceSheetCache) Get(ctx context.Context) (*balancedomain.Sheet, bool, error) {
	generation, err := c.Generation(ctx)
	if err != nil {
		return nil, false, err
	}

	key := c.sheetKey(generation)
	payload, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var sheet balancedomain.Sheet
	if err := json.Unmarshal(payload, &sheet); err != nil {
		return nil, false, fmt.Errorf("decode cached balance sheet: %w", err)
	}
	return &sheet, true, nil
}

func (c *BalanceSheetCache) Set(ctx context.Context, generation uint64, sheet balancedomain.Sheet, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(sheet)
	if err != nil {
		return fmt.Errorf("encode balance sheet: %w", err)
	}
	key := c.sheetKey(generation)
	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

func (c *BalanceSheetCache) Invalidate(ctx context.Context) error {
	if err := c.client.Incr(ctx, c.generationKey).Err(); err != nil {
		return fmt.Errorf("redis incr %s: %w", c.generationKey, err)
	}
	return nil
}

func (c *BalanceSheetCache) sheetKey(generation uint64) string {
	return c.sheetPrefix + strconv.FormatUint(generation, 10)
}
