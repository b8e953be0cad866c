// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"courier_backend/internal/feature/liquidations/domain/entity"
	"courier_backend/internal/feature/liquidations/usecase"
)

// CachingLiquidationRepository decorates a LiquidationRepository with
// Redis caching of the list views. It implements the decorator pattern,
// transparently adding caching without modifying the underlying
// repository. Every mutation invalidates the cached lists, which is how
// stale views refresh after a payment.
type CachingLiquidationRepository struct {
	inner     usecase.LiquidationRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// Compile-time check to ensure the decorator implements LiquidationRepository.
var _ usecase.LiquidationRepository = (*CachingLiquidationRepository)(nil)

// NewCachingLiquidationRepository decorates a LiquidationRepository with
// Redis caching. If ttl is 0, it defaults to 5 minutes. If namespace is
// empty, it uses "liquidations".
func NewCachingLiquidationRepository(rdb *redis.Client, ttl time.Duration, inner usecase.LiquidationRepository, namespace string) *CachingLiquidationRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "liquidations"
	}
	return &CachingLiquidationRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create persists a liquidation and invalidates the cached lists.
func (c *CachingLiquidationRepository) Create(ctx context.Context, l *entity.Liquidation) error {
	if err := c.inner.Create(ctx, l); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// FindByID always goes to the underlying repository; single rows are
// cheap and the payment path must see current state.
func (c *CachingLiquidationRepository) FindByID(ctx context.Context, id uint) (*entity.Liquidation, error) {
	return c.inner.FindByID(ctx, id)
}

// List retrieves all liquidations, checking the cache first.
func (c *CachingLiquidationRepository) List(ctx context.Context) ([]*entity.Liquidation, error) {
	return c.cachedList(ctx, c.key("all"), func() ([]*entity.Liquidation, error) {
		return c.inner.List(ctx)
	})
}

// ListByClient retrieves one client's liquidations, checking the cache first.
func (c *CachingLiquidationRepository) ListByClient(ctx context.Context, clientID uint) ([]*entity.Liquidation, error) {
	return c.cachedList(ctx, c.key(fmt.Sprintf("client:%d", clientID)), func() ([]*entity.Liquidation, error) {
		return c.inner.ListByClient(ctx, clientID)
	})
}

// MarkPaid forwards the transition and invalidates the cached lists.
func (c *CachingLiquidationRepository) MarkPaid(ctx context.Context, id uint, transactionID string) error {
	if err := c.inner.MarkPaid(ctx, id, transactionID); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// MarkCancelled forwards the transition and invalidates the cached lists.
func (c *CachingLiquidationRepository) MarkCancelled(ctx context.Context, id uint) error {
	if err := c.inner.MarkCancelled(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

// cachedList serves a list query through the cache.
func (c *CachingLiquidationRepository) cachedList(ctx context.Context, key string, load func() ([]*entity.Liquidation, error)) ([]*entity.Liquidation, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []*entity.Liquidation
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// invalidate removes every cached list in the namespace using SCAN.
// Best effort: a failed invalidation only shortens cache accuracy, so
// errors are swallowed.
func (c *CachingLiquidationRepository) invalidate(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	pattern := c.key("*")
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			_ = c.rdb.Del(ctx, keys...).Err()
		}
		cursor = cur
		if cursor == 0 {
			return
		}
	}
}

// key generates a namespaced cache key.
func (c *CachingLiquidationRepository) key(suffix string) string {
	return fmt.Sprintf("%s:%s", c.namespace, suffix)
}
