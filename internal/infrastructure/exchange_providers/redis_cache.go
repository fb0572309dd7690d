package providers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/LavaJover/shvark-payment-service/internal/domain"
	"github.com/LavaJover/shvark-payment-service/internal/logging"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const rateKeyPrefix = "fx:rate:"

// CachedRateProvider keeps upstream rates in Redis for ttl. Redis problems
// never fail a lookup, they only cost a direct fetch.
type CachedRateProvider struct {
	next domain.ExchangeRateProvider
	rdb  *redis.Client
	ttl  time.Duration
}

func NewCachedRateProvider(next domain.ExchangeRateProvider, rdb *redis.Client, ttl time.Duration) *CachedRateProvider {
	return &CachedRateProvider{next: next, rdb: rdb, ttl: ttl}
}

func (c *CachedRateProvider) GetName() string {
	return "cached_" + c.next.GetName()
}

func (c *CachedRateProvider) GetRate(ctx context.Context, source, target string) (decimal.Decimal, error) {
	key := cacheKey(source, target)

	cached, err := c.rdb.Get(ctx, key).Result()
	switch {
	case err == nil:
		if value, parseErr := decimal.NewFromString(cached); parseErr == nil && value.IsPositive() {
			return value, nil
		}
		logging.Warn("Discarding malformed cached rate", zap.String("key", key), zap.String("value", cached))
	case errors.Is(err, redis.Nil):
	default:
		logging.Warn("Rate cache read failed", zap.String("key", key), zap.Error(err))
	}

	value, err := c.next.GetRate(ctx, source, target)
	if err != nil {
		return decimal.Zero, err
	}

	if err := c.rdb.Set(ctx, key, value.String(), c.ttl).Err(); err != nil {
		logging.Warn("Rate cache write failed", zap.String("key", key), zap.Error(err))
	}

	return value, nil
}

func cacheKey(source, target string) string {
	return fmt.Sprintf("%s%s_%s", rateKeyPrefix, strings.ToUpper(source), strings.ToUpper(target))
}
