package report

import (
	"context"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// CacheInvalidator drops cached aggregate reports so a freshly decided
// request shows up in the next aggregate call instead of after the TTL.
type CacheInvalidator interface {
	InvalidateAggregates(ctx context.Context)
}

type redisCacheInvalidator struct {
	rdb    *redis.Client
	logger *zap.Logger
}

func NewCacheInvalidator(rdb *redis.Client, logger ...*zap.Logger) CacheInvalidator {
	l := zap.L().Named("report.cache")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.cache")
	}
	return &redisCacheInvalidator{rdb: rdb, logger: l}
}

// InvalidateAggregates is best-effort: a failed delete only means readers
// see the previous aggregate until the TTL expires.
func (i *redisCacheInvalidator) InvalidateAggregates(ctx context.Context) {
	if i.rdb == nil {
		return
	}

	var cursor uint64
	for {
		keys, next, err := i.rdb.Scan(ctx, cursor, aggregateCachePrefix+"*", 64).Result()
		if err != nil {
			i.logger.Warn("aggregate cache scan failed", zap.Error(err))
			return
		}
		if len(keys) > 0 {
			if err := i.rdb.Del(ctx, keys...).Err(); err != nil {
				i.logger.Warn("aggregate cache delete failed", zap.Error(err))
				return
			}
		}
		cursor = next
		if cursor == 0 {
			return
		}
	}
}
