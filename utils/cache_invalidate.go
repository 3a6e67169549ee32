package utils

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// CacheInvalidator purges cached event responses after a mutation so reads
// never serve a stale roster or response set.
type CacheInvalidator struct{ rdb *redis.Client }

func NewCacheInvalidator(rdb *redis.Client) *CacheInvalidator { return &CacheInvalidator{rdb} }

func (ci *CacheInvalidator) PurgeEventsList(ctx context.Context) {
	ci.purgePrefix(ctx, "cache:events:list:*")
}

// PurgeEventItem drops every cached single-event response. Item keys hash
// the id, so the purge sweeps the whole namespace rather than resolving one
// key.
func (ci *CacheInvalidator) PurgeEventItem(ctx context.Context, id string) {
	ci.purgePrefix(ctx, "cache:events:item:*")
}

func (ci *CacheInvalidator) purgePrefix(ctx context.Context, pattern string) {
	iter := ci.rdb.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		_ = ci.rdb.Del(ctx, iter.Val()).Err()
	}
}
