package cache

import (
	"context"
	"fmt"
	"log"

	"github.com/redis/go-redis/v9"
)

// Invalidator drops cached public page payloads after a successful write so
// list, detail and featured views re-render from the database. Best-effort:
// a nil client or a Redis failure never fails the write.
type Invalidator struct {
	rdb *redis.Client
}

func NewInvalidator(rdb *redis.Client) *Invalidator {
	return &Invalidator{rdb: rdb}
}

func (i *Invalidator) Invalidate(ctx context.Context, keys ...string) {
	if i == nil || i.rdb == nil || len(keys) == 0 {
		return
	}

	cacheKeys := make([]string, len(keys))
	for n, k := range keys {
		cacheKeys[n] = fmt.Sprintf("page:%s", k)
	}

	if err := i.rdb.Del(ctx, cacheKeys...).Err(); err != nil {
		log.Printf("[Cache]: failed to invalidate %v: %v", keys, err)
	}
}
