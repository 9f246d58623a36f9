package repository

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

type redisCmds interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	SetNX(ctx context.Context, key string, value any, expiration time.Duration) *redis.BoolCmd
	Close() error
}

// cache remembers directory answers for ttl.
type cache struct {
	rdb redisCmds
	ttl time.Duration
}

func newCache(addr, password string, db int, ttl time.Duration) *cache {
	return &cache{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

func existsKey(username string) string {
	return "users:exists:" + username
}

// Lookup reports the cached answer and whether there was one.
func (c *cache) Lookup(ctx context.Context, username string) (exists, hit bool, err error) {
	v, err := c.rdb.Get(ctx, existsKey(username)).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, err
	}
	return v == "1", true, nil
}

func (c *cache) Store(ctx context.Context, username string, exists bool) error {
	v := "0"
	if exists {
		v = "1"
	}
	return c.rdb.SetNX(ctx, existsKey(username), v, c.ttl).Err()
}

func (c *cache) Close() error {
	return c.rdb.Close()
}
