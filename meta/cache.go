package meta

import (
	"context"
	"errors"
	"time"

	"github.com/go-redis/redis/v9"
	cache "github.com/patrickmn/go-cache"

	"sharding/internal/errs"
)

// Cache 缓存某一列是否自增，没有的时候返回 errs.ErrCacheMiss
type Cache interface {
	Get(ctx context.Context, key string) (bool, error)
	Set(ctx context.Context, key string, autoIncrement bool, expiration time.Duration) error
}

type LocalCache struct {
	data *cache.Cache
}

func NewLocalCache(expiration time.Duration, cleanupInterval time.Duration) *LocalCache {
	return &LocalCache{
		data: cache.New(expiration, cleanupInterval),
	}
}

func (l *LocalCache) Get(ctx context.Context, key string) (bool, error) {
	val, ok := l.data.Get(key)
	if !ok {
		return false, errs.ErrCacheMiss
	}
	return val.(bool), nil
}

func (l *LocalCache) Set(ctx context.Context, key string, autoIncrement bool, expiration time.Duration) error {
	l.data.Set(key, autoIncrement, expiration)
	return nil
}

const redisKeyPrefix = "sharding:meta:"

// RedisCache 多个实例共享元数据
type RedisCache struct {
	client redis.Cmdable
}

func NewRedisCache(client redis.Cmdable) *RedisCache {
	return &RedisCache{client: client}
}

func (r *RedisCache) Get(ctx context.Context, key string) (bool, error) {
	val, err := r.client.Get(ctx, redisKeyPrefix+key).Result()
	if errors.Is(err, redis.Nil) {
		return false, errs.ErrCacheMiss
	}
	if err != nil {
		return false, err
	}
	return val == "1", nil
}

func (r *RedisCache) Set(ctx context.Context, key string, autoIncrement bool, expiration time.Duration) error {
	val := "0"
	if autoIncrement {
		val = "1"
	}
	res, err := r.client.Set(ctx, redisKeyPrefix+key, val, expiration).Result()
	if err != nil {
		return err
	}
	if res != "OK" {
		return errs.NewErrFailedToSetCache(res)
	}
	return nil
}
