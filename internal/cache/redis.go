package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisProvider Redis缓存实现
type RedisProvider struct {
	rdb *redis.Client
	ctx context.Context
}

// NewRedisProvider 连接Redis并返回缓存实现，连接失败返回错误，
// 由调用方决定是否退化为内存缓存。
func NewRedisProvider(addr string) (*RedisProvider, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: "", // no password
		DB:       0,
	})

	ctx := context.Background()
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("Redis连接失败: %w", err)
	}
	return &RedisProvider{rdb: rdb, ctx: ctx}, nil
}

func (p *RedisProvider) Get(key string, dest any) error {
	data, err := p.rdb.Get(p.ctx, key).Bytes()
	if err != nil {
		return err
	}
	return json.Unmarshal(data, dest)
}

func (p *RedisProvider) Set(key string, value any, expiration time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return p.rdb.Set(p.ctx, key, data, expiration).Err()
}

// Close 关闭连接
func (p *RedisProvider) Close() error {
	return p.rdb.Close()
}
