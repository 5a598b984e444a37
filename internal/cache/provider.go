// Package cache 提供统一的缓存接口，内置内存与Redis两种实现。
// 核心快照计算不经过缓存，这里只服务股票列表等低频数据。
package cache

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// Provider 缓存接口
type Provider interface {
	Get(key string, dest any) error
	Set(key string, value any, expiration time.Duration) error
}

type memoryItem struct {
	data      []byte
	expiresAt time.Time
}

// MemoryProvider 进程内缓存，Redis不可用时的兜底实现
type MemoryProvider struct {
	mu    sync.RWMutex
	items map[string]memoryItem
}

// NewMemoryProvider 构造内存缓存
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{items: map[string]memoryItem{}}
}

func (p *MemoryProvider) Get(key string, dest any) error {
	p.mu.RLock()
	item, ok := p.items[key]
	p.mu.RUnlock()
	if !ok {
		return fmt.Errorf("cache miss")
	}
	if !item.expiresAt.IsZero() && time.Now().After(item.expiresAt) {
		p.mu.Lock()
		delete(p.items, key)
		p.mu.Unlock()
		return fmt.Errorf("cache expired")
	}
	return json.Unmarshal(item.data, dest)
}

func (p *MemoryProvider) Set(key string, value any, expiration time.Duration) error {
	b, err := json.Marshal(value)
	if err != nil {
		return err
	}
	var expiresAt time.Time
	if expiration > 0 {
		expiresAt = time.Now().Add(expiration)
	}
	p.mu.Lock()
	p.items[key] = memoryItem{data: b, expiresAt: expiresAt}
	p.mu.Unlock()
	return nil
}
