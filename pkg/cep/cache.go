package cep

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/casadosaber/signup/pkg/cache"
	"github.com/casadosaber/signup/pkg/logger"
)

// Cache stores resolved addresses keyed by their eight digits.
type Cache interface {
	Get(ctx context.Context, cep string) (Address, bool, error)
	Set(ctx context.Context, cep string, addr Address) error
}

// MemoryCache is an in-process LRU cache with expiry.
type MemoryCache struct {
	lru *cache.LRUCache[string, Address]
}

func NewMemoryCache(size int, ttl time.Duration, opts ...cache.Option) *MemoryCache {
	opts = append([]cache.Option{cache.WithTTL(ttl)}, opts...)
	return &MemoryCache{lru: cache.NewLRUCache[string, Address](size, opts...)}
}

func (c *MemoryCache) Get(_ context.Context, cep string) (Address, bool, error) {
	addr, ok := c.lru.Get(cep)
	return addr, ok, nil
}

func (c *MemoryCache) Set(_ context.Context, cep string, addr Address) error {
	c.lru.Put(cep, addr)
	return nil
}

// ByteStore is a key-value store with expiry, such as redis.Store.
// Get returns nil for missing keys.
type ByteStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, val []byte, exp time.Duration) error
}

// StoreCache keeps addresses as JSON in a shared ByteStore so every
// instance of the service benefits from a lookup.
type StoreCache struct {
	store ByteStore
	ttl   time.Duration
}

func NewStoreCache(store ByteStore, ttl time.Duration) *StoreCache {
	return &StoreCache{store: store, ttl: ttl}
}

func (c *StoreCache) Get(ctx context.Context, cep string) (Address, bool, error) {
	raw, err := c.store.Get(ctx, storeKey(cep))
	if err != nil || raw == nil {
		return Address{}, false, err
	}
	var addr Address
	if err := json.Unmarshal(raw, &addr); err != nil {
		return Address{}, false, err
	}
	return addr, true, nil
}

func (c *StoreCache) Set(ctx context.Context, cep string, addr Address) error {
	raw, err := json.Marshal(addr)
	if err != nil {
		return err
	}
	return c.store.Set(ctx, storeKey(cep), raw, c.ttl)
}

func storeKey(cep string) string {
	return "cep:" + cep
}

// CachedProvider serves lookups from a cache and fills it from next.
// Only found addresses are cached. Cache failures are logged and treated
// as misses.
type CachedProvider struct {
	next   Provider
	cache  Cache
	logger *slog.Logger
}

func NewCachedProvider(next Provider, c Cache, log *slog.Logger) *CachedProvider {
	if log == nil {
		log = slog.Default()
	}
	return &CachedProvider{next: next, cache: c, logger: log}
}

func (p *CachedProvider) Lookup(ctx context.Context, cep string) (Address, error) {
	digits, err := Normalize(cep)
	if err != nil {
		return Address{}, err
	}

	addr, ok, err := p.cache.Get(ctx, digits)
	if err != nil {
		p.logger.WarnContext(ctx, "address cache read failed", logger.CEP(digits), logger.Error(err))
	}
	if ok {
		return addr, nil
	}

	addr, err = p.next.Lookup(ctx, digits)
	if err != nil {
		return Address{}, err
	}

	if err := p.cache.Set(ctx, digits, addr); err != nil {
		p.logger.WarnContext(ctx, "address cache write failed", logger.CEP(digits), logger.Error(err))
	}
	return addr, nil
}
