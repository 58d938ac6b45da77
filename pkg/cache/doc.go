// Package cache provides a generic, thread-safe LRU cache with optional
// per-entry expiry.
//
// The cache evicts the least recently used entry once it holds more than its
// capacity. With WithTTL, entries also expire a fixed time after they were
// last written; expired entries are dropped when they are next read.
//
//	addresses := cache.NewLRUCache[string, cep.Address](1024, cache.WithTTL(24*time.Hour))
//	addresses.Put("01310100", addr)
//	addr, ok := addresses.Get("01310100")
//
// SetEvictCallback registers a function called for every entry that leaves
// the cache through eviction, expiry, Remove or Clear.
package cache
