// Package ratelimiter throttles callers with a token bucket.
//
// A Bucket pairs a Config with a Store. MemoryStore serves a single
// instance; RedisStore shares buckets through Redis with an atomic script.
// Middleware spends one token per request and answers 429 with Retry-After
// once the bucket is empty. Denied requests cost nothing.
//
//	store := ratelimiter.NewMemoryStore()
//	defer store.Close()
//
//	limiter, err := ratelimiter.NewBucket(store, ratelimiter.Config{
//		Capacity:       20,
//		RefillRate:     10,
//		RefillInterval: time.Minute,
//	})
//	if err != nil {
//		return err
//	}
//	r.With(ratelimiter.Middleware(limiter, ratelimiter.RemoteIP)).Post("/signup", h)
package ratelimiter
