// Package redis connects to Redis and exposes a small namespaced byte store
// used for caching address lookups.
//
// Connect retries until the server answers PING or the connect timeout
// expires:
//
//	client, err := redis.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	store := redis.NewStore(client, cfg.KeyPrefix)
//
// Healthcheck returns a probe suitable for httpserver readiness checks.
// Failures are wrapped with the package sentinel errors via errors.Join.
package redis
