// Package cep resolves Brazilian postal codes (CEP) to addresses.
//
// Client talks to a ViaCEP compatible service and guards it with a circuit
// breaker. CachedProvider puts a Cache in front of any Provider: MemoryCache
// for a single instance, StoreCache over Redis for several. Tracker makes
// lookups cancellable per key so that only the latest input for a field is
// ever applied.
//
//	client := cep.NewClientFromConfig(cfg.CEP, cep.WithLogger(log))
//	provider := cep.NewCachedProvider(client, cep.NewMemoryCache(cfg.CEP.CacheSize, cfg.CEP.CacheTTL), log)
//	tracker := cep.NewTracker(provider, cfg.CEP.Timeout)
//
//	addr, err := tracker.Lookup(ctx, sessionID+":cep", "01310-100")
//	switch {
//	case errors.Is(err, cep.ErrNotFound):
//	    // show "CEP não encontrado"
//	case errors.Is(err, cep.ErrUnavailable), errors.Is(err, cep.ErrSuperseded):
//	    // leave the form as it is
//	}
package cep
