package cep

import "time"

// Config holds address lookup settings.
type Config struct {
	BaseURL         string        `env:"CEP_API_URL" envDefault:"https://viacep.com.br/ws"`
	Timeout         time.Duration `env:"CEP_TIMEOUT" envDefault:"5s"`
	CacheSize       int           `env:"CEP_CACHE_SIZE" envDefault:"1024"`
	CacheTTL        time.Duration `env:"CEP_CACHE_TTL" envDefault:"24h"`
	BreakerFailures int           `env:"CEP_BREAKER_FAILURES" envDefault:"5"`
	BreakerCooldown time.Duration `env:"CEP_BREAKER_COOLDOWN" envDefault:"30s"`
}
