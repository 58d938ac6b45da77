package ratelimiter

import (
	"hash/fnv"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"
)

const maxKeyLength = 64

// KeyFunc extracts the caller identity from a request. An empty key skips
// the limit.
type KeyFunc func(r *http.Request) string

// RemoteIP keys by the host part of r.RemoteAddr. Put chi's RealIP
// middleware in front when running behind a proxy.
func RemoteIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// Header keys by the value of the named request header.
func Header(name string) KeyFunc {
	return func(r *http.Request) string {
		return strings.TrimSpace(r.Header.Get(name))
	}
}

// Composite joins the non-empty keys with ":". Keys longer than 64 bytes
// are replaced by their FNV-1a hash in base 36.
func Composite(keyFuncs ...KeyFunc) KeyFunc {
	return func(r *http.Request) string {
		parts := make([]string, 0, len(keyFuncs))
		for _, fn := range keyFuncs {
			if key := fn(r); key != "" {
				parts = append(parts, key)
			}
		}

		combined := strings.Join(parts, ":")
		if len(combined) <= maxKeyLength {
			return combined
		}
		h := fnv.New64a()
		h.Write([]byte(combined))
		return strconv.FormatUint(h.Sum64(), 36)
	}
}

type middlewareConfig struct {
	onLimit func(w http.ResponseWriter, r *http.Request, res *Result)
	onError func(w http.ResponseWriter, r *http.Request, err error)
	// failOpen lets requests through when the store fails
	failOpen func(r *http.Request, err error)
	now      func() time.Time
}

type MiddlewareOption func(*middlewareConfig)

// WithLimitHandler replaces the plain-text 429 answer. Rate limit headers
// are already set when it runs.
func WithLimitHandler(h func(w http.ResponseWriter, r *http.Request, res *Result)) MiddlewareOption {
	return func(c *middlewareConfig) { c.onLimit = h }
}

// WithErrorHandler handles store failures. The default answers 500.
func WithErrorHandler(h func(w http.ResponseWriter, r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) { c.onError = h }
}

// WithFailOpen serves requests unthrottled while the store is failing.
// report sees every store error.
func WithFailOpen(report func(r *http.Request, err error)) MiddlewareOption {
	return func(c *middlewareConfig) {
		if report == nil {
			report = func(*http.Request, error) {}
		}
		c.failOpen = report
	}
}

func WithMiddlewareClock(now func() time.Time) MiddlewareOption {
	return func(c *middlewareConfig) { c.now = now }
}

// Middleware spends one token per request and sets the X-RateLimit-*
// headers. Denied requests get Retry-After in whole seconds.
func Middleware(rl RateLimiter, keyFunc KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{
		onLimit: func(w http.ResponseWriter, _ *http.Request, _ *Result) {
			http.Error(w, http.StatusText(http.StatusTooManyRequests), http.StatusTooManyRequests)
		},
		onError: func(w http.ResponseWriter, _ *http.Request, _ error) {
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		},
		now: time.Now,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := keyFunc(r)
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			res, err := rl.Allow(r.Context(), key)
			if err != nil {
				if cfg.failOpen != nil {
					cfg.failOpen(r, err)
					next.ServeHTTP(w, r)
					return
				}
				cfg.onError(w, r, err)
				return
			}

			h := w.Header()
			h.Set("X-RateLimit-Limit", strconv.Itoa(res.Limit))
			h.Set("X-RateLimit-Remaining", strconv.Itoa(max(0, res.Remaining)))
			h.Set("X-RateLimit-Reset", strconv.FormatInt(res.ResetAt.Unix(), 10))

			if !res.Allowed() {
				retry := res.RetryAfter(cfg.now())
				h.Set("Retry-After", strconv.Itoa(int((retry+time.Second-1)/time.Second)))
				cfg.onLimit(w, r, res)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
