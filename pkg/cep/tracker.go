package cep

import (
	"context"
	"time"

	"github.com/casadosaber/signup/pkg/async"
)

// Tracker runs lookups keyed by the input they belong to (for example a
// form session plus field name). A new lookup for a key cancels the one
// still in flight for it, so a slow answer never overwrites newer input.
type Tracker struct {
	provider Provider
	tasks    *async.Keyed[string, Address]
	timeout  time.Duration
}

// NewTracker wraps p. A positive timeout bounds each lookup.
func NewTracker(p Provider, timeout time.Duration) *Tracker {
	return &Tracker{
		provider: p,
		tasks:    async.NewKeyed[string, Address](),
		timeout:  timeout,
	}
}

// Start begins a lookup for key and returns its future. A lookup already
// running for key resolves with ErrSuperseded. An empty key runs on its own:
// it neither supersedes nor can be superseded.
func (t *Tracker) Start(ctx context.Context, key, cep string) *async.Future[Address] {
	if key == "" {
		return async.Async(ctx, cep, t.lookup)
	}
	return t.tasks.Run(ctx, key, func(ctx context.Context) (Address, error) {
		return t.lookup(ctx, cep)
	})
}

func (t *Tracker) lookup(ctx context.Context, cep string) (Address, error) {
	if t.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.timeout)
		defer cancel()
	}
	return t.provider.Lookup(ctx, cep)
}

// Lookup starts a lookup for key and waits for it or for ctx to end.
func (t *Tracker) Lookup(ctx context.Context, key, cep string) (Address, error) {
	return t.Start(ctx, key, cep).AwaitContext(ctx)
}

// Cancel drops the lookup running for key, if any.
func (t *Tracker) Cancel(key string) {
	t.tasks.Cancel(key)
}

// Pending returns the number of keys with a lookup in flight.
func (t *Tracker) Pending() int {
	return t.tasks.Len()
}
