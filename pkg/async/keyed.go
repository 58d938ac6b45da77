package async

import (
	"context"
	"errors"
	"sync"
)

// Keyed runs at most one live task per key. Starting a task for a key
// cancels the task already running for it; the cancelled task's Future
// resolves with ErrSuperseded, whatever its function returned.
type Keyed[K comparable, U any] struct {
	mu      sync.Mutex
	seq     uint64
	running map[K]keyedRun
}

type keyedRun struct {
	id     uint64
	cancel context.CancelCauseFunc
}

func NewKeyed[K comparable, U any]() *Keyed[K, U] {
	return &Keyed[K, U]{running: make(map[K]keyedRun)}
}

// Run starts fn for key, superseding any task still running for the same key.
func (k *Keyed[K, U]) Run(ctx context.Context, key K, fn func(context.Context) (U, error)) *Future[U] {
	runCtx, cancel := context.WithCancelCause(ctx)

	k.mu.Lock()
	if prev, ok := k.running[key]; ok {
		prev.cancel(ErrSuperseded)
	}
	k.seq++
	id := k.seq
	k.running[key] = keyedRun{id: id, cancel: cancel}
	k.mu.Unlock()

	f := &Future[U]{done: make(chan struct{})}

	go func() {
		defer close(f.done)
		defer k.release(key, id)
		defer cancel(nil)

		if runCtx.Err() == nil {
			f.result, f.err = fn(runCtx)
		} else {
			f.err = context.Cause(runCtx)
		}

		if errors.Is(context.Cause(runCtx), ErrSuperseded) {
			var zero U
			f.result, f.err = zero, ErrSuperseded
		}
	}()

	return f
}

// Cancel cancels the task running for key, if any. Its Future resolves with
// ErrSuperseded.
func (k *Keyed[K, U]) Cancel(key K) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if r, ok := k.running[key]; ok {
		r.cancel(ErrSuperseded)
		delete(k.running, key)
	}
}

// Len returns the number of keys with a running task.
func (k *Keyed[K, U]) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.running)
}

func (k *Keyed[K, U]) release(key K, id uint64) {
	k.mu.Lock()
	defer k.mu.Unlock()

	if r, ok := k.running[key]; ok && r.id == id {
		delete(k.running, key)
	}
}
