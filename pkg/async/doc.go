// Package async provides generic helpers for running work in the background
// and collecting the result later.
//
// Async starts a function in its own goroutine and returns a *Future. The
// caller waits with Await, AwaitContext or AwaitWithTimeout, or polls with
// IsComplete.
//
// Keyed adds supersession: tasks are grouped by a key (for example the form
// field that triggered an address lookup) and starting a new task for a key
// cancels the previous one. The stale task's Future resolves with
// ErrSuperseded, so a slow response can never overwrite the result of a
// newer request.
//
//	lookups := async.NewKeyed[string, Address]()
//	f := lookups.Run(ctx, "cep", func(ctx context.Context) (Address, error) {
//	    return client.Lookup(ctx, "01310100")
//	})
//	addr, err := f.Await()
//	if errors.Is(err, async.ErrSuperseded) {
//	    // a newer lookup for the same field is in flight
//	}
package async
