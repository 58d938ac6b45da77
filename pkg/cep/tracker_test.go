package cep_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/casadosaber/signup/pkg/cep"
)

var centro = cep.Address{CEP: "20040-020", City: "Rio de Janeiro", State: "RJ"}

// slowProvider blocks on "01310100" until its context ends and answers
// every other code immediately.
func slowProvider(started chan<- struct{}) cep.Provider {
	return cep.ProviderFunc(func(ctx context.Context, c string) (cep.Address, error) {
		if c != "01310100" {
			return centro, nil
		}
		started <- struct{}{}
		<-ctx.Done()
		return cep.Address{}, errors.Join(cep.ErrUnavailable, ctx.Err())
	})
}

func TestTracker_NewLookupSupersedesOld(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	tr := cep.NewTracker(slowProvider(started), 0)
	ctx := context.Background()

	first := tr.Start(ctx, "form-1:cep", "01310100")
	<-started

	addr, err := tr.Lookup(ctx, "form-1:cep", "20040020")
	require.NoError(t, err)
	assert.Equal(t, centro, addr)

	_, err = first.Await()
	assert.ErrorIs(t, err, cep.ErrSuperseded)
}

func TestTracker_KeysAreIndependent(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	tr := cep.NewTracker(slowProvider(started), 0)
	ctx := context.Background()

	first := tr.Start(ctx, "form-1:cep", "01310100")
	<-started

	_, err := tr.Lookup(ctx, "form-2:cep", "20040020")
	require.NoError(t, err)
	assert.False(t, first.IsComplete())
	assert.Equal(t, 1, tr.Pending())

	tr.Cancel("form-1:cep")
	_, err = first.Await()
	assert.ErrorIs(t, err, cep.ErrSuperseded)
}

func TestTracker_EmptyKeyIsUntracked(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	tr := cep.NewTracker(slowProvider(started), 0)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	first := tr.Start(ctx, "", "01310100")
	<-started

	addr, err := tr.Lookup(ctx, "", "20040020")
	require.NoError(t, err)
	assert.Equal(t, centro, addr)
	assert.False(t, first.IsComplete())
	assert.Equal(t, 0, tr.Pending())

	cancel()
	_, err = first.Await()
	assert.ErrorIs(t, err, cep.ErrUnavailable)
	assert.NotErrorIs(t, err, cep.ErrSuperseded)
}

func TestTracker_Timeout(t *testing.T) {
	t.Parallel()

	started := make(chan struct{}, 1)
	tr := cep.NewTracker(slowProvider(started), 20*time.Millisecond)

	_, err := tr.Lookup(context.Background(), "form-1:cep", "01310100")
	require.ErrorIs(t, err, cep.ErrUnavailable)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.NotErrorIs(t, err, cep.ErrSuperseded)
}
