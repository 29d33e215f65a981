package registry_test

import (
	"context"
	"sync"
	"testing"

	"github.com/jrsteele09/go-catalog-server/registry"
	"github.com/stretchr/testify/require"
)

func TestInMemoryRegistryAddHasRemove(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewInMemoryRegistry()

	ok, err := reg.Has(ctx, "t1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, reg.Add(ctx, "t1"))

	ok, err = reg.Has(ctx, "t1")
	require.NoError(t, err)
	require.True(t, ok)

	require.NoError(t, reg.Remove(ctx, "t1"))

	ok, err = reg.Has(ctx, "t1")
	require.NoError(t, err)
	require.False(t, ok)

	// Removing an absent token is not an error.
	require.NoError(t, reg.Remove(ctx, "t1"))
}

func TestInMemoryRegistryConcurrentAccess(t *testing.T) {
	ctx := context.Background()
	reg := registry.NewInMemoryRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			tok := string(rune('a' + n%26))
			_ = reg.Add(ctx, tok)
			_, _ = reg.Has(ctx, tok)
			_ = reg.Remove(ctx, tok)
		}(i)
	}
	wg.Wait()
}
