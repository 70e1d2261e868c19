package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakotaki/chuanghua-shop/internal/domain"
)

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add("crane", 2)
	require.NoError(t, store.Put(ctx, "sess-1", cart))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, got.Items["crane"])

	require.NoError(t, store.Delete(ctx, "sess-1"))
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.True(t, got.IsEmpty())
}

func TestMemoryStore_GetReturnsIndependentCopy(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	cart := domain.NewCart()
	cart.Add("crane", 2)
	require.NoError(t, store.Put(ctx, "sess-1", cart))

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	got.Add("crane", 10)

	again, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 2, again.Items["crane"], "stored cart must not alias the returned copy")
}

func TestMemoryStore_SessionsAreIsolated(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	a := domain.NewCart()
	a.Add("crane", 1)
	require.NoError(t, store.Put(ctx, "sess-a", a))

	b, err := store.Get(ctx, "sess-b")
	require.NoError(t, err)
	assert.True(t, b.IsEmpty())
}
