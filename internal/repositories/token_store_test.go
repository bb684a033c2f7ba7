package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryTokenStore(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	store := NewMemoryTokenStore()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Save(ctx, "a", 1, time.Minute))
	require.NoError(t, store.Save(ctx, "b", 2, time.Hour))

	ok, err := store.Exists(ctx, "a")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, store.Revoke(ctx, "a"))
	ok, _ = store.Exists(ctx, "a")
	assert.False(t, ok, "revoked")

	now = now.Add(2 * time.Hour)
	ok, _ = store.Exists(ctx, "b")
	assert.False(t, ok, "expired")

	ok, _ = store.Exists(ctx, "never-issued")
	assert.False(t, ok)
}
