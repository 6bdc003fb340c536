package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotStore_RoundTrip(t *testing.T) {
	store := New()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	require.True(t, store.Set("a", "payload"))
	payload, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "payload", payload)

	require.True(t, store.Remove("a"))
	_, ok = store.Get("a")
	assert.False(t, ok)
}

func TestSlotStore_FailWrites(t *testing.T) {
	store := New()
	store.Set("a", "kept")
	store.FailWrites = true

	assert.False(t, store.Set("a", "changed"))
	assert.False(t, store.Remove("a"))

	payload, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, "kept", payload)
}

func TestSlotStore_CloseIsNoOp(t *testing.T) {
	store := New()
	store.Set("a", "payload")

	require.NoError(t, store.Close())

	_, ok := store.Get("a")
	assert.True(t, ok)
}
