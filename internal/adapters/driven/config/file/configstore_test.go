package file

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestConfigStore(t *testing.T) *ConfigStore {
	t.Helper()
	store, err := NewConfigStore(t.TempDir())
	require.NoError(t, err)
	return store
}

func TestNewConfigStore_StartsEmpty(t *testing.T) {
	store := newTestConfigStore(t)

	_, ok := store.Get("anything")
	assert.False(t, ok)
}

func TestConfigStore_SetPersistsImmediately(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("insight.model", "gemini-2.0-pro"))

	data, err := os.ReadFile(store.Path())
	require.NoError(t, err)
	assert.Contains(t, string(data), "gemini-2.0-pro")
}

func TestConfigStore_TypedGetters(t *testing.T) {
	store := newTestConfigStore(t)

	require.NoError(t, store.Set("insight.model", "gemini-2.0-flash"))
	require.NoError(t, store.Set("journal.debounce_ms", int64(500)))
	require.NoError(t, store.Set("diagram.ring_ratio", 0.4))
	require.NoError(t, store.Set("insight.enabled", true))

	assert.Equal(t, "gemini-2.0-flash", store.GetString("insight.model"))
	assert.Equal(t, 500, store.GetInt("journal.debounce_ms"))
	assert.Equal(t, 0.4, store.GetFloat("diagram.ring_ratio"))
	assert.True(t, store.GetBool("insight.enabled"))
}

func TestConfigStore_TypedGetters_MissingOrWrongType(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("insight.model", "text"))

	assert.Equal(t, "", store.GetString("missing"))
	assert.Equal(t, 0, store.GetInt("insight.model"))
	assert.Equal(t, 0.0, store.GetFloat("insight.model"))
	assert.False(t, store.GetBool("insight.model"))
}

func TestConfigStore_GetFloat_AcceptsIntegers(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("journal.debounce_ms", int64(800)))

	assert.Equal(t, 800.0, store.GetFloat("journal.debounce_ms"))
}

func TestConfigStore_LoadFlattensNestedTables(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(path, []byte("[insight]\nmodel = \"gemini-2.0-flash\"\n"), 0600))

	store, err := NewConfigStore(dir)
	require.NoError(t, err)

	assert.Equal(t, "gemini-2.0-flash", store.GetString("insight.model"))
}

func TestConfigStore_ReloadPicksUpExternalEdits(t *testing.T) {
	store := newTestConfigStore(t)
	require.NoError(t, store.Set("insight.model", "old"))

	require.NoError(t, os.WriteFile(store.Path(), []byte("[insight]\nmodel = \"new\"\n"), 0600))
	require.NoError(t, store.Load())

	assert.Equal(t, "new", store.GetString("insight.model"))
}
