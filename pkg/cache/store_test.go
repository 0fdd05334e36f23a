package cache

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_LoadMissingFile(t *testing.T) {
	store := NewStore[[]string](filepath.Join(t.TempDir(), "absent.json"))

	assert.NotPanics(t, store.Load)
	assert.False(t, store.IsFresh(time.Hour))

	_, ok := store.Get()
	assert.False(t, ok)
}

func TestStore_LoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	store := NewStore[[]string](path)
	assert.NotPanics(t, store.Load)
	assert.False(t, store.IsFresh(time.Hour))
}

func TestStore_PutAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "payload.json")

	store := NewStore[[]string](path)
	store.Put([]string{"a", "b"})

	// A second store over the same file sees the persisted payload.
	reloaded := NewStore[[]string](path)
	reloaded.Load()

	payload, ok := reloaded.Get()
	require.True(t, ok)
	assert.Equal(t, []string{"a", "b"}, payload)
	assert.True(t, reloaded.IsFresh(time.Hour))
}

func TestStore_PersistedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "payload.json")

	store := NewStore[map[string]int](path)
	store.Put(map[string]int{"n": 1})

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var raw map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Contains(t, raw, "payload")
	assert.Contains(t, raw, "epoch_timestamp")
}

func TestStore_IsFreshBoundary(t *testing.T) {
	now := time.Date(2026, 8, 25, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		age   time.Duration
		ttl   time.Duration
		fresh bool
	}{
		{"age below ttl", 59 * time.Second, time.Minute, true},
		{"age equals ttl is stale", time.Minute, time.Minute, false},
		{"age above ttl", 2 * time.Minute, time.Minute, false},
		{"zero ttl disables caching", 0, 0, false},
		{"negative ttl disables caching", 0, -time.Second, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store := NewStore[int](filepath.Join(t.TempDir(), "v.json"))
			store.SetClock(func() time.Time { return now })
			store.Put(42)
			store.SetClock(func() time.Time { return now.Add(tt.age) })

			assert.Equal(t, tt.fresh, store.IsFresh(tt.ttl))
		})
	}
}

func TestStore_IsFreshWithoutValue(t *testing.T) {
	store := NewStore[int](filepath.Join(t.TempDir(), "v.json"))
	assert.False(t, store.IsFresh(time.Hour))
}

func TestStore_PutEmptyPayloadIsValid(t *testing.T) {
	store := NewStore[[]string](filepath.Join(t.TempDir(), "v.json"))
	store.Put([]string{})

	payload, ok := store.Get()
	require.True(t, ok)
	assert.Empty(t, payload)
	assert.True(t, store.IsFresh(time.Hour))
}

func TestStore_SaveFailureKeepsMemoryState(t *testing.T) {
	dir := t.TempDir()
	// A directory at the file path makes the write fail.
	path := filepath.Join(dir, "blocked.json")
	require.NoError(t, os.Mkdir(path, 0o755))

	store := NewStore[int](path)
	assert.NotPanics(t, func() { store.Put(7) })

	payload, ok := store.Get()
	require.True(t, ok)
	assert.Equal(t, 7, payload)
}
