package cache_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"gamedata-manager/core/cache"
)

func TestRegistryCaseInsensitiveIdentity(t *testing.T) {
	reg := cache.NewRegistry(zap.NewNop())

	a, err := cache.For[uint32, string](reg, "Spell.db2", nil)
	require.NoError(t, err)
	b, err := cache.For[uint32, string](reg, "SPELL.DB2", nil)
	require.NoError(t, err)

	assert.Same(t, a, b, "names differing only by case resolve to one instance")
	assert.Equal(t, []string{"spell.db2"}, reg.CachedFiles())
}

func TestRegistryIgnoresConfigOnExisting(t *testing.T) {
	reg := cache.NewRegistry(nil)

	first, err := cache.For[string, int](reg, "item.db2", &cache.Config{MaxMemoryMB: 5, MaxEntries: 10, AutoEvict: true})
	require.NoError(t, err)

	second, err := cache.For[string, int](reg, "Item.DB2", &cache.Config{MaxMemoryMB: 99, MaxEntries: 99, AutoEvict: false})
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, float64(5), second.Config().MaxMemoryMB, "config on a later call is ignored")
}

func TestRegistryTypeMismatch(t *testing.T) {
	reg := cache.NewRegistry(nil)

	_, err := cache.For[string, int](reg, "spell.db2", nil)
	require.NoError(t, err)

	_, err = cache.For[string, string](reg, "spell.db2", nil)
	assert.Error(t, err)
}

func TestRegistryAggregation(t *testing.T) {
	reg := cache.NewRegistry(nil)

	spells, err := cache.For[uint32, []byte](reg, "spell.db2", nil)
	require.NoError(t, err)
	items, err := cache.For[uint32, []byte](reg, "item.db2", nil)
	require.NoError(t, err)

	spells.SetSized(1, nil, 1024*1024)
	items.SetSized(2, nil, 512*1024)
	spells.Get(1)
	spells.Get(99)

	assert.InDelta(t, 1.5, reg.TotalMemoryUsageMB(), 0.001)

	stats := reg.AllStats()
	require.Len(t, stats, 2)
	assert.Equal(t, uint64(1), stats["spell.db2"].Hits)
	assert.Equal(t, uint64(1), stats["spell.db2"].Misses)
	assert.Equal(t, 1, stats["item.db2"].EntryCount)

	assert.Equal(t, []string{"item.db2", "spell.db2"}, reg.CachedFiles())
}

func TestRegistryClear(t *testing.T) {
	reg := cache.NewRegistry(nil)

	c, err := cache.For[string, int](reg, "spell.db2", nil)
	require.NoError(t, err)
	c.SetSized("k", 1, 100)

	assert.True(t, reg.ClearCache("SPELL.db2"))
	assert.False(t, reg.ClearCache("unknown.db2"))
	assert.Equal(t, 0, c.Stats().EntryCount)

	c.SetSized("k", 1, 100)
	reg.ClearAll()
	assert.Equal(t, 0, c.Stats().EntryCount)
	assert.Equal(t, float64(0), reg.TotalMemoryUsageMB())
}

func TestRegistryResetAll(t *testing.T) {
	reg := cache.NewRegistry(nil)

	c, err := cache.For[string, int](reg, "spell.db2", nil)
	require.NoError(t, err)
	c.SetSized("k", 1, 100)
	c.Get("k")
	c.Get("missing")

	reg.ResetAll()

	stats := c.Stats()
	assert.Equal(t, uint64(0), stats.Hits)
	assert.Equal(t, uint64(0), stats.Misses)
	assert.Equal(t, 1, stats.EntryCount, "contents survive a counter reset")
	assert.Equal(t, int64(100), stats.TotalSize)
}
