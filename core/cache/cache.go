package cache

import (
	"sort"
	"sync"
	"time"

	"gamedata-manager/core/utils"
)

// entry is one cached value plus its bookkeeping.
type entry[V any] struct {
	value       V
	size        int64
	insertedAt  time.Time
	lastAccess  time.Time
	accessCount uint64
}

// EntryInfo describes a cached entry for introspection queries.
type EntryInfo[K comparable] struct {
	Key         K
	Size        int64
	AccessCount uint64
	LastAccess  time.Time
}

// Cache is a memory-bounded, statistics-tracked key/value store with
// LRU+TTL eviction. All methods are safe for concurrent use; a single
// mutex guards the entry map and the counters, so a Set that completes
// before a Get on the same key is always visible to it.
type Cache[K comparable, V any] struct {
	mu      sync.Mutex
	cfg     Config
	entries map[K]*entry[V]
	sizeOf  func(V) int

	totalSize int64
	hits      uint64
	misses    uint64
	evictions uint64
}

// New creates a cache with the given configuration and the default size
// estimator from core/utils.
func New[K comparable, V any](cfg Config) *Cache[K, V] {
	return NewWithEstimator[K](cfg, func(v V) int { return utils.EstimateSize(v) })
}

// NewWithEstimator creates a cache with a caller-supplied size
// estimator, for value types whose default estimate would be poor.
func NewWithEstimator[K comparable, V any](cfg Config, sizeOf func(V) int) *Cache[K, V] {
	return &Cache[K, V]{
		cfg:     cfg,
		entries: make(map[K]*entry[V]),
		sizeOf:  sizeOf,
	}
}

// Set inserts or overwrites a value, estimating its size.
func (c *Cache[K, V]) Set(key K, value V) {
	c.SetSized(key, value, c.sizeOf(value))
}

// SetSized inserts or overwrites a value with an explicit byte size.
// Overwriting replaces the old entry's size contribution in the same
// step, so the total is never double counted. If the cache ends up over
// budget and AutoEvict is on, eviction runs before SetSized returns.
func (c *Cache[K, V]) SetSized(key K, value V, size int) {
	if size < 0 {
		size = 0
	}
	now := time.Now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.entries[key]; ok {
		c.totalSize -= old.size
	}
	c.entries[key] = &entry[V]{
		value:      value,
		size:       int64(size),
		insertedAt: now,
		lastAccess: now,
	}
	c.totalSize += int64(size)

	if c.cfg.AutoEvict {
		c.evictOverBudgetLocked()
	}
}

// Get returns the value for key. A TTL-expired entry is evicted on the
// spot and reported as a miss. A hit bumps the entry's access count and
// refreshes its last-access time.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if c.expiredLocked(e) {
		c.removeLocked(key, e)
		c.evictions++
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	e.accessCount++
	e.lastAccess = time.Now()
	return e.value, true
}

// Has reports whether key holds a live entry. It does not count as an
// access: statistics, access counts and LRU order are untouched, and an
// expired entry is reported absent but left for Get or EvictExpired to
// remove.
func (c *Cache[K, V]) Has(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	return ok && !c.expiredLocked(e)
}

// Delete removes key and reports whether it was present.
func (c *Cache[K, V]) Delete(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return false
	}
	c.removeLocked(key, e)
	return true
}

// Clear drops every entry. Counters are preserved; use ResetStats to
// zero those.
func (c *Cache[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]*entry[V])
	c.totalSize = 0
}

// Keys returns the keys of all live entries in unspecified order.
func (c *Cache[K, V]) Keys() []K {
	c.mu.Lock()
	defer c.mu.Unlock()
	keys := make([]K, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	return keys
}

// EvictExpired sweeps out every TTL-expired entry and returns how many
// were removed. With TTL disabled it is a no-op.
func (c *Cache[K, V]) EvictExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cfg.TTL <= 0 {
		return 0
	}
	removed := 0
	for k, e := range c.entries {
		if c.expiredLocked(e) {
			c.removeLocked(k, e)
			c.evictions++
			removed++
		}
	}
	return removed
}

// Stats returns a consistent snapshot of counters and contents.
func (c *Cache[K, V]) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Stats{
		Hits:       c.hits,
		Misses:     c.misses,
		Evictions:  c.evictions,
		HitRate:    hitRate(c.hits, c.misses),
		EntryCount: len(c.entries),
		TotalSize:  c.totalSize,
	}
}

// ResetStats zeroes the hit, miss and eviction counters. Entry count
// and total size describe current contents and are left alone.
func (c *Cache[K, V]) ResetStats() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.hits, c.misses, c.evictions = 0, 0, 0
}

// HotEntries returns the top n entries by access count, most accessed
// first.
func (c *Cache[K, V]) HotEntries(n int) []EntryInfo[K] {
	infos := c.snapshot()
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].AccessCount > infos[j].AccessCount
	})
	return truncate(infos, n)
}

// ColdEntries returns the bottom n entries by last-access time, least
// recently used first.
func (c *Cache[K, V]) ColdEntries(n int) []EntryInfo[K] {
	infos := c.snapshot()
	sort.Slice(infos, func(i, j int) bool {
		return infos[i].LastAccess.Before(infos[j].LastAccess)
	})
	return truncate(infos, n)
}

// Config returns the current configuration.
func (c *Cache[K, V]) Config() Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cfg
}

// UpdateConfig merges patch into the configuration. If the new budget
// is below current usage and AutoEvict is (now) enabled, eviction runs
// before UpdateConfig returns.
func (c *Cache[K, V]) UpdateConfig(patch Patch) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cfg = patch.apply(c.cfg)
	if c.cfg.AutoEvict {
		c.evictOverBudgetLocked()
	}
}

// MemoryUsageMB returns the tracked size of all entries in megabytes.
func (c *Cache[K, V]) MemoryUsageMB() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return float64(c.totalSize) / (1024 * 1024)
}

// MemoryUsagePercent returns tracked size relative to the byte budget.
func (c *Cache[K, V]) MemoryUsagePercent() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	budget := c.cfg.maxBytes()
	if budget <= 0 {
		return 0
	}
	return float64(c.totalSize) / float64(budget) * 100
}

// SizeBytes returns the tracked size of all entries.
func (c *Cache[K, V]) SizeBytes() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalSize
}

func (c *Cache[K, V]) expiredLocked(e *entry[V]) bool {
	return c.cfg.TTL > 0 && time.Since(e.insertedAt) > c.cfg.TTL
}

func (c *Cache[K, V]) removeLocked(key K, e *entry[V]) {
	delete(c.entries, key)
	c.totalSize -= e.size
}

// evictOverBudgetLocked removes entries ordered by last-access time
// ascending, access count ascending on equal timestamps, until both
// budgets are satisfied.
func (c *Cache[K, V]) evictOverBudgetLocked() {
	if !c.overBudgetLocked() {
		return
	}
	type victim struct {
		key K
		e   *entry[V]
	}
	victims := make([]victim, 0, len(c.entries))
	for k, e := range c.entries {
		victims = append(victims, victim{k, e})
	}
	sort.Slice(victims, func(i, j int) bool {
		a, b := victims[i].e, victims[j].e
		if !a.lastAccess.Equal(b.lastAccess) {
			return a.lastAccess.Before(b.lastAccess)
		}
		return a.accessCount < b.accessCount
	})
	for _, v := range victims {
		if !c.overBudgetLocked() {
			break
		}
		c.removeLocked(v.key, v.e)
		c.evictions++
	}
}

func (c *Cache[K, V]) overBudgetLocked() bool {
	if len(c.entries) == 0 {
		return false
	}
	if c.cfg.MaxEntries > 0 && len(c.entries) > c.cfg.MaxEntries {
		return true
	}
	return c.totalSize > c.cfg.maxBytes()
}

func (c *Cache[K, V]) snapshot() []EntryInfo[K] {
	c.mu.Lock()
	defer c.mu.Unlock()
	infos := make([]EntryInfo[K], 0, len(c.entries))
	for k, e := range c.entries {
		infos = append(infos, EntryInfo[K]{
			Key:         k,
			Size:        e.size,
			AccessCount: e.accessCount,
			LastAccess:  e.lastAccess,
		})
	}
	return infos
}

func truncate[T any](s []T, n int) []T {
	if n < 0 {
		n = 0
	}
	if len(s) > n {
		s = s[:n]
	}
	return s
}
