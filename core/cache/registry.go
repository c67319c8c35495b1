package cache

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"
)

// handle is the type-erased view of a cache the registry works with.
type handle interface {
	Stats() Stats
	SizeBytes() int64
	Clear()
	ResetStats()
}

// Registry is a directory of named caches, one per source file. Names
// are case-insensitive: "Spell.db2" and "SPELL.DB2" resolve to the same
// instance. The registry holds no eviction policy of its own; each
// cache enforces its own budget.
type Registry struct {
	mu     sync.RWMutex
	caches map[string]handle
	logger *zap.Logger
}

// NewRegistry creates an empty registry. Callers construct and pass
// their own registry rather than sharing a package-level one, which
// keeps tests isolated.
func NewRegistry(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		caches: make(map[string]handle),
		logger: logger,
	}
}

// For returns the cache registered under name, creating it on first
// use. A cfg passed on the creating call configures the new cache;
// later calls return the existing instance and ignore cfg. Requesting
// an existing name with different key or value types is a programming
// error and fails.
func For[K comparable, V any](r *Registry, name string, cfg *Config) (*Cache[K, V], error) {
	key := strings.ToLower(name)

	r.mu.RLock()
	h, ok := r.caches[key]
	r.mu.RUnlock()
	if ok {
		return assertCache[K, V](h, name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if h, ok := r.caches[key]; ok {
		return assertCache[K, V](h, name)
	}

	conf := DefaultConfig()
	if cfg != nil {
		conf = *cfg
	}
	c := New[K, V](conf)
	r.caches[key] = c
	r.logger.Debug("cache created",
		zap.String("name", key),
		zap.Float64("max_memory_mb", conf.MaxMemoryMB),
		zap.Int("max_entries", conf.MaxEntries),
	)
	return c, nil
}

func assertCache[K comparable, V any](h handle, name string) (*Cache[K, V], error) {
	c, ok := h.(*Cache[K, V])
	if !ok {
		return nil, fmt.Errorf("cache %q is already registered with a different entry type", name)
	}
	return c, nil
}

// ClearCache empties the named cache and reports whether it existed.
// The instance stays registered so outstanding references remain valid.
func (r *Registry) ClearCache(name string) bool {
	r.mu.RLock()
	h, ok := r.caches[strings.ToLower(name)]
	r.mu.RUnlock()
	if ok {
		h.Clear()
	}
	return ok
}

// ClearAll empties every registered cache.
func (r *Registry) ClearAll() {
	r.mu.RLock()
	handles := make([]handle, 0, len(r.caches))
	for _, h := range r.caches {
		handles = append(handles, h)
	}
	r.mu.RUnlock()
	for _, h := range handles {
		h.Clear()
	}
	r.logger.Debug("all caches cleared", zap.Int("count", len(handles)))
}

// ResetAll zeroes the access counters of every registered cache
// without touching their contents.
func (r *Registry) ResetAll() {
	r.mu.RLock()
	handles := make([]handle, 0, len(r.caches))
	for _, h := range r.caches {
		handles = append(handles, h)
	}
	r.mu.RUnlock()
	for _, h := range handles {
		h.ResetStats()
	}
}

// CachedFiles returns the normalized names of all registered caches in
// sorted order.
func (r *Registry) CachedFiles() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.caches))
	for name := range r.caches {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// TotalMemoryUsageMB sums tracked sizes across all registered caches.
// Each cache is snapshotted in turn, not all at once, so a busy cache
// never stalls the rest.
func (r *Registry) TotalMemoryUsageMB() float64 {
	r.mu.RLock()
	handles := make([]handle, 0, len(r.caches))
	for _, h := range r.caches {
		handles = append(handles, h)
	}
	r.mu.RUnlock()

	var total int64
	for _, h := range handles {
		total += h.SizeBytes()
	}
	return float64(total) / (1024 * 1024)
}

// AllStats returns a per-cache statistics snapshot keyed by normalized
// name.
func (r *Registry) AllStats() map[string]Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()
	stats := make(map[string]Stats, len(r.caches))
	for name, h := range r.caches {
		stats[name] = h.Stats()
	}
	return stats
}
