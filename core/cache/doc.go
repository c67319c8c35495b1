// Package cache provides the memory-bounded record cache used to
// memoize decoded table rows and typed records, plus the process-wide
// registry that holds one named cache per source file.
//
// # Cache
//
// Cache is generic over key and value type. Every entry carries a byte
// size (a caller-supplied hint or an estimate from core/utils), and the
// cache evicts by least-recent access, breaking ties by access count,
// whenever it exceeds its byte or entry budget. A nonzero TTL expires
// entries independently of the budget. Hit, miss and eviction counters
// are tracked per instance and can be reset without touching the
// current contents.
//
// # Registry
//
// Registry is an explicit, constructed directory of named caches with
// case-insensitive names. It holds no eviction policy of its own; it
// only creates, aggregates and clears. Tests build their own Registry
// for isolation instead of sharing a package-level singleton.
//
//	reg := cache.NewRegistry(logger)
//	spells, err := cache.For[uint32, SpellRow](reg, "Spell.db2", nil)
package cache
