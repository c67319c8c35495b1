package cache

// Stats is a snapshot of a cache's counters and current contents.
// Counters accumulate until ResetStats; EntryCount and TotalSize always
// reflect what the cache currently holds.
type Stats struct {
	// Hits counts successful Gets.
	Hits uint64 `json:"hits"`
	// Misses counts Gets that found nothing, including TTL expiries.
	Misses uint64 `json:"misses"`
	// Evictions counts entries removed by the eviction policy or TTL
	// sweeps, not explicit deletes.
	Evictions uint64 `json:"evictions"`
	// HitRate is hits/(hits+misses) as a percentage, 0 with no accesses.
	HitRate float64 `json:"hit_rate"`
	// EntryCount is the number of live entries.
	EntryCount int `json:"entry_count"`
	// TotalSize is the sum of live entries' tracked byte sizes.
	TotalSize int64 `json:"total_size"`
}

func hitRate(hits, misses uint64) float64 {
	total := hits + misses
	if total == 0 {
		return 0
	}
	return float64(hits) / float64(total) * 100
}
