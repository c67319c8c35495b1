package cache

import "time"

// Config holds configuration for a single cache instance.
type Config struct {
	// MaxMemoryMB is the byte budget in megabytes. Fractional values are
	// allowed for very small caches.
	MaxMemoryMB float64 `mapstructure:"max_memory_mb" default:"50"`
	// MaxEntries is the entry-count budget.
	MaxEntries int `mapstructure:"max_entries" default:"100000"`
	// TTL expires entries this long after insertion. Zero disables expiry.
	TTL time.Duration `mapstructure:"ttl" default:"0"`
	// AutoEvict enables eviction after each write when over budget.
	// When disabled the budgets may be exceeded freely.
	AutoEvict bool `mapstructure:"auto_evict" default:"true"`
}

// DefaultConfig returns the defaults applied when a cache is created
// without explicit configuration.
func DefaultConfig() Config {
	return Config{
		MaxMemoryMB: 50,
		MaxEntries:  100000,
		TTL:         0,
		AutoEvict:   true,
	}
}

// maxBytes converts the megabyte budget to bytes.
func (c Config) maxBytes() int64 {
	return int64(c.MaxMemoryMB * 1024 * 1024)
}

// Patch is a partial configuration for live reconfiguration. Nil fields
// leave the current value untouched.
type Patch struct {
	MaxMemoryMB *float64
	MaxEntries  *int
	TTL         *time.Duration
	AutoEvict   *bool
}

// apply merges the patch into cfg and returns the result.
func (p Patch) apply(cfg Config) Config {
	if p.MaxMemoryMB != nil {
		cfg.MaxMemoryMB = *p.MaxMemoryMB
	}
	if p.MaxEntries != nil {
		cfg.MaxEntries = *p.MaxEntries
	}
	if p.TTL != nil {
		cfg.TTL = *p.TTL
	}
	if p.AutoEvict != nil {
		cfg.AutoEvict = *p.AutoEvict
	}
	return cfg
}
