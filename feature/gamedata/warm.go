package gamedata

import (
	"context"

	"go.uber.org/zap"

	"gamedata-manager/core/cache"
)

// WarmResult summarizes one cache-warming pass.
type WarmResult struct {
	// Loaded lists the tables that were fetched and parsed.
	Loaded []string
	// Missing lists the names that resolved to nothing.
	Missing []string
	// Failed maps names to the error that stopped their load.
	Failed map[string]error
	// Stats is the per-cache registry snapshot after warming.
	Stats map[string]cache.Stats
}

// Warm pre-loads a list of table files so first requests hit warm
// caches. Failures are collected per table rather than aborting the
// pass; a cancelled context stops it early.
func (s *Service) Warm(ctx context.Context, names []string) (*WarmResult, error) {
	result := &WarmResult{Failed: make(map[string]error)}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		_, found, err := s.LoadTable(ctx, name)
		switch {
		case err != nil:
			result.Failed[name] = err
			s.logger.Warn("cache warm failed", zap.String("table", name), zap.Error(err))
		case !found:
			result.Missing = append(result.Missing, name)
			s.logger.Info("cache warm skipped unknown table", zap.String("table", name))
		default:
			result.Loaded = append(result.Loaded, name)
		}
	}

	result.Stats = s.reg.AllStats()
	s.logger.Info("cache warm complete",
		zap.Int("loaded", len(result.Loaded)),
		zap.Int("missing", len(result.Missing)),
		zap.Int("failed", len(result.Failed)),
		zap.Float64("total_mb", s.reg.TotalMemoryUsageMB()),
	)
	return result, nil
}
