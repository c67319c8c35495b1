package integrity

import (
	"context"

	"go.uber.org/zap"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/casc"
	"gamedata-manager/feature/integrity/checks"
)

// Service runs consistency checks over one dataset.
type Service struct {
	dir    string
	idx    *archive.Index
	root   *casc.RootIndex
	enc    *casc.EncodingTable
	logger *zap.Logger
}

// NewService creates an integrity service over parsed indices and the
// archive directory.
func NewService(dir string, idx *archive.Index, root *casc.RootIndex, enc *casc.EncodingTable, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{dir: dir, idx: idx, root: root, enc: enc, logger: logger}
}

// CheckArchives validates the location index against the archives on
// disk.
func (s *Service) CheckArchives(ctx context.Context) (*checks.ArchiveReport, error) {
	report, err := checks.CheckArchives(ctx, s.dir, s.idx)
	if err != nil {
		return nil, err
	}
	s.logger.Info("archive check complete",
		zap.Int("checked", report.Checked),
		zap.Int("missing_archives", len(report.MissingArchives)),
		zap.Int("out_of_range", len(report.OutOfRange)),
	)
	return report, nil
}

// CheckCoverage validates that every root entry resolves through the
// encoding table and the location index.
func (s *Service) CheckCoverage(ctx context.Context) (*checks.CoverageReport, error) {
	report, err := checks.CheckCoverage(ctx, s.root, s.enc, s.idx.Locator())
	if err != nil {
		return nil, err
	}
	s.logger.Info("coverage check complete",
		zap.Int("checked", report.Checked),
		zap.Int("unencoded", len(report.Unencoded)),
		zap.Int("unlocated", len(report.Unlocated)),
	)
	return report, nil
}
