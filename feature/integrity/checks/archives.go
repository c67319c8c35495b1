package checks

import (
	"context"
	"os"
	"path/filepath"
	"sort"

	"gamedata-manager/core/archive"
)

// ArchiveReport lists problems found between the location index and the
// archive files on disk.
type ArchiveReport struct {
	// Checked is the number of locations examined.
	Checked int `json:"checked"`
	// MissingArchives lists archive numbers the index references but
	// that do not exist in the directory.
	MissingArchives []int `json:"missing_archives,omitempty"`
	// OutOfRange lists hex encoding keys whose location extends past
	// the end of its archive file.
	OutOfRange []string `json:"out_of_range,omitempty"`
}

// Clean reports whether no problems were found.
func (r *ArchiveReport) Clean() bool {
	return len(r.MissingArchives) == 0 && len(r.OutOfRange) == 0
}

// CheckArchives verifies every location in the index against the
// archive files in dir. Each archive is stat'ed once; its contents are
// not read.
func CheckArchives(ctx context.Context, dir string, idx *archive.Index) (*ArchiveReport, error) {
	report := &ArchiveReport{}
	sizes := make(map[int]int64)
	missing := make(map[int]bool)

	for key, loc := range idx.Locations() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report.Checked++

		if missing[loc.Archive] {
			continue
		}
		size, ok := sizes[loc.Archive]
		if !ok {
			info, err := os.Stat(filepath.Join(dir, archive.ArchiveName(loc.Archive)))
			if err != nil {
				missing[loc.Archive] = true
				report.MissingArchives = append(report.MissingArchives, loc.Archive)
				continue
			}
			size = info.Size()
			sizes[loc.Archive] = size
		}
		if loc.Offset+int64(loc.Size) > size {
			report.OutOfRange = append(report.OutOfRange, key)
		}
	}

	sort.Ints(report.MissingArchives)
	sort.Strings(report.OutOfRange)
	return report, nil
}
