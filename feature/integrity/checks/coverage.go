package checks

import (
	"context"
	"sort"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/casc"
)

// CoverageReport lists root entries that cannot be resolved end to end.
type CoverageReport struct {
	// Checked is the number of root entries examined.
	Checked int `json:"checked"`
	// Unencoded lists paths whose content key has no encoding entry.
	Unencoded []string `json:"unencoded,omitempty"`
	// Unlocated lists paths whose encoding key is absent from the
	// location index.
	Unlocated []string `json:"unlocated,omitempty"`
}

// Clean reports whether every entry resolved.
func (r *CoverageReport) Clean() bool {
	return len(r.Unencoded) == 0 && len(r.Unlocated) == 0
}

// CheckCoverage walks every root entry through the encoding table and
// the locator, reporting the ones a fetch would fail to resolve.
func CheckCoverage(ctx context.Context, root *casc.RootIndex, enc *casc.EncodingTable, locate archive.Locator) (*CoverageReport, error) {
	report := &CoverageReport{}
	var walkErr error

	root.Walk(func(e *casc.RootEntry) bool {
		if err := ctx.Err(); err != nil {
			walkErr = err
			return false
		}
		report.Checked++

		encEntry := enc.FindEntry(e.ContentKey[:])
		if encEntry == nil {
			report.Unencoded = append(report.Unencoded, e.Path)
			return true
		}
		if _, ok := locate(encEntry.Keys[0]); !ok {
			report.Unlocated = append(report.Unlocated, e.Path)
		}
		return true
	})
	if walkErr != nil {
		return nil, walkErr
	}

	sort.Strings(report.Unencoded)
	sort.Strings(report.Unlocated)
	return report, nil
}
