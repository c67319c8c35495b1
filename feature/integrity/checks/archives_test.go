package checks_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedata-manager/core/archive"
	"gamedata-manager/feature/integrity/checks"
)

func TestCheckArchivesClean(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.000"), bytes.Repeat([]byte{0xAA}, 256), 0o644))

	idx := archive.NewIndex(map[string]archive.Location{
		"aa": {Archive: 0, Offset: 0, Size: 128},
		"bb": {Archive: 0, Offset: 128, Size: 128},
	})

	report, err := checks.CheckArchives(context.Background(), dir, idx)
	require.NoError(t, err)
	assert.True(t, report.Clean())
	assert.Equal(t, 2, report.Checked)
}

func TestCheckArchivesFindsProblems(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "data.000"), bytes.Repeat([]byte{0xAA}, 100), 0o644))

	idx := archive.NewIndex(map[string]archive.Location{
		"aa": {Archive: 0, Offset: 0, Size: 100},
		"bb": {Archive: 0, Offset: 50, Size: 100}, // past end of data.000
		"cc": {Archive: 5, Offset: 0, Size: 10},   // archive never written
		"dd": {Archive: 5, Offset: 10, Size: 10},
	})

	report, err := checks.CheckArchives(context.Background(), dir, idx)
	require.NoError(t, err)
	assert.False(t, report.Clean())
	assert.Equal(t, 4, report.Checked)
	assert.Equal(t, []int{5}, report.MissingArchives, "missing archive reported once")
	assert.Equal(t, []string{"bb"}, report.OutOfRange)
}

func TestCheckArchivesHonorsCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	idx := archive.NewIndex(map[string]archive.Location{"aa": {Archive: 0, Offset: 0, Size: 1}})
	_, err := checks.CheckArchives(ctx, t.TempDir(), idx)
	assert.ErrorIs(t, err, context.Canceled)
}
