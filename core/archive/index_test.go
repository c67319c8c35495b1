package archive_test

import (
	"encoding/hex"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/errs"
)

const indexJSON = `{
  "AABBCCDD00112233445566778899AABB": {"archive": 2, "offset": 4096, "size": 512},
  "0102030405060708090a0b0c0d0e0f10": {"archive": 0, "offset": 0, "size": 64}
}`

func TestParseIndexAndLocate(t *testing.T) {
	idx, err := archive.ParseIndex("archive.idx", []byte(indexJSON))
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	// Keys are matched case-insensitively regardless of the file's casing.
	key, err := hex.DecodeString("aabbccdd00112233445566778899aabb")
	require.NoError(t, err)
	loc, ok := idx.Locate(key)
	require.True(t, ok)
	assert.Equal(t, archive.Location{Archive: 2, Offset: 4096, Size: 512}, loc)

	_, ok = idx.Locate([]byte{0xFF, 0xFF})
	assert.False(t, ok, "unknown keys are absent, not an error")
}

func TestLoadIndex(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "archive.idx")
	require.NoError(t, os.WriteFile(path, []byte(indexJSON), 0o644))

	idx, err := archive.LoadIndex(path)
	require.NoError(t, err)
	assert.Equal(t, 2, idx.Len())

	_, err = archive.LoadIndex(filepath.Join(dir, "missing.idx"))
	var ioErr *errs.IOError
	assert.True(t, errors.As(err, &ioErr))
}

func TestParseIndexBadJSON(t *testing.T) {
	_, err := archive.ParseIndex("archive.idx", []byte("{curly"))
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Equal(t, "archive.idx", ferr.File)
}

func TestNewIndexLocator(t *testing.T) {
	idx := archive.NewIndex(map[string]archive.Location{
		"ABCD": {Archive: 1, Offset: 10, Size: 20},
	})
	locate := idx.Locator()

	loc, ok := locate([]byte{0xAB, 0xCD})
	require.True(t, ok)
	assert.Equal(t, 1, loc.Archive)
}
