package casc_test

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedata-manager/core/casc"
	"gamedata-manager/core/errs"
)

func testKey(fill byte) casc.ContentKey {
	var k casc.ContentKey
	for i := range k {
		k[i] = fill
	}
	return k
}

type rootBuilder struct {
	buf bytes.Buffer
}

func newRootBuilder(primary bool) *rootBuilder {
	b := &rootBuilder{}
	if primary {
		b.buf.WriteString("MNDX")
	}
	return b
}

func (b *rootBuilder) block(entryCount uint32, contentFlags uint32, localeFlags casc.LocaleFlags) *rootBuilder {
	binary.Write(&b.buf, binary.LittleEndian, entryCount)
	binary.Write(&b.buf, binary.LittleEndian, contentFlags)
	binary.Write(&b.buf, binary.LittleEndian, uint32(localeFlags))
	return b
}

func (b *rootBuilder) named(fileID uint32, key casc.ContentKey, name string) *rootBuilder {
	binary.Write(&b.buf, binary.LittleEndian, fileID)
	b.buf.Write(key[:])
	binary.Write(&b.buf, binary.LittleEndian, uint16(len(name)))
	b.buf.WriteString(name)
	return b
}

func (b *rootBuilder) hashed(key casc.ContentKey, hash uint64) *rootBuilder {
	b.buf.Write(key[:])
	binary.Write(&b.buf, binary.LittleEndian, hash)
	return b
}

func (b *rootBuilder) bytes() []byte { return b.buf.Bytes() }

func TestRootParsePrimaryLayout(t *testing.T) {
	key1, key2 := testKey(0xAA), testKey(0xBB)
	buf := newRootBuilder(true).
		block(2, 0, casc.LocaleAll).
		named(1001, key1, "Interface/Icons/Spell.blp").
		named(1002, key2, `Sound\Music\Track.mp3`).
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	assert.Equal(t, 2, idx.FileCount())
	assert.Equal(t, 2, idx.EntryCount())

	e := idx.FindByPath("Interface/Icons/Spell.blp")
	require.NotNil(t, e)
	assert.Equal(t, key1, e.ContentKey)
	assert.Equal(t, uint32(1001), e.FileID)
}

func TestRootPathNormalization(t *testing.T) {
	key := testKey(1)
	buf := newRootBuilder(true).
		block(1, 0, casc.LocaleAll).
		named(7, key, `Some\Mixed\CASE.Dat`).
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	e := idx.FindByPath("some/mixed/case.dat")
	require.NotNil(t, e)
	assert.NotContains(t, e.Path, `\`)
	assert.Equal(t, e.Path, casc.NormalizePath(e.Path), "stored path is already normalized")

	// Case-insensitive lookups hit the same entry.
	assert.Same(t, e, idx.FindByPath("SOME/MIXED/CASE.DAT"))
	assert.True(t, idx.HasFile(`some\mixed\case.dat`))
}

func TestRootFindByFileID(t *testing.T) {
	buf := newRootBuilder(true).
		block(2, 0, casc.LocaleAll).
		named(0, testKey(1), "noid.dat").
		named(42, testKey(2), "withid.dat").
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	require.NotNil(t, idx.FindByFileID(42))
	assert.Equal(t, "withid.dat", idx.FindByFileID(42).Path)
	assert.Nil(t, idx.FindByFileID(0), "zero file IDs are not indexed")
	assert.Nil(t, idx.FindByFileID(9999))
}

func TestRootLocaleFiltering(t *testing.T) {
	buf := newRootBuilder(true).
		block(1, 0, casc.LocaleFrFR).
		named(1, testKey(1), "french.dat").
		block(1, 0, casc.LocaleEnUS|casc.LocaleEnGB).
		named(2, testKey(2), "english.dat").
		block(1, 0, casc.LocaleAll).
		named(3, testKey(3), "everywhere.dat").
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	assert.False(t, idx.HasFile("french.dat"), "non-matching locale block is filtered")
	assert.True(t, idx.HasFile("english.dat"))
	assert.True(t, idx.HasFile("everywhere.dat"), "ALL entries survive any locale filter")
	assert.Equal(t, 2, idx.EntryCount())
}

func TestRootEmptyBlockSkipped(t *testing.T) {
	buf := newRootBuilder(true).
		block(0, 0, casc.LocaleAll).
		block(1, 0, casc.LocaleAll).
		named(1, testKey(1), "after-empty.dat").
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))
	assert.True(t, idx.HasFile("after-empty.dat"), "parsing continues past an empty block")
}

func TestRootImplausibleBlockStopsWithSalvage(t *testing.T) {
	buf := newRootBuilder(true).
		block(1, 0, casc.LocaleAll).
		named(1, testKey(1), "good.dat").
		block(5_000_000, 0, casc.LocaleAll).
		bytes()

	idx := casc.NewRootIndex()
	err := idx.Parse(buf, casc.LocaleEnUS)

	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Msg, "salvaged 1")
	assert.True(t, idx.HasFile("good.dat"), "entries before the corrupt block stay queryable")
}

func TestRootTruncatedEntryDropsPartialBlock(t *testing.T) {
	full := newRootBuilder(true).
		block(2, 0, casc.LocaleAll).
		named(1, testKey(1), "kept.dat").
		named(2, testKey(2), "lost.dat").
		bytes()

	// Cut into the second entry's name.
	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(full[:len(full)-4], casc.LocaleEnUS))

	assert.True(t, idx.HasFile("kept.dat"))
	assert.False(t, idx.HasFile("lost.dat"))
	assert.Equal(t, 1, idx.EntryCount())
}

func TestRootLegacyLayout(t *testing.T) {
	key := testKey(0xCD)
	const hash = uint64(0xDEADBEEF12345678)
	buf := newRootBuilder(false).
		block(1, 0, casc.LocaleAll).
		hashed(key, hash).
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	placeholder := fmt.Sprintf("unknown/%016x", hash)
	e := idx.FindByPath(placeholder)
	require.NotNil(t, e, "legacy entries get a placeholder path from the name hash")
	assert.Equal(t, key, e.ContentKey)
	assert.Equal(t, uint32(0), e.FileID)
}

func TestRootUnrecognizedSignatureFallsBackToLegacy(t *testing.T) {
	// No MNDX prefix: the first 4 bytes are block header data.
	buf := newRootBuilder(false).
		block(1, 0, casc.LocaleAll).
		hashed(testKey(5), 77).
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))
	assert.Equal(t, 1, idx.EntryCount())
}

func TestRootLocaleVariants(t *testing.T) {
	buf := newRootBuilder(true).
		block(1, 0, casc.LocaleEnUS).
		named(1, testKey(1), "shared.dat").
		block(1, 0, casc.LocaleEnGB).
		named(1, testKey(2), "shared.dat").
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS|casc.LocaleEnGB))

	variants := idx.Entries("shared.dat")
	require.Len(t, variants, 2)
	assert.Equal(t, 1, idx.FileCount(), "one path, two locale variants")
	assert.Equal(t, 2, idx.EntryCount())
}

func TestRootListFilesGlob(t *testing.T) {
	buf := newRootBuilder(true).
		block(3, 0, casc.LocaleAll).
		named(1, testKey(1), "Interface/Icons/ability_warrior.BLP").
		named(2, testKey(2), "Interface/Icons/spell_fire.blp").
		named(3, testKey(3), "Sound/Music/city.mp3").
		bytes()

	idx := casc.NewRootIndex()
	require.NoError(t, idx.Parse(buf, casc.LocaleEnUS))

	blps := idx.ListFiles("interface/icons/*.blp")
	assert.Len(t, blps, 2)

	assert.Len(t, idx.ListFiles("*.MP3"), 1, "glob matching is case-insensitive")
	assert.Len(t, idx.ListFiles("sound/music/cit?.mp3"), 1)
	assert.Len(t, idx.ListFiles(""), 3, "empty pattern lists everything")
	assert.Empty(t, idx.ListFiles("*.exe"))
}
