package casc

import (
	"encoding/binary"
	"encoding/hex"

	"gamedata-manager/core/errs"
)

// encodingMagic is the 2-byte signature of the encoding table file.
var encodingMagic = []byte("EN")

// encodingPreambleSize is the fixed preamble before the spec block.
const encodingPreambleSize = 22

// EncodingEntry maps a content key to its physical representations.
// Keys is never empty for a stored entry; Keys[0] is canonical.
type EncodingEntry struct {
	// ContentKey is the content hash this entry describes.
	ContentKey []byte
	// Keys are the encoding keys, canonical first.
	Keys [][]byte
	// Size is the declared byte size (40-bit on disk).
	Size uint64
}

// EncodingTable is the parsed content-key → encoding-key index.
type EncodingTable struct {
	entries map[string]*EncodingEntry

	// sizes from the preamble, kept for diagnostics
	hashSizeC uint8
	hashSizeE uint8
	pageCount uint32
}

// NewEncodingTable returns an empty table.
func NewEncodingTable() *EncodingTable {
	return &EncodingTable{entries: make(map[string]*EncodingEntry)}
}

// Parse reads the paged encoding-table layout. It fails with a
// FormatError on a bad magic or truncated preamble. Within a page, a
// zero key count or a short entry ends that page's scan without error;
// a duplicate content key overwrites the earlier entry.
func (t *EncodingTable) Parse(buf []byte) error {
	if len(buf) < encodingPreambleSize {
		return errs.FormatAt(0, "encoding preamble truncated: %d bytes", len(buf))
	}
	if buf[0] != encodingMagic[0] || buf[1] != encodingMagic[1] {
		return errs.FormatAt(0, "bad encoding magic %q", buf[:2])
	}

	// Preamble layout after the magic: version, content hash size,
	// encoding hash size, content page size (KB), encoding page size
	// (KB), content page count, encoding page count, one reserved byte,
	// spec block size. Multi-byte fields are big-endian.
	t.hashSizeC = buf[3]
	t.hashSizeE = buf[4]
	pageSizeKB := binary.BigEndian.Uint16(buf[5:7])
	t.pageCount = binary.BigEndian.Uint32(buf[9:13])
	specBlockSize := binary.BigEndian.Uint32(buf[18:22])

	pageSize := int(pageSizeKB) * 1024
	if pageSize == 0 || t.hashSizeC == 0 {
		return errs.FormatAt(0, "degenerate encoding preamble: page size %d, hash size %d", pageSize, t.hashSizeC)
	}

	start := encodingPreambleSize + int(specBlockSize)
	for page := 0; page < int(t.pageCount); page++ {
		pageStart := start + page*pageSize
		if pageStart >= len(buf) {
			break
		}
		pageEnd := pageStart + pageSize
		if pageEnd > len(buf) {
			pageEnd = len(buf)
		}
		t.parsePage(buf[pageStart:pageEnd])
	}
	return nil
}

// parsePage scans sequential entries in one content-key page. Each
// entry is keyCount u8, a 40-bit big-endian file size, the content key,
// then keyCount encoding keys. keyCount 0 is end-of-page padding.
func (t *EncodingTable) parsePage(page []byte) {
	hashC, hashE := int(t.hashSizeC), int(t.hashSizeE)
	pos := 0
	for pos < len(page) {
		keyCount := int(page[pos])
		if keyCount == 0 {
			return
		}
		need := 1 + 5 + hashC + keyCount*hashE
		if pos+need > len(page) {
			return
		}
		size := uint64(page[pos+1])<<32 | uint64(binary.BigEndian.Uint32(page[pos+2:pos+6]))
		ckey := append([]byte(nil), page[pos+6:pos+6+hashC]...)

		keys := make([][]byte, keyCount)
		keyPos := pos + 6 + hashC
		for i := 0; i < keyCount; i++ {
			keys[i] = append([]byte(nil), page[keyPos:keyPos+hashE]...)
			keyPos += hashE
		}

		// Last write wins on duplicate content keys.
		t.entries[hex.EncodeToString(ckey)] = &EncodingEntry{
			ContentKey: ckey,
			Keys:       keys,
			Size:       size,
		}
		pos += need
	}
}

// FindEntry returns the entry for a content key, or nil when unknown.
func (t *EncodingTable) FindEntry(contentKey []byte) *EncodingEntry {
	return t.entries[hex.EncodeToString(contentKey)]
}

// EncodingKey returns the canonical encoding key for a content key, or
// nil when the content key is unknown.
func (t *EncodingTable) EncodingKey(contentKey []byte) []byte {
	if e := t.entries[hex.EncodeToString(contentKey)]; e != nil {
		return e.Keys[0]
	}
	return nil
}

// EntryCount returns the number of stored entries.
func (t *EncodingTable) EntryCount() int {
	return len(t.entries)
}
