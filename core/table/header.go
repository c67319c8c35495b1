package table

import (
	"bytes"
	"encoding/binary"

	"gamedata-manager/core/errs"
)

// Known header signatures, oldest first.
const (
	SigWDC3 = "WDC3"
	SigWDC4 = "WDC4"
	SigWDC5 = "WDC5"
)

const (
	signatureSize = 4
	// numericFieldsSize covers the fixed little-endian fields that every
	// revision shares after the signature (and, for WDC5, the schema
	// block): nine u32, two u16, then seven u32.
	numericFieldsSize = 9*4 + 2*2 + 7*4

	schemaVersionSize = 4
	schemaNameSize    = 128

	// MinHeaderSize is the smallest buffer any revision can be parsed
	// from.
	MinHeaderSize = signatureSize + numericFieldsSize
	// minHeaderSizeWDC5 adds the schema version and name block.
	minHeaderSizeWDC5 = MinHeaderSize + schemaVersionSize + schemaNameSize
)

// IsValidSignature reports whether tag names a supported header
// revision. Callers use it to branch on format before allocating a
// Header.
func IsValidSignature(tag string) bool {
	switch tag {
	case SigWDC3, SigWDC4, SigWDC5:
		return true
	default:
		return false
	}
}

// Header is the structural description of a table file, read from its
// fixed-offset header region.
type Header struct {
	// Signature is the 4-byte revision tag.
	Signature string
	// SchemaVersion and SchemaName are present from WDC5 on, zero/empty
	// otherwise.
	SchemaVersion uint32
	SchemaName    string

	RecordCount     uint32
	FieldCount      uint32
	RecordSize      uint32
	StringTableSize uint32
	TableHash       uint32
	LayoutHash      uint32
	MinID           uint32
	MaxID           uint32
	Locale          uint32
	Flags           uint16
	IndexField      uint16
	TotalFieldCount uint32
	// PackedDataOffset is the bit offset where packed column data
	// begins inside a record.
	PackedDataOffset  uint32
	ParentLookupCount uint32
	ColumnMetaSize    uint32
	CommonDataSize    uint32
	PalletDataSize    uint32
	SectionCount      uint32
}

// HasSchema reports whether the revision embeds a schema block.
func (h *Header) HasSchema() bool {
	return h.Signature == SigWDC5
}

// Parse reads a table header from the start of buf. It fails with a
// FormatError before touching any field when the buffer is smaller than
// the revision's minimum header size, so a truncated file can never
// cause an out-of-range read.
func Parse(buf []byte) (*Header, error) {
	if len(buf) < MinHeaderSize {
		return nil, errs.FormatAt(0, "header too small: %d bytes, need at least %d", len(buf), MinHeaderSize)
	}
	sig := string(buf[:signatureSize])
	if !IsValidSignature(sig) {
		return nil, errs.FormatAt(0, "unknown table signature %q", sig)
	}

	h := &Header{Signature: sig}
	pos := signatureSize

	if h.HasSchema() {
		if len(buf) < minHeaderSizeWDC5 {
			return nil, errs.FormatAt(0, "header too small: %d bytes, need at least %d for %s", len(buf), minHeaderSizeWDC5, sig)
		}
		h.SchemaVersion = binary.LittleEndian.Uint32(buf[pos:])
		pos += schemaVersionSize
		h.SchemaName = cString(buf[pos : pos+schemaNameSize])
		pos += schemaNameSize
	}

	u32 := func() uint32 {
		v := binary.LittleEndian.Uint32(buf[pos:])
		pos += 4
		return v
	}
	u16 := func() uint16 {
		v := binary.LittleEndian.Uint16(buf[pos:])
		pos += 2
		return v
	}

	h.RecordCount = u32()
	h.FieldCount = u32()
	h.RecordSize = u32()
	h.StringTableSize = u32()
	h.TableHash = u32()
	h.LayoutHash = u32()
	h.MinID = u32()
	h.MaxID = u32()
	h.Locale = u32()
	h.Flags = u16()
	h.IndexField = u16()
	h.TotalFieldCount = u32()
	h.PackedDataOffset = u32()
	h.ParentLookupCount = u32()
	h.ColumnMetaSize = u32()
	h.CommonDataSize = u32()
	h.PalletDataSize = u32()
	h.SectionCount = u32()
	return h, nil
}

// HeaderSize returns the byte length of the fixed header for this
// revision, which is also the offset where section data begins.
func (h *Header) HeaderSize() int {
	if h.HasSchema() {
		return minHeaderSizeWDC5
	}
	return MinHeaderSize
}

func cString(b []byte) string {
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}
