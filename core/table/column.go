package table

import (
	"encoding/binary"
	"fmt"

	"gamedata-manager/core/errs"
)

// ColumnCompression is the storage scheme of one table column. The set
// is closed: row decoders switch exhaustively over these values and a
// file declaring anything else is rejected.
type ColumnCompression uint32

const (
	// ColumnNone stores the value inline at its natural width.
	ColumnNone ColumnCompression = iota
	// ColumnImmediate bit-packs the value into the record.
	ColumnImmediate
	// ColumnCommonData stores a default inline and exceptions in the
	// common-data region.
	ColumnCommonData
	// ColumnPallet stores an index into a per-column value pallet.
	ColumnPallet
	// ColumnPalletArray stores an index into a pallet of value arrays.
	ColumnPalletArray
	// ColumnSignedImmediate bit-packs a sign-extended value.
	ColumnSignedImmediate
)

// Valid reports whether c is a member of the closed set.
func (c ColumnCompression) Valid() bool {
	return c <= ColumnSignedImmediate
}

func (c ColumnCompression) String() string {
	switch c {
	case ColumnNone:
		return "none"
	case ColumnImmediate:
		return "immediate"
	case ColumnCommonData:
		return "common-data"
	case ColumnPallet:
		return "pallet"
	case ColumnPalletArray:
		return "pallet-array"
	case ColumnSignedImmediate:
		return "signed-immediate"
	default:
		return fmt.Sprintf("column-compression(%d)", uint32(c))
	}
}

// columnMetaEntrySize is the on-disk size of one column-meta record.
const columnMetaEntrySize = 24

// ColumnMeta describes how one column is stored. Row decoders consume
// the slice returned by ParseColumnMeta alongside the Header.
type ColumnMeta struct {
	// RecordOffset is the bit offset of the column inside a record.
	RecordOffset uint16
	// SizeBits is the column's width in bits.
	SizeBits uint16
	// AdditionalDataSize is the byte size of the column's pallet or
	// common-data region.
	AdditionalDataSize uint32
	// Compression selects the storage scheme.
	Compression ColumnCompression
	// Packed holds the three scheme-specific words: bit offset, bit
	// width and a third value whose meaning depends on the scheme
	// (array size for pallet arrays, default value for common data).
	Packed [3]uint32
}

// ParseColumnMeta reads the column-meta region that follows the header
// sections, one entry per field. A short buffer or an out-of-set
// compression tag fails with a FormatError.
func ParseColumnMeta(buf []byte, fieldCount int) ([]ColumnMeta, error) {
	need := fieldCount * columnMetaEntrySize
	if len(buf) < need {
		return nil, errs.FormatAt(0, "column meta truncated: %d bytes for %d fields, need %d", len(buf), fieldCount, need)
	}
	metas := make([]ColumnMeta, fieldCount)
	for i := range metas {
		off := i * columnMetaEntrySize
		m := &metas[i]
		m.RecordOffset = binary.LittleEndian.Uint16(buf[off:])
		m.SizeBits = binary.LittleEndian.Uint16(buf[off+2:])
		m.AdditionalDataSize = binary.LittleEndian.Uint32(buf[off+4:])
		m.Compression = ColumnCompression(binary.LittleEndian.Uint32(buf[off+8:]))
		if !m.Compression.Valid() {
			return nil, errs.FormatAt(int64(off+8), "field %d: unknown column compression %d", i, m.Compression)
		}
		m.Packed[0] = binary.LittleEndian.Uint32(buf[off+12:])
		m.Packed[1] = binary.LittleEndian.Uint32(buf[off+16:])
		m.Packed[2] = binary.LittleEndian.Uint32(buf[off+20:])
	}
	return metas, nil
}
