// Package table parses the fixed binary header of row-oriented game
// data table files.
//
// Three header revisions are recognized by their 4-byte ASCII signature
// (WDC3, WDC4, WDC5); the newest revision embeds a schema version and a
// 128-byte schema name between the signature and the numeric fields.
// The header yields the layout metadata a row decoder needs: record and
// field counts, fixed record size, string-table size, table and layout
// hashes, the ID range, and the sizes of the column-meta, common-data
// and pallet-data regions.
//
// Per-column storage is described by ColumnMeta with a closed
// ColumnCompression enumeration. Decoding the rows themselves is the
// concern of schema-aware consumers, not this package.
package table
