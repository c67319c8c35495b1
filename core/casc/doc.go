// Package casc parses the content-addressable storage indexes that map
// human-readable file paths to physical archive data.
//
// Two indexes make up the resolution chain's front half. The root index
// binds a path or numeric file ID (per locale) to a 16-byte content
// key. The encoding table binds a content key to one or more encoding
// keys plus the declared file size; the first encoding key is the
// canonical on-disk representation.
//
// Both parsers are tolerant of damage: a malformed block or entry stops
// the scan of that block only, and whatever was salvaged before the
// failure point stays queryable. Parsing is single-writer; all query
// methods are read-only and safe for concurrent callers once parsing
// has completed.
package casc
