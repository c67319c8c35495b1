// Package blte decodes the self-describing compressed block format used
// inside game archives.
//
// A frame starts with the 4-byte magic "BLTE" followed by a big-endian
// header size. When the header size is nonzero the frame carries a chunk
// table (flags byte, 24-bit chunk count, then per chunk the compressed
// size, decompressed size and an MD5 checksum of the compressed bytes).
// When it is zero the whole remaining buffer is a single chunk.
//
// Each chunk begins with a one-byte mode tag:
//
//	'N' — raw passthrough
//	'Z' — zlib-compressed
//	'F' — a nested frame, decoded recursively
//
// Decode inflates chunk by chunk; the compressed payload is never
// duplicated in memory. IsEncoded inspects the magic without touching
// the rest of the buffer, so callers can pass mixed raw/encoded blocks
// through unconditionally.
package blte
