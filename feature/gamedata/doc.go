// Package gamedata ties the resolution chain together: root index and
// encoding table lookups, archive reads, block decompression, and the
// record caches that make repeated lookups cheap.
//
// A Service is built from an archive Source, a Locator and a cache
// Registry. OpenIndices parses the root and encoding files once;
// FetchByPath and FetchByFileID then resolve a human path or numeric
// file ID all the way to raw bytes, caching the result by content key.
// LoadTable layers the table-header parser on top and deduplicates
// concurrent loads of the same table with singleflight. Warm pre-loads
// a list of tables for startup cache priming.
//
// Unknown paths, content keys and locations are normal outcomes and
// come back as found=false; errors are reserved for malformed data and
// failed I/O.
package gamedata
