// Package archive reads raw byte ranges out of numbered archive files
// and pipes anything block-encoded through the decompressor.
//
// Archives follow the numbering convention data.NNN, where NNN is the
// 3-digit zero-padded archive index. The local Store keeps a bounded
// pool of open file handles, closing the least recently used handle
// when the pool is full; Remote serves the same byte ranges from an
// object-storage CDN mirror through core/storage. Both satisfy Source,
// so the resolution pipeline does not care where the bytes live.
//
// An Index maps encoding keys to their (archive, offset, size)
// locations and yields the Locator the pipeline uses to find a file's
// physical bytes.
package archive
