// Package errs defines the error kinds shared by the binary-format
// readers and the archive store.
//
// Two failure families exist: FormatError for malformed or truncated
// on-disk data, and IOError for filesystem-level failures. Lookups that
// simply find nothing (unknown path, unknown content key, cache miss)
// are not errors at all; those are reported as absent results by the
// packages that own them.
//
// # Matching
//
//	var ferr *errs.FormatError
//	if errors.As(err, &ferr) {
//	    // corrupt input, not worth retrying
//	}
package errs
