package errs

import "fmt"

// FormatError indicates that on-disk data did not match the expected
// binary layout: a bad magic, a truncated buffer, or a corrupt block
// header. It is never used for "not found" conditions.
type FormatError struct {
	// File is the logical name of the input being parsed, if known.
	File string
	// Offset is the byte offset at which the problem was detected, or -1.
	Offset int64
	// Msg describes what was wrong.
	Msg string
}

func (e *FormatError) Error() string {
	switch {
	case e.File != "" && e.Offset >= 0:
		return fmt.Sprintf("%s: invalid format at offset %d: %s", e.File, e.Offset, e.Msg)
	case e.File != "":
		return fmt.Sprintf("%s: invalid format: %s", e.File, e.Msg)
	case e.Offset >= 0:
		return fmt.Sprintf("invalid format at offset %d: %s", e.Offset, e.Msg)
	default:
		return "invalid format: " + e.Msg
	}
}

// Format creates a FormatError without positional context.
func Format(format string, args ...any) *FormatError {
	return &FormatError{Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// FormatAt creates a FormatError pinned to a byte offset.
func FormatAt(offset int64, format string, args ...any) *FormatError {
	return &FormatError{Offset: offset, Msg: fmt.Sprintf(format, args...)}
}

// FormatIn creates a FormatError attributed to a named input.
func FormatIn(file string, format string, args ...any) *FormatError {
	return &FormatError{File: file, Offset: -1, Msg: fmt.Sprintf(format, args...)}
}

// IOError indicates a filesystem or storage failure while reaching the
// data, as opposed to the data itself being malformed. It always names
// the offending path.
type IOError struct {
	// Op is the operation that failed (open, read, stat, list).
	Op string
	// Path is the file or object the operation targeted.
	Path string
	// Err is the underlying error, if any.
	Err error
}

func (e *IOError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
	}
	return fmt.Sprintf("%s %s failed", e.Op, e.Path)
}

func (e *IOError) Unwrap() error { return e.Err }

// IO creates an IOError wrapping err for the given operation and path.
func IO(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}
