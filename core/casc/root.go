package casc

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"regexp"
	"strings"

	"gamedata-manager/core/errs"
)

// rootMagic marks the primary root-index layout. Buffers without it are
// parsed as the legacy layout.
var rootMagic = []byte("MNDX")

// maxBlockEntries is the plausibility bound on a block's entry count.
// Anything larger is treated as corruption and stops the parse.
const maxBlockEntries = 1_000_000

const rootBlockHeaderSize = 12

// RootEntry binds one (path or file ID, locale) pair to a content key.
// Entries are immutable once parsed.
type RootEntry struct {
	// Path is the normalized path: lowercase, forward slashes. Legacy
	// entries carry a placeholder synthesized from the name hash.
	Path string
	// FileID is the numeric file ID, 0 when absent.
	FileID uint32
	// ContentKey identifies the file's content.
	ContentKey ContentKey
	// LocaleFlags are the locales the entry applies to.
	LocaleFlags LocaleFlags
	// ContentFlags are the content variants the entry applies to.
	ContentFlags ContentFlags
}

// RootIndex is the parsed path/file-ID → content-key index. Parse is
// single-writer; every query is read-only and safe for concurrent use
// afterwards.
type RootIndex struct {
	byPath     map[string][]*RootEntry
	byFileID   map[uint32]*RootEntry
	entryCount int
}

// NewRootIndex returns an empty index.
func NewRootIndex() *RootIndex {
	return &RootIndex{
		byPath:   make(map[string][]*RootEntry),
		byFileID: make(map[uint32]*RootEntry),
	}
}

// Parse reads a root-index buffer, retaining entries that match the
// requested locale. The layout is chosen by the 4-byte signature at
// offset 0; an unrecognized signature falls back to the legacy layout.
// A truncated block drops only that block's remaining entries. An
// implausible block header stops the parse with a FormatError that
// reports how many entries were salvaged; everything retained up to
// that point stays queryable.
func (r *RootIndex) Parse(buf []byte, locale LocaleFlags) error {
	if len(buf) >= len(rootMagic) && bytes.Equal(buf[:len(rootMagic)], rootMagic) {
		return r.parseBlocks(buf, len(rootMagic), locale, r.readNamedEntry)
	}
	return r.parseBlocks(buf, 0, locale, r.readHashedEntry)
}

// entryReader consumes one entry at pos and returns the next position.
// A nil entry with ok=true means the entry was parsed but filtered out;
// ok=false means the buffer ran short and the block scan must stop.
type entryReader func(buf []byte, pos int, retain bool, flags blockFlags) (next int, ok bool)

type blockFlags struct {
	content ContentFlags
	locale  LocaleFlags
}

func (r *RootIndex) parseBlocks(buf []byte, pos int, locale LocaleFlags, read entryReader) error {
	for pos+rootBlockHeaderSize <= len(buf) {
		entryCount := binary.LittleEndian.Uint32(buf[pos:])
		flags := blockFlags{
			content: ContentFlags(binary.LittleEndian.Uint32(buf[pos+4:])),
			locale:  LocaleFlags(binary.LittleEndian.Uint32(buf[pos+8:])),
		}
		pos += rootBlockHeaderSize

		if entryCount == 0 {
			continue
		}
		if entryCount > maxBlockEntries {
			return &errs.FormatError{
				Offset: int64(pos - rootBlockHeaderSize),
				Msg:    fmt.Sprintf("implausible block entry count %d, stopping; salvaged %d entries", entryCount, r.entryCount),
			}
		}

		retain := flags.locale.Matches(locale)
		for i := uint32(0); i < entryCount; i++ {
			next, ok := read(buf, pos, retain, flags)
			if !ok {
				// Truncated entry: the rest of the buffer is unusable
				// because entry boundaries are lost. Keep what we have.
				return nil
			}
			pos = next
		}
	}
	return nil
}

// readNamedEntry parses a primary-layout entry:
// fileID u32, content key, name length u16, UTF-8 name.
func (r *RootIndex) readNamedEntry(buf []byte, pos int, retain bool, flags blockFlags) (int, bool) {
	const fixed = 4 + ContentKeySize + 2
	if pos+fixed > len(buf) {
		return pos, false
	}
	fileID := binary.LittleEndian.Uint32(buf[pos:])
	key, _ := ContentKeyFromSlice(buf[pos+4 : pos+4+ContentKeySize])
	nameLen := int(binary.LittleEndian.Uint16(buf[pos+4+ContentKeySize:]))
	if pos+fixed+nameLen > len(buf) {
		return pos, false
	}
	name := string(buf[pos+fixed : pos+fixed+nameLen])
	if retain {
		r.add(&RootEntry{
			Path:         NormalizePath(name),
			FileID:       fileID,
			ContentKey:   key,
			LocaleFlags:  flags.locale,
			ContentFlags: flags.content,
		})
	}
	return pos + fixed + nameLen, true
}

// readHashedEntry parses a legacy-layout entry: content key plus a
// 64-bit name hash. No human-readable path exists, so a placeholder is
// synthesized from the hash. Downstream consumers treat the placeholder
// as opaque.
func (r *RootIndex) readHashedEntry(buf []byte, pos int, retain bool, flags blockFlags) (int, bool) {
	const size = ContentKeySize + 8
	if pos+size > len(buf) {
		return pos, false
	}
	key, _ := ContentKeyFromSlice(buf[pos : pos+ContentKeySize])
	hash := binary.LittleEndian.Uint64(buf[pos+ContentKeySize:])
	if retain {
		r.add(&RootEntry{
			Path:         fmt.Sprintf("unknown/%016x", hash),
			ContentKey:   key,
			LocaleFlags:  flags.locale,
			ContentFlags: flags.content,
		})
	}
	return pos + size, true
}

func (r *RootIndex) add(e *RootEntry) {
	r.byPath[e.Path] = append(r.byPath[e.Path], e)
	if e.FileID != 0 {
		r.byFileID[e.FileID] = e
	}
	r.entryCount++
}

// NormalizePath lowercases a path and converts backslashes to forward
// slashes, the canonical form used for every lookup.
func NormalizePath(path string) string {
	return strings.ToLower(strings.ReplaceAll(path, `\`, "/"))
}

// FindByPath returns the first entry for a path, or nil when the path
// is unknown. Lookup is case-insensitive.
func (r *RootIndex) FindByPath(path string) *RootEntry {
	entries := r.byPath[NormalizePath(path)]
	if len(entries) == 0 {
		return nil
	}
	return entries[0]
}

// Entries returns all locale variants recorded for a path.
func (r *RootIndex) Entries(path string) []*RootEntry {
	return r.byPath[NormalizePath(path)]
}

// FindByFileID returns the entry for a numeric file ID, or nil.
func (r *RootIndex) FindByFileID(id uint32) *RootEntry {
	return r.byFileID[id]
}

// HasFile reports whether a path is present in the index.
func (r *RootIndex) HasFile(path string) bool {
	return len(r.byPath[NormalizePath(path)]) > 0
}

// ListFiles returns the paths matching a glob pattern, where '*'
// matches any run of characters and '?' a single character. Matching is
// anchored and case-insensitive. An empty pattern lists every path.
func (r *RootIndex) ListFiles(pattern string) []string {
	re, err := globToRegexp(pattern)
	if err != nil {
		return nil
	}
	var files []string
	for path := range r.byPath {
		if re.MatchString(path) {
			files = append(files, path)
		}
	}
	return files
}

// Walk calls fn for every retained entry, in no particular order.
// Returning false stops the walk.
func (r *RootIndex) Walk(fn func(*RootEntry) bool) {
	for _, entries := range r.byPath {
		for _, e := range entries {
			if !fn(e) {
				return
			}
		}
	}
}

// EntryCount returns the number of retained entries across all paths.
func (r *RootIndex) EntryCount() int {
	return r.entryCount
}

// FileCount returns the number of distinct paths.
func (r *RootIndex) FileCount() int {
	return len(r.byPath)
}

func globToRegexp(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		pattern = "*"
	}
	var sb strings.Builder
	sb.WriteString("(?i)^")
	for _, ch := range pattern {
		switch ch {
		case '*':
			sb.WriteString(".*")
		case '?':
			sb.WriteString(".")
		default:
			sb.WriteString(regexp.QuoteMeta(string(ch)))
		}
	}
	sb.WriteString("$")
	return regexp.Compile(sb.String())
}
