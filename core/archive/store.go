package archive

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"

	"gamedata-manager/core/blte"
	"gamedata-manager/core/errs"
)

// Source reads a byte range from a numbered archive and returns it
// decompressed when the range holds an encoded block.
type Source interface {
	ReadRange(ctx context.Context, index int, offset int64, length int) ([]byte, error)
}

// archivePattern matches the archive-numbering convention.
var archivePattern = regexp.MustCompile(`^data\.(\d{3})$`)

// ArchiveName returns the conventional file name for an archive index.
func ArchiveName(index int) string {
	return fmt.Sprintf("data.%03d", index)
}

// Store reads byte ranges from archive files in a local directory. A
// handle opened for an archive is reused for subsequent reads; the pool
// is bounded and closes its least recently used handle when full. The
// open-or-reuse decision is serialized, but reads on an obtained handle
// proceed without holding the lock, so different archives never
// serialize on one another.
type Store struct {
	dir    string
	logger *zap.Logger

	mu      sync.Mutex
	handles *lru.Cache[int, *os.File]
}

// NewStore creates a store over dir with at most maxOpen pooled
// handles.
func NewStore(dir string, maxOpen int, logger *zap.Logger) (*Store, error) {
	if maxOpen <= 0 {
		maxOpen = 16
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	handles, err := lru.NewWithEvict(maxOpen, func(index int, f *os.File) {
		_ = f.Close()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create handle pool: %w", err)
	}
	return &Store{dir: dir, logger: logger, handles: handles}, nil
}

// ArchivePath returns the absolute path of an archive index.
func (s *Store) ArchivePath(index int) string {
	return filepath.Join(s.dir, ArchiveName(index))
}

// handle returns the pooled file handle for an archive, opening it on
// first use.
func (s *Store) handle(index int) (*os.File, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f, ok := s.handles.Get(index); ok {
		return f, nil
	}
	path := s.ArchivePath(index)
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	s.handles.Add(index, f)
	s.logger.Debug("archive opened", zap.Int("archive", index), zap.String("path", path))
	return f, nil
}

// ReadRange reads length bytes at offset from an archive. A missing
// archive surfaces as an IOError naming the path, a read past the end
// of the archive as a FormatError. When the range holds an encoded
// block it is returned decompressed. The read is positional, so an
// aborted call leaves the handle clean for the next reader.
func (s *Store) ReadRange(ctx context.Context, index int, offset int64, length int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := s.handle(index)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, length)
	n, err := f.ReadAt(buf, offset)
	if err != nil && err != io.EOF {
		return nil, errs.IO("read", f.Name(), err)
	}
	if n < length {
		return nil, errs.FormatAt(offset, "short read from archive %d: got %d of %d bytes", index, n, length)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if blte.IsEncoded(buf) {
		decoded, err := blte.Decode(buf)
		if err != nil {
			return nil, fmt.Errorf("archive %d at offset %d: %w", index, offset, err)
		}
		return decoded, nil
	}
	return buf, nil
}

// Exists reports whether the archive file is present on disk.
func (s *Store) Exists(index int) bool {
	_, err := os.Stat(s.ArchivePath(index))
	return err == nil
}

// ListArchives scans the data directory for files following the
// archive-numbering convention and returns their indexes in ascending
// order.
func (s *Store) ListArchives() ([]int, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, errs.IO("list", s.dir, err)
	}
	var indexes []int
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		m := archivePattern.FindStringSubmatch(e.Name())
		if m == nil {
			continue
		}
		idx, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		indexes = append(indexes, idx)
	}
	sort.Ints(indexes)
	return indexes, nil
}

// Close releases the pooled handle for one archive, if open.
func (s *Store) Close(index int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles.Remove(index)
}

// CloseAll releases every pooled handle. The store remains usable;
// subsequent reads reopen archives on demand.
func (s *Store) CloseAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handles.Purge()
}
