package gamedata

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"gamedata-manager/core/archive"
	"gamedata-manager/core/blte"
	"gamedata-manager/core/cache"
	"gamedata-manager/core/casc"
	"gamedata-manager/core/logger"
	"gamedata-manager/core/table"
)

// Cache names used in the registry. File-content bytes share one cache;
// each table gets its own, named after the table file.
const fileDataCacheName = "filedata"

// TableData is a loaded table: its parsed header plus the full
// decompressed file bytes for the row decoder.
type TableData struct {
	Header *table.Header
	Raw    []byte
}

// Service runs the asset resolution pipeline. Independent requests may
// run concurrently; each request's steps are sequential, and the only
// blocking points are the archive reads.
type Service struct {
	source  archive.Source
	locate  archive.Locator
	reg     *cache.Registry
	logger  *zap.Logger
	loads   singleflight.Group
	root    *casc.RootIndex
	enc     *casc.EncodingTable
}

// NewService creates a service over an archive source and locator.
// OpenIndices must run before any fetch.
func NewService(source archive.Source, locate archive.Locator, reg *cache.Registry, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		source: source,
		locate: locate,
		reg:    reg,
		logger: logger,
	}
}

// OpenIndices parses the root index and encoding table. Either buffer
// may arrive block-encoded and is decompressed first. Root entries are
// filtered by locale. A salvage error from the root parser is surfaced
// after logging how much was retained, since a partially damaged index
// is still usable.
func (s *Service) OpenIndices(rootData, encodingData []byte, locale casc.LocaleFlags) error {
	rootBuf, err := decodeIfNeeded(rootData)
	if err != nil {
		return fmt.Errorf("root index: %w", err)
	}
	encBuf, err := decodeIfNeeded(encodingData)
	if err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}

	root := casc.NewRootIndex()
	parseErr := root.Parse(rootBuf, locale)

	enc := casc.NewEncodingTable()
	if err := enc.Parse(encBuf); err != nil {
		return fmt.Errorf("encoding table: %w", err)
	}

	s.root = root
	s.enc = enc
	s.logger.Info("indices opened",
		zap.Int("root_entries", root.EntryCount()),
		zap.Int("root_files", root.FileCount()),
		zap.Int("encoding_entries", enc.EntryCount()),
	)
	if parseErr != nil {
		s.logger.Warn("root index damaged, using salvaged entries",
			zap.Int("salvaged", root.EntryCount()),
			zap.Error(parseErr),
		)
		return fmt.Errorf("root index: %w", parseErr)
	}
	return nil
}

// Root exposes the parsed root index for diagnostics.
func (s *Service) Root() *casc.RootIndex { return s.root }

// Encoding exposes the parsed encoding table for diagnostics.
func (s *Service) Encoding() *casc.EncodingTable { return s.enc }

// FetchByPath resolves a human path to raw file bytes. found=false
// means the path, its content key or its location is unknown.
func (s *Service) FetchByPath(ctx context.Context, path string) ([]byte, bool, error) {
	if s.root == nil {
		return nil, false, fmt.Errorf("indices not opened")
	}
	entry := s.root.FindByPath(path)
	if entry == nil {
		return nil, false, nil
	}
	return s.fetchEntry(ctx, entry)
}

// FetchByFileID resolves a numeric file ID to raw file bytes.
func (s *Service) FetchByFileID(ctx context.Context, id uint32) ([]byte, bool, error) {
	if s.root == nil {
		return nil, false, fmt.Errorf("indices not opened")
	}
	entry := s.root.FindByFileID(id)
	if entry == nil {
		return nil, false, nil
	}
	return s.fetchEntry(ctx, entry)
}

// fetchEntry runs the back half of the chain: content key → encoding
// key → location → decompressed bytes, memoized by content key.
func (s *Service) fetchEntry(ctx context.Context, entry *casc.RootEntry) ([]byte, bool, error) {
	files, err := cache.For[string, []byte](s.reg, fileDataCacheName, nil)
	if err != nil {
		return nil, false, err
	}
	ckey := entry.ContentKey.Hex()
	if data, ok := files.Get(ckey); ok {
		return data, true, nil
	}

	encEntry := s.enc.FindEntry(entry.ContentKey[:])
	if encEntry == nil {
		s.logger.Debug("content key not in encoding table",
			zap.String("path", entry.Path),
			zap.String("ckey", ckey),
		)
		return nil, false, nil
	}
	loc, ok := s.locate(encEntry.Keys[0])
	if !ok {
		s.logger.Debug("encoding key not located in any archive",
			zap.String("path", entry.Path),
			zap.String("ckey", ckey),
		)
		return nil, false, nil
	}

	data, err := s.source.ReadRange(ctx, loc.Archive, loc.Offset, loc.Size)
	if err != nil {
		return nil, false, fmt.Errorf("fetch %s: %w", entry.Path, err)
	}
	files.SetSized(ckey, data, len(data))
	return data, true, nil
}

// LoadTable fetches and parses a table file, caching the result in a
// registry cache named after the file. Concurrent loads of the same
// table collapse into one fetch.
func (s *Service) LoadTable(ctx context.Context, name string) (*TableData, bool, error) {
	tables, err := cache.For[string, *TableData](s.reg, name, nil)
	if err != nil {
		return nil, false, err
	}
	key := casc.NormalizePath(name)
	if td, ok := tables.Get(key); ok {
		return td, true, nil
	}

	v, err, _ := s.loads.Do(key, func() (any, error) {
		if td, ok := tables.Get(key); ok {
			return td, nil
		}
		raw, found, err := s.FetchByPath(ctx, name)
		if err != nil {
			return nil, err
		}
		if !found {
			return nil, nil
		}
		header, err := table.Parse(raw)
		if err != nil {
			return nil, fmt.Errorf("table %s: %w", name, err)
		}
		td := &TableData{Header: header, Raw: raw}
		tables.SetSized(key, td, len(raw))
		logger.WithFile(s.logger, key).Debug("table loaded",
			zap.String("signature", header.Signature),
			zap.Uint32("records", header.RecordCount),
		)
		return td, nil
	})
	if err != nil {
		return nil, false, err
	}
	if v == nil {
		return nil, false, nil
	}
	return v.(*TableData), true, nil
}

func decodeIfNeeded(data []byte) ([]byte, error) {
	if blte.IsEncoded(data) {
		return blte.Decode(data)
	}
	return data, nil
}
