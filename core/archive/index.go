package archive

import (
	"encoding/hex"
	"encoding/json"
	"os"
	"strings"

	"gamedata-manager/core/errs"
)

// Location is the physical position of one encoded file.
type Location struct {
	// Archive is the numeric archive index.
	Archive int `json:"archive"`
	// Offset is the byte offset inside the archive.
	Offset int64 `json:"offset"`
	// Size is the stored (possibly compressed) byte length.
	Size int `json:"size"`
}

// Locator resolves an encoding key to its archive location. It is the
// hand-off point between the index lookups and the byte reads; absent
// keys report ok=false, never an error.
type Locator func(encodingKey []byte) (Location, bool)

// Index maps hex encoding keys to archive locations. The on-disk form
// is a JSON object keyed by lowercase hex encoding key.
type Index struct {
	locations map[string]Location
}

// LoadIndex reads an archive-location index file.
func LoadIndex(path string) (*Index, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.IO("open", path, err)
	}
	return ParseIndex(path, data)
}

// ParseIndex decodes index data; name is used for error attribution.
func ParseIndex(name string, data []byte) (*Index, error) {
	raw := make(map[string]Location)
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, errs.FormatIn(name, "bad location index: %v", err)
	}
	locations := make(map[string]Location, len(raw))
	for key, loc := range raw {
		locations[strings.ToLower(key)] = loc
	}
	return &Index{locations: locations}, nil
}

// NewIndex builds an index from an in-memory location map, keyed by
// hex encoding key.
func NewIndex(locations map[string]Location) *Index {
	idx := &Index{locations: make(map[string]Location, len(locations))}
	for key, loc := range locations {
		idx.locations[strings.ToLower(key)] = loc
	}
	return idx
}

// Locate resolves an encoding key.
func (i *Index) Locate(encodingKey []byte) (Location, bool) {
	loc, ok := i.locations[hex.EncodeToString(encodingKey)]
	return loc, ok
}

// Locator returns the lookup as a Locator for the pipeline.
func (i *Index) Locator() Locator {
	return i.Locate
}

// Locations returns a copy of the location map, keyed by lowercase hex
// encoding key.
func (i *Index) Locations() map[string]Location {
	out := make(map[string]Location, len(i.locations))
	for key, loc := range i.locations {
		out[key] = loc
	}
	return out
}

// Len returns the number of indexed keys.
func (i *Index) Len() int {
	return len(i.locations)
}
