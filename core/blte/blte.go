package blte

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/zlib"

	"gamedata-manager/core/errs"
)

// Magic is the frame signature at offset 0 of every encoded block.
var Magic = []byte("BLTE")

// Chunk mode tags.
const (
	ModeRaw    = 'N'
	ModeZlib   = 'Z'
	ModeNested = 'F'
)

const (
	frameHeaderSize = 8  // magic + header size
	chunkInfoSize   = 24 // compressed size + decompressed size + md5
)

// chunkInfo is one entry of a frame's chunk table.
type chunkInfo struct {
	compSize   uint32
	decompSize uint32
	checksum   [md5.Size]byte
}

// IsEncoded reports whether buf starts with the frame magic. It never
// mutates or reads past the first four bytes.
func IsEncoded(buf []byte) bool {
	return len(buf) >= len(Magic) && bytes.Equal(buf[:len(Magic)], Magic)
}

// Decode inflates a complete frame and returns the raw bytes. It fails
// with a FormatError when the magic is absent, a declared chunk is
// truncated, a chunk checksum does not match, or a chunk carries an
// unknown mode tag.
func Decode(buf []byte) ([]byte, error) {
	if !IsEncoded(buf) {
		return nil, errs.FormatAt(0, "missing BLTE magic")
	}
	if len(buf) < frameHeaderSize {
		return nil, errs.FormatAt(0, "frame header truncated: %d bytes", len(buf))
	}
	headerSize := binary.BigEndian.Uint32(buf[4:8])

	// Headerless frame: a single chunk spans the rest of the buffer.
	if headerSize == 0 {
		var out bytes.Buffer
		if err := decodeChunk(buf[frameHeaderSize:], frameHeaderSize, 0, &out); err != nil {
			return nil, err
		}
		return out.Bytes(), nil
	}

	chunks, dataStart, err := parseChunkTable(buf, headerSize)
	if err != nil {
		return nil, err
	}

	var total int
	for _, c := range chunks {
		total += int(c.decompSize)
	}
	out := bytes.NewBuffer(make([]byte, 0, total))

	offset := dataStart
	for i, c := range chunks {
		end := offset + int(c.compSize)
		if end > len(buf) {
			return nil, errs.FormatAt(int64(offset), "chunk %d truncated: need %d bytes, have %d", i, c.compSize, len(buf)-offset)
		}
		data := buf[offset:end]
		if sum := md5.Sum(data); sum != c.checksum {
			return nil, errs.FormatAt(int64(offset), "chunk %d checksum mismatch", i)
		}
		if err := decodeChunk(data, offset, int(c.decompSize), out); err != nil {
			return nil, err
		}
		offset = end
	}
	return out.Bytes(), nil
}

// parseChunkTable reads the frame header's chunk table and returns the
// chunk descriptors plus the offset of the first chunk's data.
func parseChunkTable(buf []byte, headerSize uint32) ([]chunkInfo, int, error) {
	if int(headerSize) > len(buf) {
		return nil, 0, errs.FormatAt(frameHeaderSize, "declared header size %d exceeds buffer size %d", headerSize, len(buf))
	}
	if len(buf) < frameHeaderSize+4 {
		return nil, 0, errs.FormatAt(frameHeaderSize, "chunk table header truncated")
	}
	// Flags byte followed by a 24-bit big-endian chunk count.
	count := int(buf[9])<<16 | int(buf[10])<<8 | int(buf[11])
	if count == 0 {
		return nil, 0, errs.FormatAt(frameHeaderSize, "chunk table declares zero chunks")
	}
	tableEnd := frameHeaderSize + 4 + count*chunkInfoSize
	if tableEnd > int(headerSize) || tableEnd > len(buf) {
		return nil, 0, errs.FormatAt(frameHeaderSize, "chunk table truncated: %d chunks do not fit in header of %d bytes", count, headerSize)
	}

	chunks := make([]chunkInfo, count)
	pos := frameHeaderSize + 4
	for i := range chunks {
		chunks[i].compSize = binary.BigEndian.Uint32(buf[pos:])
		chunks[i].decompSize = binary.BigEndian.Uint32(buf[pos+4:])
		copy(chunks[i].checksum[:], buf[pos+8:pos+8+md5.Size])
		pos += chunkInfoSize
	}
	return chunks, int(headerSize), nil
}

// decodeChunk inflates one mode-tagged chunk into out. When decompSize
// is nonzero the inflated length is validated against it.
func decodeChunk(chunk []byte, offset, decompSize int, out *bytes.Buffer) error {
	if len(chunk) == 0 {
		return errs.FormatAt(int64(offset), "empty chunk")
	}
	mode, payload := chunk[0], chunk[1:]
	before := out.Len()

	switch mode {
	case ModeRaw:
		out.Write(payload)

	case ModeZlib:
		zr, err := zlib.NewReader(bytes.NewReader(payload))
		if err != nil {
			return errs.FormatAt(int64(offset), "bad zlib chunk: %v", err)
		}
		_, err = io.Copy(out, zr)
		zr.Close()
		if err != nil {
			return errs.FormatAt(int64(offset), "zlib inflate failed: %v", err)
		}

	case ModeNested:
		inner, err := Decode(payload)
		if err != nil {
			return fmt.Errorf("nested frame at offset %d: %w", offset, err)
		}
		out.Write(inner)

	default:
		return errs.FormatAt(int64(offset), "unknown chunk mode 0x%02x", mode)
	}

	if decompSize > 0 && out.Len()-before != decompSize {
		return errs.FormatAt(int64(offset), "chunk inflated to %d bytes, expected %d", out.Len()-before, decompSize)
	}
	return nil
}
