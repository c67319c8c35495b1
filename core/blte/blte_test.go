package blte_test

import (
	"bytes"
	"crypto/md5"
	"encoding/binary"
	"errors"
	"testing"

	"github.com/klauspost/compress/zlib"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamedata-manager/core/blte"
	"gamedata-manager/core/errs"
)

// headerlessFrame wraps one mode-tagged chunk in a frame with no chunk
// table.
func headerlessFrame(mode byte, payload []byte) []byte {
	frame := append([]byte("BLTE"), 0, 0, 0, 0)
	frame = append(frame, mode)
	return append(frame, payload...)
}

// tableFrame builds a frame with a chunk table. Each element is a
// complete mode-tagged chunk; decompSizes declares the inflated sizes.
func tableFrame(chunks [][]byte, decompSizes []int) []byte {
	headerSize := 12 + len(chunks)*24

	var frame bytes.Buffer
	frame.WriteString("BLTE")
	binary.Write(&frame, binary.BigEndian, uint32(headerSize))
	frame.WriteByte(0x0F) // flags
	count := len(chunks)
	frame.Write([]byte{byte(count >> 16), byte(count >> 8), byte(count)})
	for i, chunk := range chunks {
		binary.Write(&frame, binary.BigEndian, uint32(len(chunk)))
		binary.Write(&frame, binary.BigEndian, uint32(decompSizes[i]))
		sum := md5.Sum(chunk)
		frame.Write(sum[:])
	}
	for _, chunk := range chunks {
		frame.Write(chunk)
	}
	return frame.Bytes()
}

func deflate(t *testing.T, data []byte) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zlib.NewWriter(&buf)
	_, err := zw.Write(data)
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestIsEncoded(t *testing.T) {
	assert.True(t, blte.IsEncoded([]byte("BLTE1234")))
	assert.False(t, blte.IsEncoded([]byte("WDC3....")))
	assert.False(t, blte.IsEncoded([]byte("BLT")))
	assert.False(t, blte.IsEncoded(nil))
}

func TestDecodeRawHeaderless(t *testing.T) {
	payload := []byte("the quick brown fox")
	out, err := blte.Decode(headerlessFrame('N', payload))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeZlibHeaderless(t *testing.T) {
	payload := bytes.Repeat([]byte("records "), 100)
	out, err := blte.Decode(headerlessFrame('Z', deflate(t, payload)))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeMultiChunk(t *testing.T) {
	part1 := []byte("first chunk raw bytes ")
	part2 := bytes.Repeat([]byte("compressed part "), 50)

	chunk1 := append([]byte{'N'}, part1...)
	chunk2 := append([]byte{'Z'}, deflate(t, part2)...)

	frame := tableFrame([][]byte{chunk1, chunk2}, []int{len(part1), len(part2)})
	out, err := blte.Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, append(append([]byte(nil), part1...), part2...), out)
}

func TestDecodeNestedFrame(t *testing.T) {
	payload := []byte("inner payload")
	inner := headerlessFrame('N', payload)
	out, err := blte.Decode(headerlessFrame('F', inner))
	require.NoError(t, err)
	assert.Equal(t, payload, out)
}

func TestDecodeMissingMagic(t *testing.T) {
	_, err := blte.Decode([]byte("NOPE....data"))
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
}

func TestDecodeTruncatedChunk(t *testing.T) {
	chunk := append([]byte{'N'}, []byte("short")...)
	frame := tableFrame([][]byte{chunk}, []int{5})
	// Cut the last two payload bytes after the table was built.
	_, err := blte.Decode(frame[:len(frame)-2])
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Msg, "truncated")
}

func TestDecodeChecksumMismatch(t *testing.T) {
	chunk := append([]byte{'N'}, []byte("payload")...)
	frame := tableFrame([][]byte{chunk}, []int{7})
	frame[len(frame)-1] ^= 0xFF

	_, err := blte.Decode(frame)
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Msg, "checksum")
}

func TestDecodeDeclaredSizeMismatch(t *testing.T) {
	chunk := append([]byte{'N'}, []byte("payload")...)
	frame := tableFrame([][]byte{chunk}, []int{999})

	_, err := blte.Decode(frame)
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
}

func TestDecodeUnknownMode(t *testing.T) {
	_, err := blte.Decode(headerlessFrame('X', []byte("data")))
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
	assert.Contains(t, ferr.Msg, "unknown chunk mode")
}

func TestDecodeBadZlibStream(t *testing.T) {
	_, err := blte.Decode(headerlessFrame('Z', []byte("not zlib at all")))
	var ferr *errs.FormatError
	require.True(t, errors.As(err, &ferr))
}

func TestDecodeDoesNotMutateInput(t *testing.T) {
	frame := headerlessFrame('N', []byte("immutability"))
	saved := append([]byte(nil), frame...)
	_, err := blte.Decode(frame)
	require.NoError(t, err)
	assert.Equal(t, saved, frame)
}
