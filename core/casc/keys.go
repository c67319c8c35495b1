package casc

import "encoding/hex"

// ContentKeySize is the fixed length of a content key in the root index.
const ContentKeySize = 16

// ContentKey identifies file content independently of where the bytes
// physically live.
type ContentKey [ContentKeySize]byte

// Hex returns the lowercase hex encoding of the key.
func (k ContentKey) Hex() string {
	return hex.EncodeToString(k[:])
}

// IsZero reports whether the key is all zero bytes.
func (k ContentKey) IsZero() bool {
	return k == ContentKey{}
}

// ContentKeyFromSlice copies b into a ContentKey. It fails when b is
// not exactly ContentKeySize bytes.
func ContentKeyFromSlice(b []byte) (ContentKey, bool) {
	var k ContentKey
	if len(b) != ContentKeySize {
		return k, false
	}
	copy(k[:], b)
	return k, true
}
