// Package bytesutil defines helper methods for converting integers and
// identifiers to and from fixed-width byte slices.
package bytesutil

import (
	"encoding/binary"
	"encoding/hex"
	"strings"

	"github.com/pkg/errors"
)

// ToBytes32 is a convenience method for converting a byte slice to a fix
// sized 32 byte array. This method will truncate the input if it is larger
// than 32 bytes.
func ToBytes32(x []byte) [32]byte {
	var y [32]byte
	copy(y[:], x)
	return y
}

// LeftPadBytes pads b with zeroes on the left up to size. Slices longer than
// size are returned unchanged.
func LeftPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded[size-len(b):], b)
	return padded
}

// RightPadBytes pads b with zeroes on the right up to size. Slices longer
// than size are returned unchanged.
func RightPadBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	padded := make([]byte, size)
	copy(padded, b)
	return padded
}

// Uint64ToWord encodes x as a 32 byte big endian word, the width of an
// unsigned 256 bit integer.
func Uint64ToWord(x uint64) []byte {
	word := make([]byte, 32)
	binary.BigEndian.PutUint64(word[24:], x)
	return word
}

// Bytes4BigEndian returns the big endian encoding of x.
func Bytes4BigEndian(x uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, x)
	return b
}

// FromBytes4BigEndian decodes a 4 byte big endian value. Short inputs decode
// to zero.
func FromBytes4BigEndian(b []byte) uint32 {
	if len(b) < 4 {
		return 0
	}
	return binary.BigEndian.Uint32(b)
}

// Bytes8BigEndian returns the big endian encoding of x.
func Bytes8BigEndian(x uint64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, x)
	return b
}

// FromBytes8BigEndian decodes an 8 byte big endian value. Short inputs decode
// to zero.
func FromBytes8BigEndian(b []byte) uint64 {
	if len(b) < 8 {
		return 0
	}
	return binary.BigEndian.Uint64(b)
}

// ZeroRoot returns whether or not a root is of proper length and non-zero hash.
func ZeroRoot(root []byte) bool {
	for _, b := range root {
		if b != 0 {
			return false
		}
	}
	return true
}

// SafeCopyBytes will copy and return a non-nil byte slice, otherwise it returns nil.
func SafeCopyBytes(cp []byte) []byte {
	if cp != nil {
		copied := make([]byte, len(cp))
		copy(copied, cp)
		return copied
	}
	return nil
}

// ConcatRoots concatenates 32 byte roots in order.
func ConcatRoots(roots ...[32]byte) []byte {
	out := make([]byte, 0, 32*len(roots))
	for i := range roots {
		out = append(out, roots[i][:]...)
	}
	return out
}

// DecodeHexWithPrefix decodes a 0x prefixed hex string.
func DecodeHexWithPrefix(s string) ([]byte, error) {
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		return nil, errors.Errorf("hex string %q is missing 0x prefix", s)
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return nil, errors.Wrapf(err, "could not decode hex string %q", s)
	}
	return b, nil
}

// DecodeHexBytes32 decodes a 0x prefixed hex string of exactly 32 bytes.
func DecodeHexBytes32(s string) ([32]byte, error) {
	b, err := DecodeHexWithPrefix(s)
	if err != nil {
		return [32]byte{}, err
	}
	if len(b) != 32 {
		return [32]byte{}, errors.Errorf("expected 32 bytes, got %d", len(b))
	}
	return ToBytes32(b), nil
}

// Trunc truncates the byte slices to 6 bytes.
func Trunc(x []byte) []byte {
	if len(x) > 6 {
		return x[:6]
	}
	return x
}
