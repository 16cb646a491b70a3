package hash_test

import (
	"encoding/hex"
	"testing"

	"github.com/oraclelabs/dapi-server/crypto/hash"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func TestKeccak256_Packed(t *testing.T) {
	want, err := hex.DecodeString("f1885eda54b7a053318cd41e2093220dab15d65381b1157a3633a83bfd5c9239")
	require.NoError(t, err)
	h := hash.Keccak256([]byte{1}, []byte{2}, []byte{3})
	assert.DeepEqual(t, want, h[:])

	// Packed encoding ignores how the input is split.
	assert.Equal(t, h, hash.Keccak256([]byte{1, 2, 3}))
	assert.Equal(t, h, hash.Keccak256([]byte{1, 2}, nil, []byte{3}))
}

func TestKeccak256_Empty(t *testing.T) {
	want, err := hex.DecodeString("c5d2460186f7233c927e7db2dcc703c0e500b653ca82273b7bfad8045d85a470")
	require.NoError(t, err)
	assert.DeepEqual(t, want, hash.Keccak256Bytes())
}

func TestKeccak256Roots(t *testing.T) {
	a := [32]byte{1}
	b := [32]byte{2}
	assert.Equal(t, hash.Keccak256(a[:], b[:]), hash.Keccak256Roots(a, b))
	assert.NotEqual(t, hash.Keccak256Roots(a, b), hash.Keccak256Roots(b, a))
}
