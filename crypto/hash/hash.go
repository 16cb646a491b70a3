// Package hash includes all hash-function related helpers for the dAPI server.
package hash

import (
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
)

// Keccak256 hashes the packed concatenation of the inputs. No length
// prefixes or padding are inserted between inputs.
func Keccak256(data ...[]byte) [32]byte {
	return crypto.Keccak256Hash(data...)
}

// Keccak256Bytes is Keccak256 returning a freshly allocated slice.
func Keccak256Bytes(data ...[]byte) []byte {
	h := Keccak256(data...)
	return h[:]
}

// Keccak256Roots hashes the packed concatenation of 32 byte roots.
func Keccak256Roots(roots ...[32]byte) [32]byte {
	return Keccak256(bytesutil.ConcatRoots(roots...))
}
