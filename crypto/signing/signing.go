// Package signing verifies and produces airnode signatures over signed beacon
// update messages. The scheme is selected by the length of the airnode key:
// 32 byte keys are ed25519 public keys and 20 byte keys are secp256k1
// addresses recovered from Ethereum signed message signatures.
package signing

import (
	"bytes"
	"crypto/ed25519"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
)

// Scheme identifies a supported airnode signature scheme.
type Scheme uint8

const (
	// UnknownScheme is returned for keys of unsupported length.
	UnknownScheme Scheme = iota
	// Ed25519 signs the raw 32 byte message.
	Ed25519
	// Secp256k1 signs the Ethereum signed message digest of the 32 byte message.
	Secp256k1
)

const (
	// Ed25519KeyLength is the length of an ed25519 airnode key.
	Ed25519KeyLength = ed25519.PublicKeySize
	// AddressLength is the length of a secp256k1 airnode address.
	AddressLength = 20
	// Ed25519SignatureLength is the length of an ed25519 signature.
	Ed25519SignatureLength = ed25519.SignatureSize
	// Secp256k1SignatureLength is the length of a recoverable secp256k1 signature.
	Secp256k1SignatureLength = crypto.SignatureLength
)

// String returns the human readable scheme name.
func (s Scheme) String() string {
	switch s {
	case Ed25519:
		return "ed25519"
	case Secp256k1:
		return "secp256k1"
	default:
		return "unknown"
	}
}

// SchemeFromString parses a scheme name.
func SchemeFromString(s string) Scheme {
	switch s {
	case "ed25519":
		return Ed25519
	case "secp256k1":
		return Secp256k1
	default:
		return UnknownScheme
	}
}

// SchemeForKey returns the signature scheme an airnode key belongs to.
func SchemeForKey(key []byte) Scheme {
	switch len(key) {
	case Ed25519KeyLength:
		return Ed25519
	case AddressLength:
		return Secp256k1
	default:
		return UnknownScheme
	}
}

// Verify reports whether sig is a valid signature of message by the airnode
// identified by key. It never panics on malformed input.
func Verify(key []byte, message [32]byte, sig []byte) bool {
	switch SchemeForKey(key) {
	case Ed25519:
		if len(sig) != Ed25519SignatureLength {
			return false
		}
		return ed25519.Verify(key, message[:], sig)
	case Secp256k1:
		return verifySecp256k1(key, message, sig)
	default:
		return false
	}
}

func verifySecp256k1(address []byte, message [32]byte, sig []byte) bool {
	if len(sig) != Secp256k1SignatureLength {
		return false
	}
	normalized := make([]byte, Secp256k1SignatureLength)
	copy(normalized, sig)
	if normalized[64] >= 27 {
		normalized[64] -= 27
	}
	r := new(big.Int).SetBytes(normalized[:32])
	s := new(big.Int).SetBytes(normalized[32:64])
	if !crypto.ValidateSignatureValues(normalized[64], r, s, true) {
		return false
	}
	pub, err := crypto.SigToPub(accounts.TextHash(message[:]), normalized)
	if err != nil {
		return false
	}
	return bytes.Equal(crypto.PubkeyToAddress(*pub).Bytes(), address)
}
