package signing

import (
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rand"

	"github.com/ethereum/go-ethereum/accounts"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/pkg/errors"
)

// ErrUnknownScheme is returned when a signer is requested for an unsupported scheme.
var ErrUnknownScheme = errors.New("unknown signature scheme")

// Signer produces airnode signatures over update messages.
type Signer interface {
	Scheme() Scheme
	// PublicKey returns the airnode key: the ed25519 public key or the
	// secp256k1 address.
	PublicKey() []byte
	Sign(message [32]byte) ([]byte, error)
	// Marshal returns the secret key bytes.
	Marshal() []byte
}

// GenerateKey creates a random signer for the scheme.
func GenerateKey(scheme Scheme) (Signer, error) {
	switch scheme {
	case Ed25519:
		_, priv, err := ed25519.GenerateKey(rand.Reader)
		if err != nil {
			return nil, errors.Wrap(err, "could not generate ed25519 key")
		}
		return &ed25519Signer{priv: priv}, nil
	case Secp256k1:
		priv, err := crypto.GenerateKey()
		if err != nil {
			return nil, errors.Wrap(err, "could not generate secp256k1 key")
		}
		return &secp256k1Signer{priv: priv}, nil
	default:
		return nil, ErrUnknownScheme
	}
}

// SignerFromBytes restores a signer from its marshaled secret key.
func SignerFromBytes(scheme Scheme, secret []byte) (Signer, error) {
	switch scheme {
	case Ed25519:
		if len(secret) != ed25519.SeedSize {
			return nil, errors.Errorf("ed25519 seed must be %d bytes, got %d", ed25519.SeedSize, len(secret))
		}
		return &ed25519Signer{priv: ed25519.NewKeyFromSeed(secret)}, nil
	case Secp256k1:
		priv, err := crypto.ToECDSA(secret)
		if err != nil {
			return nil, errors.Wrap(err, "could not parse secp256k1 key")
		}
		return &secp256k1Signer{priv: priv}, nil
	default:
		return nil, ErrUnknownScheme
	}
}

type ed25519Signer struct {
	priv ed25519.PrivateKey
}

func (s *ed25519Signer) Scheme() Scheme { return Ed25519 }

func (s *ed25519Signer) PublicKey() []byte {
	pub, ok := s.priv.Public().(ed25519.PublicKey)
	if !ok {
		return nil
	}
	return pub
}

func (s *ed25519Signer) Sign(message [32]byte) ([]byte, error) {
	return ed25519.Sign(s.priv, message[:]), nil
}

func (s *ed25519Signer) Marshal() []byte {
	return s.priv.Seed()
}

type secp256k1Signer struct {
	priv *ecdsa.PrivateKey
}

func (s *secp256k1Signer) Scheme() Scheme { return Secp256k1 }

func (s *secp256k1Signer) PublicKey() []byte {
	return crypto.PubkeyToAddress(s.priv.PublicKey).Bytes()
}

// Sign signs the Ethereum signed message digest and returns the signature
// with a 27/28 recovery byte.
func (s *secp256k1Signer) Sign(message [32]byte) ([]byte, error) {
	sig, err := crypto.Sign(accounts.TextHash(message[:]), s.priv)
	if err != nil {
		return nil, errors.Wrap(err, "could not sign message")
	}
	sig[64] += 27
	return sig, nil
}

func (s *secp256k1Signer) Marshal() []byte {
	return crypto.FromECDSA(s.priv)
}
