package signing_test

import (
	"context"
	"testing"

	"github.com/oraclelabs/dapi-server/crypto/hash"
	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func TestSchemeForKey(t *testing.T) {
	assert.Equal(t, signing.Ed25519, signing.SchemeForKey(make([]byte, 32)))
	assert.Equal(t, signing.Secp256k1, signing.SchemeForKey(make([]byte, 20)))
	assert.Equal(t, signing.UnknownScheme, signing.SchemeForKey(make([]byte, 33)))
	assert.Equal(t, signing.UnknownScheme, signing.SchemeForKey(nil))
	assert.Equal(t, signing.Secp256k1, signing.SchemeFromString(signing.Secp256k1.String()))
	assert.Equal(t, signing.Ed25519, signing.SchemeFromString(signing.Ed25519.String()))
	assert.Equal(t, signing.UnknownScheme, signing.SchemeFromString("bls"))
}

func TestSignVerify(t *testing.T) {
	for _, scheme := range []signing.Scheme{signing.Ed25519, signing.Secp256k1} {
		t.Run(scheme.String(), func(t *testing.T) {
			signer, err := signing.GenerateKey(scheme)
			require.NoError(t, err)
			assert.Equal(t, scheme, signing.SchemeForKey(signer.PublicKey()))

			msg := hash.Keccak256([]byte("message"))
			sig, err := signer.Sign(msg)
			require.NoError(t, err)
			assert.Equal(t, true, signing.Verify(signer.PublicKey(), msg, sig))

			other := hash.Keccak256([]byte("other message"))
			assert.Equal(t, false, signing.Verify(signer.PublicKey(), other, sig))

			tampered := make([]byte, len(sig))
			copy(tampered, sig)
			tampered[10] ^= 0xff
			assert.Equal(t, false, signing.Verify(signer.PublicKey(), msg, tampered))

			assert.Equal(t, false, signing.Verify(signer.PublicKey(), msg, sig[:len(sig)-1]))
			assert.Equal(t, false, signing.Verify(signer.PublicKey(), msg, nil))
			assert.Equal(t, false, signing.Verify(append(signer.PublicKey(), 0), msg, sig))

			otherSigner, err := signing.GenerateKey(scheme)
			require.NoError(t, err)
			assert.Equal(t, false, signing.Verify(otherSigner.PublicKey(), msg, sig))
		})
	}
}

func TestSecp256k1_AcceptsRawRecoveryID(t *testing.T) {
	signer, err := signing.GenerateKey(signing.Secp256k1)
	require.NoError(t, err)
	msg := hash.Keccak256([]byte("message"))
	sig, err := signer.Sign(msg)
	require.NoError(t, err)
	require.Equal(t, true, sig[64] == 27 || sig[64] == 28)
	sig[64] -= 27
	assert.Equal(t, true, signing.Verify(signer.PublicKey(), msg, sig))
}

func TestSignerFromBytes(t *testing.T) {
	for _, scheme := range []signing.Scheme{signing.Ed25519, signing.Secp256k1} {
		t.Run(scheme.String(), func(t *testing.T) {
			signer, err := signing.GenerateKey(scheme)
			require.NoError(t, err)
			restored, err := signing.SignerFromBytes(scheme, signer.Marshal())
			require.NoError(t, err)
			assert.DeepEqual(t, signer.PublicKey(), restored.PublicKey())
		})
	}
	_, err := signing.SignerFromBytes(signing.Ed25519, []byte{1, 2})
	assert.ErrorContains(t, "ed25519 seed must be 32 bytes", err)
	_, err = signing.SignerFromBytes(signing.UnknownScheme, []byte{1})
	assert.ErrorIs(t, err, signing.ErrUnknownScheme)
	_, err = signing.GenerateKey(signing.UnknownScheme)
	assert.ErrorIs(t, err, signing.ErrUnknownScheme)
}

func TestSignatureSet_Verify(t *testing.T) {
	set := signing.NewSet()
	for i := 0; i < 8; i++ {
		scheme := signing.Ed25519
		if i%2 == 0 {
			scheme = signing.Secp256k1
		}
		signer, err := signing.GenerateKey(scheme)
		require.NoError(t, err)
		msg := hash.Keccak256([]byte{byte(i)})
		sig, err := signer.Sign(msg)
		require.NoError(t, err)
		set.Add(signer.PublicKey(), msg, sig)
	}
	require.Equal(t, 8, set.Len())
	require.NoError(t, set.Verify(context.Background()))

	set.Messages[5] = hash.Keccak256([]byte("forged"))
	err := set.Verify(context.Background())
	assert.ErrorIs(t, err, signing.ErrInvalidSignature)
	assert.ErrorContains(t, "signature 5", err)
}

func TestSignatureSet_Malformed(t *testing.T) {
	set := signing.NewSet()
	set.Keys = append(set.Keys, []byte{1})
	assert.ErrorContains(t, "signature set is malformed", set.Verify(context.Background()))
}
