package util

import (
	"testing"

	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/oraclelabs/dapi-server/testing/require"
)

// Airnode is a signer with a fixed template, producing updates for one beacon.
type Airnode struct {
	Signer     signing.Signer
	TemplateID [32]byte
}

// DeterministicAirnodes returns n airnodes with reproducible keys,
// alternating between ed25519 and secp256k1 signers.
func DeterministicAirnodes(t testing.TB, n int) []*Airnode {
	airnodes := make([]*Airnode, n)
	for i := 0; i < n; i++ {
		seed := bytesutil.ToBytes32(bytesutil.Bytes8BigEndian(uint64(i + 1)))
		seed[31] = 0x01
		scheme := signing.Ed25519
		if i%2 == 1 {
			scheme = signing.Secp256k1
		}
		signer, err := signing.SignerFromBytes(scheme, seed[:])
		require.NoError(t, err)
		template := [32]byte{0xee}
		template[31] = byte(i + 1)
		airnodes[i] = &Airnode{Signer: signer, TemplateID: template}
	}
	return airnodes
}

// BeaconID returns the id of the airnode's beacon.
func (a *Airnode) BeaconID(t testing.TB) [32]byte {
	id, err := ids.DeriveBeaconID(a.Signer.PublicKey(), a.TemplateID)
	require.NoError(t, err)
	return id
}

// Update returns a signed update of value at timestamp.
func (a *Airnode) Update(t testing.TB, value int64, timestamp uint64) *signed.Update {
	u, err := signed.Sign(a.Signer, a.TemplateID, timestamp, primitives.Int256FromInt64(value))
	require.NoError(t, err)
	return u
}

// Principal returns a test principal whose first byte is b.
func Principal(b byte) [32]byte {
	return [32]byte{b}
}
