package signed_test

import (
	"context"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/crypto"
	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

var now = time.Unix(1650000000, 0)

func signedUpdate(t *testing.T, scheme signing.Scheme, value int64, timestamp uint64) *signed.Update {
	signer, err := signing.GenerateKey(scheme)
	require.NoError(t, err)
	u, err := signed.Sign(signer, [32]byte{0x01}, timestamp, primitives.Int256FromInt64(value))
	require.NoError(t, err)
	return u
}

func TestMessage_Layout(t *testing.T) {
	templateID := [32]byte{0xaa}
	data := signed.EncodeValue(uint256.NewInt(123))
	packed := append(append(append([]byte{}, templateID[:]...), bytesutil.Uint64ToWord(1000)...), data...)
	want := crypto.Keccak256Hash(packed)
	assert.Equal(t, [32]byte(want), signed.Message(templateID, 1000, data))
}

func TestTimestampIsValid(t *testing.T) {
	n := uint64(now.Unix())
	tests := []struct {
		name      string
		timestamp uint64
		valid     bool
	}{
		{name: "now", timestamp: n, valid: true},
		{name: "oldest accepted", timestamp: n - 3599, valid: true},
		{name: "too old", timestamp: n - 3600, valid: false},
		{name: "latest accepted", timestamp: n + 899, valid: true},
		{name: "too far in future", timestamp: n + 900, valid: false},
		{name: "zero", timestamp: 0, valid: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, signed.TimestampIsValid(tt.timestamp, now))
		})
	}
}

func TestTimestampIsValid_UsesConfig(t *testing.T) {
	params.SetupTestConfigCleanup(t)
	cfg := params.DapiConfig().Copy()
	cfg.MaxTimestampAge = 10
	params.OverrideDapiConfig(cfg)
	assert.Equal(t, false, signed.TimestampIsValid(uint64(now.Unix())-10, now))
	assert.Equal(t, true, signed.TimestampIsValid(uint64(now.Unix())-9, now))
}

func TestUpdate_Verify(t *testing.T) {
	for _, scheme := range []signing.Scheme{signing.Ed25519, signing.Secp256k1} {
		t.Run(scheme.String(), func(t *testing.T) {
			u := signedUpdate(t, scheme, 123, uint64(now.Unix()))
			verified, err := u.Verify(now)
			require.NoError(t, err)
			wantID, err := ids.DeriveBeaconID(u.Airnode, u.TemplateID)
			require.NoError(t, err)
			assert.Equal(t, wantID, verified.BeaconID)
			assert.Equal(t, int64(123), verified.Datapoint.BigValue().Int64())
			assert.Equal(t, uint32(now.Unix()), verified.Datapoint.Timestamp)
		})
	}
}

func TestUpdate_Verify_Failures(t *testing.T) {
	ts := uint64(now.Unix())

	u := signedUpdate(t, signing.Ed25519, 1, ts-4000)
	_, err := u.Verify(now)
	assert.ErrorIs(t, err, signed.ErrInvalidTimestamp)

	u = signedUpdate(t, signing.Ed25519, 1, ts)
	u.Signature[0] ^= 0xff
	_, err = u.Verify(now)
	assert.ErrorIs(t, err, signed.ErrInvalidSignature)

	u = signedUpdate(t, signing.Secp256k1, 1, ts)
	u.Data = append(u.Data, 0)
	_, err = u.Verify(now)
	assert.ErrorIs(t, err, signed.ErrInvalidSignature, "data is covered by the signature")

	u = signedUpdate(t, signing.Ed25519, 1, ts)
	u.TemplateID = [32]byte{}
	_, err = u.Verify(now)
	assert.ErrorIs(t, err, ids.ErrZeroIdentifier)

	u = signedUpdate(t, signing.Ed25519, 1, uint64(^uint32(0))+1)
	_, err = u.Verify(time.Unix(int64(^uint32(0)), 0))
	assert.ErrorIs(t, err, signed.ErrInvalidTimestamp)
}

func TestUpdate_Verify_InvalidDataLength(t *testing.T) {
	signer, err := signing.GenerateKey(signing.Ed25519)
	require.NoError(t, err)
	ts := uint64(now.Unix())
	data := make([]byte, 31)
	sig, err := signer.Sign(signed.Message([32]byte{1}, ts, data))
	require.NoError(t, err)
	u := &signed.Update{Airnode: signer.PublicKey(), TemplateID: [32]byte{1}, Timestamp: ts, Data: data, Signature: sig}
	_, err = u.Verify(now)
	assert.ErrorIs(t, err, signed.ErrInvalidDataLength)
}

func TestUpdate_Verify_ValueOutOfRange(t *testing.T) {
	signer, err := signing.GenerateKey(signing.Ed25519)
	require.NoError(t, err)
	value := new(uint256.Int).Lsh(uint256.NewInt(1), 230)
	u, err := signed.Sign(signer, [32]byte{1}, uint64(now.Unix()), value)
	require.NoError(t, err)
	_, err = u.Verify(now)
	assert.ErrorIs(t, err, primitives.ErrValueOutOfRange)
}

func TestDecodeValue_Negative(t *testing.T) {
	value, err := signed.DecodeValue(signed.EncodeValue(primitives.Int256FromInt64(-42)))
	require.NoError(t, err)
	assert.Equal(t, int64(-42), primitives.Int256ToBig(value).Int64())
}

func TestVerifyBatch(t *testing.T) {
	ts := uint64(now.Unix())
	updates := []*signed.Update{
		signedUpdate(t, signing.Ed25519, 100, ts),
		signedUpdate(t, signing.Secp256k1, 105, ts-1),
		signedUpdate(t, signing.Ed25519, 110, ts-2),
	}
	verified, err := signed.VerifyBatch(context.Background(), updates, now)
	require.NoError(t, err)
	require.Equal(t, 3, len(verified))
	assert.Equal(t, int64(105), verified[1].Datapoint.BigValue().Int64())
	assert.Equal(t, uint32(ts-2), verified[2].Datapoint.Timestamp)

	updates[2].Signature[3] ^= 0x01
	updates[1].Signature[3] ^= 0x01
	_, err = signed.VerifyBatch(context.Background(), updates, now)
	assert.ErrorIs(t, err, signed.ErrInvalidSignature)
	assert.ErrorContains(t, "update 1", err)

	updates[0].Timestamp = 1
	_, err = signed.VerifyBatch(context.Background(), updates, now)
	assert.ErrorIs(t, err, signed.ErrInvalidTimestamp)
	assert.ErrorContains(t, "update 0", err)
}
