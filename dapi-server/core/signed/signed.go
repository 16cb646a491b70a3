// Package signed verifies airnode signed beacon updates. Verification is
// stateless: the freshness check against the stored beacon is left to the
// caller holding the database transaction.
package signed

import (
	"time"

	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/crypto/hash"
	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

var (
	// ErrInvalidTimestamp is returned for timestamps outside the acceptance window.
	ErrInvalidTimestamp = errors.New("invalid timestamp")
	// ErrInvalidSignature is returned when the airnode did not sign the update.
	ErrInvalidSignature = errors.New("invalid signature")
	// ErrInvalidDataLength is returned when the data is not a single ABI encoded int256.
	ErrInvalidDataLength = errors.New("invalid data length")
)

// Update is a reading signed by an airnode for one template.
type Update struct {
	Airnode    []byte
	TemplateID [32]byte
	Timestamp  uint64
	Data       []byte
	Signature  []byte
}

// Verified is the outcome of a successful verification.
type Verified struct {
	BeaconID  [32]byte
	Datapoint *primitives.Datapoint
}

// Message returns keccak256(templateID || uint256(timestamp) || data), the
// digest an airnode signs.
func Message(templateID [32]byte, timestamp uint64, data []byte) [32]byte {
	return hash.Keccak256(templateID[:], bytesutil.Uint64ToWord(timestamp), data)
}

// TimestampIsValid reports whether timestamp lies in the acceptance window
// around now: not older than MaxTimestampAge and not more than
// MaxTimestampDrift ahead.
func TimestampIsValid(timestamp uint64, now time.Time) bool {
	cfg := params.DapiConfig()
	unixNow := now.Unix()
	if unixNow < 0 {
		return false
	}
	n := uint64(unixNow)
	return timestamp+cfg.MaxTimestampAge > n && timestamp < n+cfg.MaxTimestampDrift
}

// EncodeValue ABI encodes a signed value as a 32 byte two's complement word.
func EncodeValue(value *uint256.Int) []byte {
	word := value.Bytes32()
	return word[:]
}

// DecodeValue decodes an ABI encoded int256 and checks it fits in int224.
func DecodeValue(data []byte) (*uint256.Int, error) {
	if len(data) != params.DapiConfig().EncodedValueLength {
		return nil, errors.Wrapf(ErrInvalidDataLength, "got %d bytes", len(data))
	}
	value := new(uint256.Int).SetBytes(data)
	if err := primitives.CheckInt224(value); err != nil {
		return nil, err
	}
	return value, nil
}

// BeaconID derives the id of the beacon the update targets.
func (u *Update) BeaconID() ([32]byte, error) {
	return ids.DeriveBeaconID(u.Airnode, u.TemplateID)
}

// Message returns the digest the update signature covers.
func (u *Update) Message() [32]byte {
	return Message(u.TemplateID, u.Timestamp, u.Data)
}

// Verify checks everything about the update that does not depend on stored
// state, in order: beacon id inputs, timestamp window, signature, data width
// and value range.
func (u *Update) Verify(now time.Time) (*Verified, error) {
	if err := u.verifyTimestamp(now); err != nil {
		return nil, err
	}
	if !signing.Verify(u.Airnode, u.Message(), u.Signature) {
		return nil, ErrInvalidSignature
	}
	return u.decode()
}

// decode derives the beacon id and decodes the value, assuming the
// signature has already been checked.
func (u *Update) decode() (*Verified, error) {
	beaconID, err := u.BeaconID()
	if err != nil {
		return nil, err
	}
	value, err := DecodeValue(u.Data)
	if err != nil {
		return nil, err
	}
	return &Verified{
		BeaconID:  beaconID,
		Datapoint: &primitives.Datapoint{Value: value, Timestamp: uint32(u.Timestamp)},
	}, nil
}

func (u *Update) verifyTimestamp(now time.Time) error {
	if _, err := u.BeaconID(); err != nil {
		return err
	}
	if u.Timestamp > uint64(^uint32(0)) || !TimestampIsValid(u.Timestamp, now) {
		return errors.Wrapf(ErrInvalidTimestamp, "timestamp %d at local time %d", u.Timestamp, now.Unix())
	}
	return nil
}

// Sign builds an update for value at timestamp signed by signer.
func Sign(signer signing.Signer, templateID [32]byte, timestamp uint64, value *uint256.Int) (*Update, error) {
	data := EncodeValue(value)
	sig, err := signer.Sign(Message(templateID, timestamp, data))
	if err != nil {
		return nil, err
	}
	return &Update{
		Airnode:    signer.PublicKey(),
		TemplateID: templateID,
		Timestamp:  timestamp,
		Data:       data,
		Signature:  sig,
	}, nil
}
