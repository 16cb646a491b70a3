package primitives

import (
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/pkg/errors"
)

// WhitelistStatusLength is the length of an encoded whitelist status.
const WhitelistStatusLength = 12

// ErrInvalidWhitelistStatusLength is returned when decoding a malformed whitelist status.
var ErrInvalidWhitelistStatusLength = errors.New("invalid whitelist status length")

// WhitelistStatus is the read permission of a reader for one data feed.
type WhitelistStatus struct {
	ExpirationTimestamp      uint32
	IndefiniteWhitelistCount uint64
}

// Marshal encodes the status as a big endian expiration followed by a big
// endian count.
func (w *WhitelistStatus) Marshal() []byte {
	enc := make([]byte, 0, WhitelistStatusLength)
	enc = append(enc, bytesutil.Bytes4BigEndian(w.ExpirationTimestamp)...)
	return append(enc, bytesutil.Bytes8BigEndian(w.IndefiniteWhitelistCount)...)
}

// UnmarshalWhitelistStatus decodes a whitelist status.
func UnmarshalWhitelistStatus(enc []byte) (*WhitelistStatus, error) {
	if len(enc) != WhitelistStatusLength {
		return nil, errors.Wrapf(ErrInvalidWhitelistStatusLength, "got %d bytes", len(enc))
	}
	return &WhitelistStatus{
		ExpirationTimestamp:      bytesutil.FromBytes4BigEndian(enc[:4]),
		IndefiniteWhitelistCount: bytesutil.FromBytes8BigEndian(enc[4:]),
	}, nil
}

// Copy returns a copy of the status.
func (w *WhitelistStatus) Copy() *WhitelistStatus {
	if w == nil {
		return nil
	}
	cp := *w
	return &cp
}
