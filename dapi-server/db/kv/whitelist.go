package kv

import (
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

// WhitelistStatus returns the whitelist status of reader for feed. Readers
// never whitelisted get a zero status.
func (t *transaction) WhitelistStatus(feed, reader [32]byte) (*primitives.WhitelistStatus, error) {
	enc := t.tx.Bucket(whitelistBucket).Get(compositeKey(feed, reader))
	if enc == nil {
		return &primitives.WhitelistStatus{}, nil
	}
	status, err := primitives.UnmarshalWhitelistStatus(enc)
	if err != nil {
		return nil, errors.Wrap(err, "could not decode whitelist status")
	}
	return status, nil
}

// SaveWhitelistStatus overwrites the whitelist status of reader for feed.
func (t *transaction) SaveWhitelistStatus(feed, reader [32]byte, status *primitives.WhitelistStatus) error {
	if status == nil {
		return errors.New("cannot save nil whitelist status")
	}
	return t.tx.Bucket(whitelistBucket).Put(compositeKey(feed, reader), status.Marshal())
}

// IndefiniteWhitelistSetterStatus returns whether setter currently grants
// reader indefinite access to feed.
func (t *transaction) IndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte) (bool, error) {
	return decodeFlag(t.tx.Bucket(whitelistSettersBucket).Get(compositeKey(feed, reader, setter))), nil
}

// SaveIndefiniteWhitelistSetterStatus records whether setter grants reader
// indefinite access to feed.
func (t *transaction) SaveIndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte, status bool) error {
	return t.tx.Bucket(whitelistSettersBucket).Put(compositeKey(feed, reader, setter), encodeFlag(status))
}
