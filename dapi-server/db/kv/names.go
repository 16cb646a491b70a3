package kv

import (
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
)

// DataFeedIDForNameHash returns the data feed registered under nameHash, or
// the zero id.
func (t *transaction) DataFeedIDForNameHash(nameHash [32]byte) ([32]byte, error) {
	enc := t.tx.Bucket(namesBucket).Get(nameHash[:])
	return bytesutil.ToBytes32(enc), nil
}

// SaveNameHash registers feed under nameHash.
func (t *transaction) SaveNameHash(nameHash, feed [32]byte) error {
	return t.tx.Bucket(namesBucket).Put(nameHash[:], feed[:])
}
