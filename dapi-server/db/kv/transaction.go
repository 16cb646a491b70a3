package kv

import (
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	bolt "go.etcd.io/bbolt"
)

var _ iface.Tx = (*transaction)(nil)

// transaction adapts a bolt transaction to the iface.Tx accessors. Only
// writable transactions may call the Save methods.
type transaction struct {
	tx       *bolt.Tx
	store    *Store
	writable bool
	written  map[[32]byte]*primitives.Datapoint
}

func compositeKey(parts ...[32]byte) []byte {
	return bytesutil.ConcatRoots(parts...)
}

func decodeFlag(enc []byte) bool {
	return len(enc) == 1 && enc[0] == flagSet[0]
}

func encodeFlag(flag bool) []byte {
	if flag {
		return flagSet
	}
	return flagUnset
}
