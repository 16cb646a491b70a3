// Package iface defines the actual database interface used by a dAPI server,
// along with the transaction views handed to the core packages.
package iface

import (
	"context"
	"io"

	"github.com/oraclelabs/dapi-server/monitoring/backup"
	"github.com/oraclelabs/dapi-server/types/primitives"
)

// ReadOnlyTx reads state inside a single consistent snapshot. Absent
// datapoints read as nil, absent names as the zero id and absent whitelist
// entries as zero values.
type ReadOnlyTx interface {
	Datapoint(id [32]byte) (*primitives.Datapoint, error)
	DataFeedIDForNameHash(nameHash [32]byte) ([32]byte, error)
	RoleMember(role, who [32]byte) (bool, error)
	WhitelistStatus(feed, reader [32]byte) (*primitives.WhitelistStatus, error)
	IndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte) (bool, error)
}

// Tx reads and writes state. Writes become visible to later reads in the
// same transaction and to other transactions only after commit.
type Tx interface {
	ReadOnlyTx
	SaveDatapoint(id [32]byte, dp *primitives.Datapoint) error
	SaveNameHash(nameHash, feed [32]byte) error
	SaveRoleMember(role, who [32]byte, granted bool) error
	SaveWhitelistStatus(feed, reader [32]byte, status *primitives.WhitelistStatus) error
	SaveIndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte, status bool) error
}

// ReadOnlyDatabase defines a struct which only has read access to database methods.
type ReadOnlyDatabase interface {
	View(ctx context.Context, fn func(tx ReadOnlyTx) error) error
	DatabasePath() string
	Size() (int64, error)
}

// Database interface with full access.
type Database interface {
	ReadOnlyDatabase
	io.Closer
	backup.Exporter

	// Update runs fn in a write transaction. The transaction commits only
	// if fn returns nil.
	Update(ctx context.Context, fn func(tx Tx) error) error
	ClearDB() error
}
