// Package db defines the ability to create a new database
// for a dAPI server.
package db

import (
	"context"

	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/dapi-server/db/kv"
)

// ReadOnlyDatabase exposes the dAPI server's read only data access methods.
type ReadOnlyDatabase = iface.ReadOnlyDatabase

// Database defines the necessary methods for a dAPI server's store.
type Database = iface.Database

// NewDB initializes a new DB.
func NewDB(ctx context.Context, dirPath string, config *kv.Config) (Database, error) {
	return kv.NewKVStore(ctx, dirPath, config)
}
