// Package testing allows for spinning up a real bolt-db
// instance for unit tests throughout the dAPI server.
package testing

import (
	"context"
	"testing"

	"github.com/oraclelabs/dapi-server/dapi-server/db"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/dapi-server/db/kv"
)

// SetupDB instantiates and returns database backed by key value store.
func SetupDB(t testing.TB) iface.Database {
	s, err := db.NewDB(context.Background(), t.TempDir(), &kv.Config{})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Fatalf("failed to close database: %v", err)
		}
	})
	return s
}
