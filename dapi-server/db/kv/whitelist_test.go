package kv

import (
	"context"
	"testing"

	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func TestStore_WhitelistStatus(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	feed, reader, setter := [32]byte{'f'}, [32]byte{'r'}, [32]byte{'s'}

	require.NoError(t, db.View(ctx, func(tx iface.ReadOnlyTx) error {
		status, err := tx.WhitelistStatus(feed, reader)
		require.NoError(t, err)
		assert.DeepEqual(t, &primitives.WhitelistStatus{}, status)
		flag, err := tx.IndefiniteWhitelistSetterStatus(feed, reader, setter)
		require.NoError(t, err)
		assert.Equal(t, false, flag)
		return nil
	}))

	want := &primitives.WhitelistStatus{ExpirationTimestamp: 1000, IndefiniteWhitelistCount: 2}
	require.NoError(t, db.Update(ctx, func(tx iface.Tx) error {
		if err := tx.SaveWhitelistStatus(feed, reader, want); err != nil {
			return err
		}
		return tx.SaveIndefiniteWhitelistSetterStatus(feed, reader, setter, true)
	}))

	require.NoError(t, db.View(ctx, func(tx iface.ReadOnlyTx) error {
		status, err := tx.WhitelistStatus(feed, reader)
		require.NoError(t, err)
		assert.DeepEqual(t, want, status)
		flag, err := tx.IndefiniteWhitelistSetterStatus(feed, reader, setter)
		require.NoError(t, err)
		assert.Equal(t, true, flag)
		other, err := tx.IndefiniteWhitelistSetterStatus(feed, setter, reader)
		require.NoError(t, err)
		assert.Equal(t, false, other)
		return nil
	}))

	assert.ErrorContains(t, "nil whitelist status", db.Update(ctx, func(tx iface.Tx) error {
		return tx.SaveWhitelistStatus(feed, reader, nil)
	}))
}
