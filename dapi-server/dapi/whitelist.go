package dapi

import (
	"context"
	"fmt"

	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/sirupsen/logrus"
)

// SetWhitelistExpiration sets the expiration of reader for feedID. The
// caller must hold the whitelist expiration setter role.
func (s *Server) SetWhitelistExpiration(ctx context.Context, caller, feedID, reader [32]byte, expiration uint32) error {
	return s.db.Update(ctx, func(tx iface.Tx) error {
		return s.access.SetWhitelistExpiration(tx, caller, feedID, reader, expiration)
	})
}

// ExtendWhitelistExpiration moves the expiration of reader for feedID
// forward. The caller must hold the whitelist expiration extender role.
func (s *Server) ExtendWhitelistExpiration(ctx context.Context, caller, feedID, reader [32]byte, expiration uint32) error {
	return s.db.Update(ctx, func(tx iface.Tx) error {
		return s.access.ExtendWhitelistExpiration(tx, caller, feedID, reader, expiration)
	})
}

// SetIndefiniteWhitelistStatus records whether caller whitelists reader for
// feedID indefinitely and returns the resulting indefinite whitelist count.
func (s *Server) SetIndefiniteWhitelistStatus(ctx context.Context, caller, feedID, reader [32]byte, status bool) (uint64, error) {
	var count uint64
	err := s.db.Update(ctx, func(tx iface.Tx) error {
		var err error
		count, err = s.access.SetIndefiniteWhitelistStatus(tx, caller, feedID, reader, status)
		return err
	})
	if err != nil {
		return 0, err
	}
	log.WithFields(logrus.Fields{
		"feed":   hexID(feedID),
		"reader": hexID(reader),
		"status": status,
		"count":  count,
	}).Debug("Set indefinite whitelist status")
	return count, nil
}

// RevokeIndefiniteWhitelistStatus withdraws the indefinite whitelisting of
// reader by setter once setter lost the indefinite whitelister role. It
// reports whether anything was withdrawn and the resulting count.
func (s *Server) RevokeIndefiniteWhitelistStatus(ctx context.Context, feedID, reader, setter [32]byte) (revoked bool, count uint64, err error) {
	err = s.db.Update(ctx, func(tx iface.Tx) error {
		var err error
		revoked, count, err = s.access.RevokeIndefiniteWhitelistStatus(tx, feedID, reader, setter)
		return err
	})
	if err != nil {
		return false, 0, err
	}
	return revoked, count, nil
}

// WhitelistStatus returns the whitelist status of reader for feedID.
func (s *Server) WhitelistStatus(ctx context.Context, feedID, reader [32]byte) (*primitives.WhitelistStatus, error) {
	var status *primitives.WhitelistStatus
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var err error
		status, err = tx.WhitelistStatus(feedID, reader)
		return err
	})
	return status, err
}

// IndefiniteWhitelistSetterStatus reports whether setter whitelists reader
// for feedID indefinitely.
func (s *Server) IndefiniteWhitelistSetterStatus(ctx context.Context, feedID, reader, setter [32]byte) (bool, error) {
	var status bool
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var err error
		status, err = tx.IndefiniteWhitelistSetterStatus(feedID, reader, setter)
		return err
	})
	return status, err
}

func hexID(id [32]byte) string {
	return fmt.Sprintf("%#x", bytesutil.Trunc(id[:]))
}
