package dapi

import (
	"context"

	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/sirupsen/logrus"
)

// HasRole reports whether who holds role. The manager holds every role.
func (s *Server) HasRole(ctx context.Context, role, who [32]byte) (bool, error) {
	var ok bool
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var err error
		ok, err = s.access.HasRole(tx, role, who)
		return err
	})
	return ok, err
}

// GrantRole grants role to who on behalf of caller.
func (s *Server) GrantRole(ctx context.Context, caller, role, who [32]byte) error {
	if err := s.db.Update(ctx, func(tx iface.Tx) error {
		return s.access.GrantRole(tx, caller, role, who)
	}); err != nil {
		return err
	}
	logRoleChange("Granted role", role, who)
	return nil
}

// RevokeRole revokes role from who on behalf of caller.
func (s *Server) RevokeRole(ctx context.Context, caller, role, who [32]byte) error {
	if err := s.db.Update(ctx, func(tx iface.Tx) error {
		return s.access.RevokeRole(tx, caller, role, who)
	}); err != nil {
		return err
	}
	logRoleChange("Revoked role", role, who)
	return nil
}

// RenounceRole gives up role held by who. Only who may renounce.
func (s *Server) RenounceRole(ctx context.Context, caller, role, who [32]byte) error {
	if err := s.db.Update(ctx, func(tx iface.Tx) error {
		return s.access.RenounceRole(tx, caller, role, who)
	}); err != nil {
		return err
	}
	logRoleChange("Renounced role", role, who)
	return nil
}

func logRoleChange(msg string, role, who [32]byte) {
	log.WithFields(logrus.Fields{
		"role": hexID(role),
		"who":  hexID(who),
	}).Info(msg)
}
