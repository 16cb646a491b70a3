// Package dapi exposes the operations of a dAPI server. Every operation runs
// inside a single database transaction, so a failed operation leaves no
// partial state behind.
package dapi

import (
	"context"
	"time"

	"github.com/oraclelabs/dapi-server/dapi-server/core/access"
	"github.com/oraclelabs/dapi-server/dapi-server/core/names"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/pkg/errors"
)

// Config for the dAPI server.
type Config struct {
	Database iface.Database
	// Manager implicitly holds every role.
	Manager [32]byte
	// Clock returns the local time used for timestamp and whitelist checks.
	// Defaults to time.Now.
	Clock func() time.Time
}

// Server implements the dAPI server operations on top of a database.
type Server struct {
	db     iface.Database
	access *access.Registry
	names  *names.Registry
	clock  func() time.Time
}

// WellKnownRoles lists the role ids derived from the manager.
type WellKnownRoles struct {
	Manager                         [32]byte
	AdminRole                       [32]byte
	UnlimitedReaderRole             [32]byte
	NameSetterRole                  [32]byte
	WhitelistExpirationExtenderRole [32]byte
	WhitelistExpirationSetterRole   [32]byte
	IndefiniteWhitelisterRole       [32]byte
}

// NewServer returns a server for cfg.
func NewServer(cfg *Config) (*Server, error) {
	if cfg == nil || cfg.Database == nil {
		return nil, errors.New("no database configured")
	}
	acl, err := access.NewRegistry(cfg.Manager)
	if err != nil {
		return nil, errors.Wrap(err, "could not derive roles")
	}
	clock := cfg.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Server{
		db:     cfg.Database,
		access: acl,
		names:  names.NewRegistry(acl),
		clock:  clock,
	}, nil
}

// Roles returns the role ids derived from the manager.
func (s *Server) Roles() *WellKnownRoles {
	return &WellKnownRoles{
		Manager:                         s.access.Manager(),
		AdminRole:                       s.access.AdminRole(),
		UnlimitedReaderRole:             s.access.UnlimitedReaderRole(),
		NameSetterRole:                  s.access.NameSetterRole(),
		WhitelistExpirationExtenderRole: s.access.WhitelistExpirationExtenderRole(),
		WhitelistExpirationSetterRole:   s.access.WhitelistExpirationSetterRole(),
		IndefiniteWhitelisterRole:       s.access.IndefiniteWhitelisterRole(),
	}
}

// Status reports whether the backing database can serve reads.
func (s *Server) Status() error {
	return s.db.View(context.Background(), func(iface.ReadOnlyTx) error { return nil })
}
