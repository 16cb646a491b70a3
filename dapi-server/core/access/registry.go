// Package access implements role based access control and per data feed
// reader whitelists. A single manager principal implicitly holds every role.
// Role identifiers are derived from the manager so they can be recomputed by
// any client.
package access

import (
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

var (
	// ErrAccessDenied is returned when the caller holds none of the required capabilities.
	ErrAccessDenied = errors.New("access denied")
	// ErrManagerZero is returned when a registry is created for the zero principal.
	ErrManagerZero = errors.New("manager is zero")
)

// RoleReader reads raw role membership. It knows nothing about the manager.
type RoleReader interface {
	RoleMember(role, who [32]byte) (bool, error)
}

// RoleWriter reads and writes raw role membership.
type RoleWriter interface {
	RoleReader
	SaveRoleMember(role, who [32]byte, granted bool) error
}

// WhitelistReader reads whitelist state. Absent entries read as zero values.
type WhitelistReader interface {
	WhitelistStatus(feed, reader [32]byte) (*primitives.WhitelistStatus, error)
	IndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte) (bool, error)
}

// WhitelistWriter reads and writes whitelist state.
type WhitelistWriter interface {
	WhitelistReader
	SaveWhitelistStatus(feed, reader [32]byte, status *primitives.WhitelistStatus) error
	SaveIndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte, status bool) error
}

// ReadOnlyStore is the state needed to answer authorization queries.
type ReadOnlyStore interface {
	RoleReader
	WhitelistReader
}

// Store is the state mutated by role and whitelist operations.
type Store interface {
	RoleWriter
	WhitelistWriter
}

// Registry evaluates capabilities and applies role and whitelist changes
// against a store. It holds no state of its own beyond the derived role ids.
type Registry struct {
	manager                         [32]byte
	rootRole                        [32]byte
	adminRole                       [32]byte
	unlimitedReaderRole             [32]byte
	nameSetterRole                  [32]byte
	whitelistExpirationExtenderRole [32]byte
	whitelistExpirationSetterRole   [32]byte
	indefiniteWhitelisterRole       [32]byte
}

// NewRegistry derives the role tree of manager using the configured role
// descriptions.
func NewRegistry(manager [32]byte) (*Registry, error) {
	if manager == [32]byte{} {
		return nil, ErrManagerZero
	}
	cfg := params.DapiConfig()
	root := ids.RootRole(manager)
	admin := ids.DeriveRole(root, cfg.AdminRoleDescription)
	return &Registry{
		manager:                         manager,
		rootRole:                        root,
		adminRole:                       admin,
		unlimitedReaderRole:             ids.DeriveRole(admin, cfg.UnlimitedReaderRoleDescription),
		nameSetterRole:                  ids.DeriveRole(admin, cfg.NameSetterRoleDescription),
		whitelistExpirationExtenderRole: ids.DeriveRole(admin, cfg.WhitelistExpirationExtenderRoleDescription),
		whitelistExpirationSetterRole:   ids.DeriveRole(admin, cfg.WhitelistExpirationSetterRoleDescription),
		indefiniteWhitelisterRole:       ids.DeriveRole(admin, cfg.IndefiniteWhitelisterRoleDescription),
	}, nil
}

// Manager returns the principal holding every role.
func (r *Registry) Manager() [32]byte { return r.manager }

// RootRole returns the root of the role tree.
func (r *Registry) RootRole() [32]byte { return r.rootRole }

// AdminRole returns the role whose holders may grant and revoke any role.
func (r *Registry) AdminRole() [32]byte { return r.adminRole }

// UnlimitedReaderRole returns the role that may read every data feed.
func (r *Registry) UnlimitedReaderRole() [32]byte { return r.unlimitedReaderRole }

// NameSetterRole returns the role that may register dAPI names.
func (r *Registry) NameSetterRole() [32]byte { return r.nameSetterRole }

// WhitelistExpirationExtenderRole returns the role that may extend whitelist expirations.
func (r *Registry) WhitelistExpirationExtenderRole() [32]byte {
	return r.whitelistExpirationExtenderRole
}

// WhitelistExpirationSetterRole returns the role that may set whitelist expirations.
func (r *Registry) WhitelistExpirationSetterRole() [32]byte {
	return r.whitelistExpirationSetterRole
}

// IndefiniteWhitelisterRole returns the role that may grant indefinite read access.
func (r *Registry) IndefiniteWhitelisterRole() [32]byte { return r.indefiniteWhitelisterRole }
