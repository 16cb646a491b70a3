// Package names maps human readable dAPI names to data feed ids. Names are
// stored under their hash.
package names

import (
	"github.com/oraclelabs/dapi-server/dapi-server/core/access"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/pkg/errors"
)

// ErrInvalidData is returned when the name or the data feed id is zero.
var ErrInvalidData = errors.New("invalid data")

// Reader resolves name hashes. Unregistered hashes resolve to the zero id.
type Reader interface {
	DataFeedIDForNameHash(nameHash [32]byte) ([32]byte, error)
}

// Store reads and writes name registrations and the roles gating them.
type Store interface {
	Reader
	access.RoleReader
	SaveNameHash(nameHash, feed [32]byte) error
}

// Registry registers names on behalf of authorized callers.
type Registry struct {
	access *access.Registry
}

// NewRegistry returns a name registry gated by the name setter role of acl.
func NewRegistry(acl *access.Registry) *Registry {
	return &Registry{access: acl}
}

// SetName points name at feed, replacing any previous registration. The
// caller must be the manager or hold the name setter role.
func (r *Registry) SetName(store Store, caller, name, feed [32]byte) error {
	ok, err := r.access.Check(store, caller, access.Manager{}, access.RoleHolder{Role: r.access.NameSetterRole()})
	if err != nil {
		return err
	}
	if !ok {
		return access.ErrAccessDenied
	}
	if name == [32]byte{} {
		return errors.Wrap(ErrInvalidData, "name is zero")
	}
	if feed == [32]byte{} {
		return errors.Wrap(ErrInvalidData, "data feed id is zero")
	}
	return store.SaveNameHash(ids.NameHash(name), feed)
}

// DataFeedID returns the feed registered under name and whether one exists.
func DataFeedID(store Reader, name [32]byte) ([32]byte, bool, error) {
	feed, err := store.DataFeedIDForNameHash(ids.NameHash(name))
	if err != nil {
		return [32]byte{}, false, err
	}
	return feed, feed != [32]byte{}, nil
}

// NameFromString right pads a UTF-8 name into the 32 byte form used on the wire.
func NameFromString(s string) ([32]byte, error) {
	if len(s) > 32 {
		return [32]byte{}, errors.Errorf("name %q is longer than 32 bytes", s)
	}
	var name [32]byte
	copy(name[:], s)
	return name, nil
}
