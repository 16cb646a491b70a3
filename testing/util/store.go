// Package util contains fixtures shared by the dAPI server tests.
package util

import (
	"github.com/oraclelabs/dapi-server/types/primitives"
)

type whitelistKey struct {
	feed, reader [32]byte
}

type setterKey struct {
	feed, reader, setter [32]byte
}

type roleKey struct {
	role, who [32]byte
}

// MemStore is an in-memory implementation of the transactional store
// interfaces, for tests of the core packages. It is not safe for concurrent use.
type MemStore struct {
	Datapoints map[[32]byte]*primitives.Datapoint
	Names      map[[32]byte][32]byte
	roles      map[roleKey]bool
	whitelist  map[whitelistKey]*primitives.WhitelistStatus
	setters    map[setterKey]bool
}

// NewMemStore returns an empty store.
func NewMemStore() *MemStore {
	return &MemStore{
		Datapoints: make(map[[32]byte]*primitives.Datapoint),
		Names:      make(map[[32]byte][32]byte),
		roles:      make(map[roleKey]bool),
		whitelist:  make(map[whitelistKey]*primitives.WhitelistStatus),
		setters:    make(map[setterKey]bool),
	}
}

// Datapoint returns the stored datapoint or nil.
func (s *MemStore) Datapoint(id [32]byte) (*primitives.Datapoint, error) {
	return s.Datapoints[id].Copy(), nil
}

// SaveDatapoint overwrites the datapoint stored under id.
func (s *MemStore) SaveDatapoint(id [32]byte, dp *primitives.Datapoint) error {
	s.Datapoints[id] = dp.Copy()
	return nil
}

// DataFeedIDForNameHash returns the feed registered under nameHash or the zero id.
func (s *MemStore) DataFeedIDForNameHash(nameHash [32]byte) ([32]byte, error) {
	return s.Names[nameHash], nil
}

// SaveNameHash registers feed under nameHash.
func (s *MemStore) SaveNameHash(nameHash, feed [32]byte) error {
	s.Names[nameHash] = feed
	return nil
}

// RoleMember returns raw membership.
func (s *MemStore) RoleMember(role, who [32]byte) (bool, error) {
	return s.roles[roleKey{role: role, who: who}], nil
}

// SaveRoleMember sets raw membership.
func (s *MemStore) SaveRoleMember(role, who [32]byte, granted bool) error {
	s.roles[roleKey{role: role, who: who}] = granted
	return nil
}

// WhitelistStatus returns the status of reader for feed.
func (s *MemStore) WhitelistStatus(feed, reader [32]byte) (*primitives.WhitelistStatus, error) {
	status, ok := s.whitelist[whitelistKey{feed: feed, reader: reader}]
	if !ok {
		return &primitives.WhitelistStatus{}, nil
	}
	return status.Copy(), nil
}

// SaveWhitelistStatus overwrites the status of reader for feed.
func (s *MemStore) SaveWhitelistStatus(feed, reader [32]byte, status *primitives.WhitelistStatus) error {
	s.whitelist[whitelistKey{feed: feed, reader: reader}] = status.Copy()
	return nil
}

// IndefiniteWhitelistSetterStatus returns the per setter flag.
func (s *MemStore) IndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte) (bool, error) {
	return s.setters[setterKey{feed: feed, reader: reader, setter: setter}], nil
}

// SaveIndefiniteWhitelistSetterStatus sets the per setter flag.
func (s *MemStore) SaveIndefiniteWhitelistSetterStatus(feed, reader, setter [32]byte, status bool) error {
	s.setters[setterKey{feed: feed, reader: reader, setter: setter}] = status
	return nil
}
