// Package ids derives the identifiers of beacons, dAPIs, names and roles.
// Every identifier is the keccak256 digest of a packed concatenation, so it
// can be recomputed by any party holding the inputs.
package ids

import (
	"github.com/oraclelabs/dapi-server/crypto/hash"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/pkg/errors"
)

// ErrZeroIdentifier is returned when an identifier input is empty or all zero.
var ErrZeroIdentifier = errors.New("zero identifier")

// DeriveBeaconID returns keccak256(airnodeKey || templateID).
func DeriveBeaconID(airnodeKey []byte, templateID [32]byte) ([32]byte, error) {
	if bytesutil.ZeroRoot(airnodeKey) {
		return [32]byte{}, errors.Wrap(ErrZeroIdentifier, "airnode key is zero")
	}
	if templateID == [32]byte{} {
		return [32]byte{}, errors.Wrap(ErrZeroIdentifier, "template id is zero")
	}
	return hash.Keccak256(airnodeKey, templateID[:]), nil
}

// DeriveDapiID returns keccak256 of the beacon ids concatenated in the given order.
func DeriveDapiID(beaconIDs [][32]byte) ([32]byte, error) {
	if len(beaconIDs) == 0 {
		return [32]byte{}, errors.Wrap(ErrZeroIdentifier, "beacon id list is empty")
	}
	return hash.Keccak256Roots(beaconIDs...), nil
}

// NameHash returns the key a dAPI name is registered and authorized under.
func NameHash(name [32]byte) [32]byte {
	return hash.Keccak256(name[:])
}

// RootRole returns the root of the role tree administered by manager.
func RootRole(manager [32]byte) [32]byte {
	return hash.Keccak256(manager[:])
}

// DeriveRole returns the role described by description under adminRole.
func DeriveRole(adminRole [32]byte, description string) [32]byte {
	descriptionHash := hash.Keccak256([]byte(description))
	return hash.Keccak256(adminRole[:], descriptionHash[:])
}
