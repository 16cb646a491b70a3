package dapi

import (
	"github.com/oraclelabs/dapi-server/dapi-server/core/access"
	"github.com/oraclelabs/dapi-server/dapi-server/core/aggregation"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/names"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

var (
	// ErrFulfillmentOlderThanBeacon is returned when a signed update is not
	// newer than the stored beacon.
	ErrFulfillmentOlderThanBeacon = errors.New("fulfillment older than beacon")
	// ErrUpdatedValueOutdated is returned when a signed entry of a dAPI update
	// is not newer than the stored beacon.
	ErrUpdatedValueOutdated = errors.New("updated value outdated")
	// ErrLessThanTwoBeacons is returned when a dAPI is built from fewer than two beacons.
	ErrLessThanTwoBeacons = errors.New("specified less than two beacons")
	// ErrBeaconNotFound is returned when a dAPI references a beacon never written.
	ErrBeaconNotFound = errors.New("beacon not found")
	// ErrParameterLengthMismatch is returned when the parallel parameter lists differ in length.
	ErrParameterLengthMismatch = errors.New("parameter length mismatch")
	// ErrNotFound is returned when a name or a datapoint does not exist.
	ErrNotFound = errors.New("not found")
)

// Kind groups errors by the way a caller should react to them.
type Kind int

const (
	// KindInternal covers storage and other unexpected failures.
	KindInternal Kind = iota
	// KindValidation covers malformed or inconsistent input.
	KindValidation
	// KindAuthenticity covers signatures that do not verify.
	KindAuthenticity
	// KindTemporal covers timestamps outside the accepted window or older than stored data.
	KindTemporal
	// KindAuthorization covers callers lacking the required role or whitelisting.
	KindAuthorization
	// KindNotFound covers lookups of state that was never written.
	KindNotFound
)

// String returns the metric and log label of the kind.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthenticity:
		return "authenticity"
	case KindTemporal:
		return "temporal"
	case KindAuthorization:
		return "authorization"
	case KindNotFound:
		return "not_found"
	default:
		return "internal"
	}
}

var errorKinds = []struct {
	err  error
	kind Kind
}{
	{ids.ErrZeroIdentifier, KindValidation},
	{signed.ErrInvalidDataLength, KindValidation},
	{primitives.ErrValueOutOfRange, KindValidation},
	{aggregation.ErrNoDatapoints, KindValidation},
	{ErrLessThanTwoBeacons, KindValidation},
	{ErrParameterLengthMismatch, KindValidation},
	{names.ErrInvalidData, KindValidation},
	{access.ErrUserAddressZero, KindValidation},
	{access.ErrServiceIdZero, KindValidation},
	{access.ErrManagerZero, KindValidation},
	{signed.ErrInvalidSignature, KindAuthenticity},
	{signed.ErrInvalidTimestamp, KindTemporal},
	{ErrFulfillmentOlderThanBeacon, KindTemporal},
	{ErrUpdatedValueOutdated, KindTemporal},
	{access.ErrDoesNotExtendExpiration, KindTemporal},
	{access.ErrSetterCanSetIndefiniteStatus, KindAuthorization},
	{access.ErrAccessDenied, KindAuthorization},
	{ErrBeaconNotFound, KindNotFound},
	{ErrNotFound, KindNotFound},
}

// KindOf classifies err, looking through wrapping. Unknown errors are internal.
func KindOf(err error) Kind {
	for _, ek := range errorKinds {
		if errors.Is(err, ek.err) {
			return ek.kind
		}
	}
	return KindInternal
}
