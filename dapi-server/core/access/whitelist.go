package access

import (
	"time"

	"github.com/pkg/errors"
)

var (
	// ErrUserAddressZero is returned when the reader is the zero principal.
	ErrUserAddressZero = errors.New("user address zero")
	// ErrServiceIdZero is returned when the data feed id is zero.
	ErrServiceIdZero = errors.New("service id zero")
	// ErrDoesNotExtendExpiration is returned when an extension does not move the expiration forward.
	ErrDoesNotExtendExpiration = errors.New("does not extend expiration")
	// ErrSetterCanSetIndefiniteStatus is returned when revoking grants of a setter that still holds the role.
	ErrSetterCanSetIndefiniteStatus = errors.New("setter can set indefinite status")
)

// ReaderCanReadDataFeed reports whether reader may read feed at now. The
// zero feed is readable by everyone.
func (r *Registry) ReaderCanReadDataFeed(store ReadOnlyStore, feed, reader [32]byte, now time.Time) (bool, error) {
	// TODO: decide whether the zero feed stays unrestricted or is denied like
	// any other feed the reader is not whitelisted for.
	if feed == [32]byte{} {
		return true, nil
	}
	unlimited, err := r.HasRole(store, r.unlimitedReaderRole, reader)
	if err != nil || unlimited {
		return unlimited, err
	}
	status, err := store.WhitelistStatus(feed, reader)
	if err != nil {
		return false, err
	}
	if status.IndefiniteWhitelistCount > 0 {
		return true, nil
	}
	unixNow := now.Unix()
	return unixNow < int64(status.ExpirationTimestamp), nil
}

// SetWhitelistExpiration sets the expiration of reader for feed, possibly
// moving it backwards.
func (r *Registry) SetWhitelistExpiration(store Store, caller, feed, reader [32]byte, expiration uint32) error {
	if err := r.require(store, caller, Manager{}, RoleHolder{Role: r.whitelistExpirationSetterRole}); err != nil {
		return err
	}
	if err := validateWhitelistTarget(feed, reader); err != nil {
		return err
	}
	status, err := store.WhitelistStatus(feed, reader)
	if err != nil {
		return err
	}
	status.ExpirationTimestamp = expiration
	return store.SaveWhitelistStatus(feed, reader, status)
}

// ExtendWhitelistExpiration moves the expiration of reader for feed forward.
func (r *Registry) ExtendWhitelistExpiration(store Store, caller, feed, reader [32]byte, expiration uint32) error {
	if err := r.require(store, caller, Manager{}, RoleHolder{Role: r.whitelistExpirationExtenderRole}); err != nil {
		return err
	}
	if err := validateWhitelistTarget(feed, reader); err != nil {
		return err
	}
	status, err := store.WhitelistStatus(feed, reader)
	if err != nil {
		return err
	}
	if expiration <= status.ExpirationTimestamp {
		return errors.Wrapf(ErrDoesNotExtendExpiration, "expiration %d is not after %d", expiration, status.ExpirationTimestamp)
	}
	status.ExpirationTimestamp = expiration
	return store.SaveWhitelistStatus(feed, reader, status)
}

// SetIndefiniteWhitelistStatus records whether caller grants reader
// indefinite access to feed. Each setter contributes at most one to the
// indefinite whitelist count. The resulting count is returned.
func (r *Registry) SetIndefiniteWhitelistStatus(store Store, caller, feed, reader [32]byte, status bool) (uint64, error) {
	if err := r.require(store, caller, Manager{}, RoleHolder{Role: r.indefiniteWhitelisterRole}); err != nil {
		return 0, err
	}
	if err := validateWhitelistTarget(feed, reader); err != nil {
		return 0, err
	}
	return r.applyIndefiniteStatus(store, feed, reader, caller, status)
}

// RevokeIndefiniteWhitelistStatus withdraws the indefinite grant setter made
// for reader once setter no longer holds the indefinite whitelister role.
// Anyone may call it. It reports whether a grant was withdrawn and the
// resulting count.
func (r *Registry) RevokeIndefiniteWhitelistStatus(store Store, feed, reader, setter [32]byte) (bool, uint64, error) {
	canSet, err := r.HasRole(store, r.indefiniteWhitelisterRole, setter)
	if err != nil {
		return false, 0, err
	}
	if canSet {
		return false, 0, ErrSetterCanSetIndefiniteStatus
	}
	wasSet, err := store.IndefiniteWhitelistSetterStatus(feed, reader, setter)
	if err != nil {
		return false, 0, err
	}
	count, err := r.applyIndefiniteStatus(store, feed, reader, setter, false)
	if err != nil {
		return false, 0, err
	}
	return wasSet, count, nil
}

// applyIndefiniteStatus updates the per setter flag and the count together.
func (r *Registry) applyIndefiniteStatus(store Store, feed, reader, setter [32]byte, status bool) (uint64, error) {
	current, err := store.IndefiniteWhitelistSetterStatus(feed, reader, setter)
	if err != nil {
		return 0, err
	}
	ws, err := store.WhitelistStatus(feed, reader)
	if err != nil {
		return 0, err
	}
	if current == status {
		return ws.IndefiniteWhitelistCount, nil
	}
	if status {
		ws.IndefiniteWhitelistCount++
	} else {
		ws.IndefiniteWhitelistCount--
	}
	if err := store.SaveIndefiniteWhitelistSetterStatus(feed, reader, setter, status); err != nil {
		return 0, err
	}
	if err := store.SaveWhitelistStatus(feed, reader, ws); err != nil {
		return 0, err
	}
	return ws.IndefiniteWhitelistCount, nil
}

func validateWhitelistTarget(feed, reader [32]byte) error {
	if reader == [32]byte{} {
		return ErrUserAddressZero
	}
	if feed == [32]byte{} {
		return ErrServiceIdZero
	}
	return nil
}
