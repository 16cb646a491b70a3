package dapi

import (
	"context"
	"fmt"

	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// UpdateBeaconWithSignedData verifies a signed reading and stores it under
// the beacon id derived from its airnode and template. The reading must be
// strictly newer than the stored one. No aggregation takes place.
func (s *Server) UpdateBeaconWithSignedData(ctx context.Context, update *signed.Update) (beaconID [32]byte, err error) {
	ctx, span := trace.StartSpan(ctx, "DapiServer.UpdateBeaconWithSignedData")
	defer func() {
		beaconUpdates.WithLabelValues(resultLabel(err)).Inc()
		tracing.AnnotateError(span, err)
		span.End()
	}()
	if update == nil {
		return [32]byte{}, errors.New("nil update")
	}

	verified, err := update.Verify(s.clock())
	if err != nil {
		return [32]byte{}, err
	}
	span.AddAttributes(trace.StringAttribute("beaconId", fmt.Sprintf("%#x", verified.BeaconID)))

	err = s.db.Update(ctx, func(tx iface.Tx) error {
		return storeIfNewer(tx, verified, ErrFulfillmentOlderThanBeacon)
	})
	if err != nil {
		return [32]byte{}, err
	}
	log.WithFields(logrus.Fields{
		"beaconId":  hexID(verified.BeaconID),
		"timestamp": verified.Datapoint.Timestamp,
	}).Debug("Updated beacon")
	return verified.BeaconID, nil
}

// storeIfNewer writes the verified datapoint unless the stored one is at
// least as recent, in which case staleErr is returned.
func storeIfNewer(tx iface.Tx, verified *signed.Verified, staleErr error) error {
	stored, err := tx.Datapoint(verified.BeaconID)
	if err != nil {
		return err
	}
	if stored != nil && verified.Datapoint.Timestamp <= stored.Timestamp {
		return errors.Wrapf(staleErr, "timestamp %d is not after stored %d", verified.Datapoint.Timestamp, stored.Timestamp)
	}
	return tx.SaveDatapoint(verified.BeaconID, verified.Datapoint)
}

// Datapoint returns the stored datapoint of id without an authorization
// check, for operator tooling.
func (s *Server) Datapoint(ctx context.Context, id [32]byte) (*primitives.Datapoint, error) {
	var dp *primitives.Datapoint
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var err error
		dp, err = tx.Datapoint(id)
		return err
	})
	if err != nil {
		return nil, err
	}
	if dp == nil {
		return nil, ErrNotFound
	}
	return dp, nil
}
