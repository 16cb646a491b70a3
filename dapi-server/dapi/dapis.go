package dapi

import (
	"context"

	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/dapi-server/core/aggregation"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"go.opencensus.io/trace"
)

// UpdateDapiWithBeacons aggregates the stored beacons into the dAPI derived
// from beaconIDs and returns its id. The dAPI value is the median of the
// beacon values and its timestamp the mean of their timestamps. The dAPI is
// overwritten unconditionally.
func (s *Server) UpdateDapiWithBeacons(ctx context.Context, beaconIDs [][32]byte) (dapiID [32]byte, err error) {
	ctx, span := trace.StartSpan(ctx, "DapiServer.UpdateDapiWithBeacons")
	defer func() {
		dapiUpdates.WithLabelValues(resultLabel(err)).Inc()
		tracing.AnnotateError(span, err)
		span.End()
	}()

	if len(beaconIDs) < params.DapiConfig().MinBeaconsPerDapi {
		return [32]byte{}, ErrLessThanTwoBeacons
	}
	dapiID, err = ids.DeriveDapiID(beaconIDs)
	if err != nil {
		return [32]byte{}, err
	}
	err = s.db.Update(ctx, func(tx iface.Tx) error {
		return aggregateInto(tx, dapiID, beaconIDs)
	})
	if err != nil {
		return [32]byte{}, err
	}
	logDapiUpdate(dapiID, len(beaconIDs))
	return dapiID, nil
}

// UpdateDapiWithSignedData updates the beacons that come with a signature
// and aggregates all of them into the dAPI derived from their ids. Entries
// with an empty signature use the stored beacon as is. The parameter lists
// are parallel and must have equal lengths.
func (s *Server) UpdateDapiWithSignedData(
	ctx context.Context,
	airnodes [][]byte,
	templateIDs [][32]byte,
	timestamps []uint64,
	data [][]byte,
	signatures [][]byte,
) (dapiID [32]byte, err error) {
	ctx, span := trace.StartSpan(ctx, "DapiServer.UpdateDapiWithSignedData")
	defer func() {
		dapiUpdates.WithLabelValues(resultLabel(err)).Inc()
		tracing.AnnotateError(span, err)
		span.End()
	}()

	n := len(airnodes)
	if len(templateIDs) != n || len(timestamps) != n || len(data) != n || len(signatures) != n {
		return [32]byte{}, ErrParameterLengthMismatch
	}
	if n < params.DapiConfig().MinBeaconsPerDapi {
		return [32]byte{}, ErrLessThanTwoBeacons
	}

	beaconIDs := make([][32]byte, n)
	var updates []*signed.Update
	var signedIdx []int
	for i := 0; i < n; i++ {
		u := &signed.Update{
			Airnode:    airnodes[i],
			TemplateID: templateIDs[i],
			Timestamp:  timestamps[i],
			Data:       data[i],
			Signature:  signatures[i],
		}
		id, err := u.BeaconID()
		if err != nil {
			return [32]byte{}, errors.Wrapf(err, "beacon %d", i)
		}
		beaconIDs[i] = id
		if len(u.Signature) > 0 {
			updates = append(updates, u)
			signedIdx = append(signedIdx, i)
		}
	}
	dapiID, err = ids.DeriveDapiID(beaconIDs)
	if err != nil {
		return [32]byte{}, err
	}
	span.AddAttributes(trace.Int64Attribute("signed", int64(len(updates))))

	verified, err := signed.VerifyBatch(ctx, updates, s.clock())
	if err != nil {
		return [32]byte{}, err
	}

	err = s.db.Update(ctx, func(tx iface.Tx) error {
		for j, v := range verified {
			if err := storeIfNewer(tx, v, ErrUpdatedValueOutdated); err != nil {
				return errors.Wrapf(err, "beacon %d", signedIdx[j])
			}
		}
		return aggregateInto(tx, dapiID, beaconIDs)
	})
	if err != nil {
		return [32]byte{}, err
	}
	logDapiUpdate(dapiID, n)
	return dapiID, nil
}

// aggregateInto reads every beacon in tx, aggregates them and writes the
// result under dapiID. Beacons written earlier in tx are visible.
func aggregateInto(tx iface.Tx, dapiID [32]byte, beaconIDs [][32]byte) error {
	datapoints := make([]*primitives.Datapoint, len(beaconIDs))
	for i, id := range beaconIDs {
		dp, err := tx.Datapoint(id)
		if err != nil {
			return err
		}
		if dp == nil {
			return errors.Wrapf(ErrBeaconNotFound, "beacon %#x", id)
		}
		datapoints[i] = dp
	}
	aggregated, err := aggregation.Aggregate(datapoints)
	if err != nil {
		return err
	}
	aggregatedBeacons.Observe(float64(len(beaconIDs)))
	return tx.SaveDatapoint(dapiID, aggregated)
}

func logDapiUpdate(dapiID [32]byte, beacons int) {
	log.WithFields(logrus.Fields{
		"dapiId":  hexID(dapiID),
		"beacons": beacons,
	}).Debug("Updated dAPI")
}
