package dapi

import (
	"context"

	"github.com/oraclelabs/dapi-server/dapi-server/core/access"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/names"
	"github.com/oraclelabs/dapi-server/dapi-server/db/iface"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"go.opencensus.io/trace"
)

// SetName points name at the beacon or dAPI feedID. The caller must be the
// manager or hold the name setter role.
func (s *Server) SetName(ctx context.Context, caller, name, feedID [32]byte) error {
	ctx, span := trace.StartSpan(ctx, "DapiServer.SetName")
	defer span.End()
	err := s.db.Update(ctx, func(tx iface.Tx) error {
		return s.names.SetName(tx, caller, name, feedID)
	})
	tracing.AnnotateError(span, err)
	return err
}

// NameToDataFeedID resolves name. Unregistered names return ErrNotFound.
func (s *Server) NameToDataFeedID(ctx context.Context, name [32]byte) ([32]byte, error) {
	var feed [32]byte
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var (
			ok  bool
			err error
		)
		feed, ok, err = names.DataFeedID(tx, name)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		return nil
	})
	return feed, err
}

// ReaderCanReadDataFeed reports whether reader may read feedID now.
func (s *Server) ReaderCanReadDataFeed(ctx context.Context, feedID, reader [32]byte) (bool, error) {
	var ok bool
	err := s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		var err error
		ok, err = s.access.ReaderCanReadDataFeed(tx, feedID, reader, s.clock())
		return err
	})
	return ok, err
}

// ReadWithDataPointID returns the datapoint of id if reader may read it.
func (s *Server) ReadWithDataPointID(ctx context.Context, reader, id [32]byte) (dp *primitives.Datapoint, err error) {
	ctx, span := trace.StartSpan(ctx, "DapiServer.ReadWithDataPointID")
	defer func() {
		reads.WithLabelValues(resultLabel(err)).Inc()
		tracing.AnnotateError(span, err)
		span.End()
	}()
	err = s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		if err := s.authorizeRead(tx, id, reader); err != nil {
			return err
		}
		var err error
		dp, err = readDatapoint(tx, id)
		return err
	})
	return dp, err
}

// ReadWithName returns the datapoint the name points at. Access is checked
// against the hash of the name rather than the data feed it resolves to.
func (s *Server) ReadWithName(ctx context.Context, reader, name [32]byte) (dp *primitives.Datapoint, err error) {
	ctx, span := trace.StartSpan(ctx, "DapiServer.ReadWithName")
	defer func() {
		reads.WithLabelValues(resultLabel(err)).Inc()
		tracing.AnnotateError(span, err)
		span.End()
	}()
	err = s.db.View(ctx, func(tx iface.ReadOnlyTx) error {
		if err := s.authorizeRead(tx, ids.NameHash(name), reader); err != nil {
			return err
		}
		feed, ok, err := names.DataFeedID(tx, name)
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotFound
		}
		dp, err = readDatapoint(tx, feed)
		return err
	})
	return dp, err
}

func (s *Server) authorizeRead(tx iface.ReadOnlyTx, feed, reader [32]byte) error {
	ok, err := s.access.ReaderCanReadDataFeed(tx, feed, reader, s.clock())
	if err != nil {
		return err
	}
	if !ok {
		return access.ErrAccessDenied
	}
	return nil
}

func readDatapoint(tx iface.ReadOnlyTx, id [32]byte) (*primitives.Datapoint, error) {
	dp, err := tx.Datapoint(id)
	if err != nil {
		return nil, err
	}
	if dp == nil {
		return nil, ErrNotFound
	}
	return dp, nil
}
