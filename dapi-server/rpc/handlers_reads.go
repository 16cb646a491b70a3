package rpc

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"go.opencensus.io/trace"
)

// SetName points a name at a data feed.
func (s *Service) SetName(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.SetName")
	defer span.End()

	caller, ok := principal(w, r)
	if !ok {
		return
	}
	var req structs.SetNameRequest
	if !decodeBody(w, r, &req) {
		return
	}
	name, ok := decodeName(w, req.Name)
	if !ok {
		return
	}
	feedID, ok := decodeID(w, "data_feed_id", req.DataFeedId)
	if !ok {
		return
	}
	if err := s.cfg.Server.SetName(ctx, caller, name, feedID); err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.NameResponse{Name: req.Name, DataFeedId: req.DataFeedId})
}

// NameToDataFeedID resolves a name.
func (s *Service) NameToDataFeedID(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.NameToDataFeedID")
	defer span.End()

	raw := pathVar(r, "name")
	name, ok := decodeName(w, raw)
	if !ok {
		return
	}
	feedID, err := s.cfg.Server.NameToDataFeedID(ctx, name)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.NameResponse{Name: raw, DataFeedId: hexutil.Encode(feedID[:])})
}

// ReadWithDataPointID returns a datapoint to a whitelisted reader.
func (s *Service) ReadWithDataPointID(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.ReadWithDataPointID")
	defer span.End()

	reader, ok := principal(w, r)
	if !ok {
		return
	}
	id, ok := decodeID(w, "id", pathVar(r, "id"))
	if !ok {
		return
	}
	dp, err := s.cfg.Server.ReadWithDataPointID(ctx, reader, id)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.DatapointResponse{Data: structs.DatapointFromConsensus(dp)})
}

// ReadWithName returns the datapoint a name points at to a whitelisted reader.
func (s *Service) ReadWithName(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.ReadWithName")
	defer span.End()

	reader, ok := principal(w, r)
	if !ok {
		return
	}
	name, ok := decodeName(w, pathVar(r, "name"))
	if !ok {
		return
	}
	dp, err := s.cfg.Server.ReadWithName(ctx, reader, name)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.DatapointResponse{Data: structs.DatapointFromConsensus(dp)})
}

// ReaderCanReadDataFeed reports whether a reader may read a feed.
func (s *Service) ReaderCanReadDataFeed(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.ReaderCanReadDataFeed")
	defer span.End()

	feedID, ok := decodeID(w, "feed", pathVar(r, "feed"))
	if !ok {
		return
	}
	reader, ok := decodePrincipal(w, "reader", pathVar(r, "reader"))
	if !ok {
		return
	}
	canRead, err := s.cfg.Server.ReaderCanReadDataFeed(ctx, feedID, reader)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.ReaderCanReadResponse{CanRead: canRead})
}
