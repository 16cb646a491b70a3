package rpc

import (
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"go.opencensus.io/trace"
)

// UpdateBeaconWithSignedData stores a signed beacon update.
func (s *Service) UpdateBeaconWithSignedData(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.UpdateBeaconWithSignedData")
	defer span.End()

	var req structs.SignedUpdate
	if !decodeBody(w, r, &req) {
		return
	}
	update, err := req.ToConsensus()
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	beaconID, err := s.cfg.Server.UpdateBeaconWithSignedData(ctx, update)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.UpdateBeaconResponse{BeaconId: hexutil.Encode(beaconID[:])})
}

// UpdateDapiWithBeacons aggregates stored beacons into a dAPI.
func (s *Service) UpdateDapiWithBeacons(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.UpdateDapiWithBeacons")
	defer span.End()

	var req structs.UpdateDapiWithBeaconsRequest
	if !decodeBody(w, r, &req) {
		return
	}
	beaconIDs, err := structs.DecodeIDs(req.BeaconIds, "beacon_ids")
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	dapiID, err := s.cfg.Server.UpdateDapiWithBeacons(ctx, beaconIDs)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.UpdateDapiResponse{DapiId: hexutil.Encode(dapiID[:])})
}

// UpdateDapiWithSignedData aggregates a mix of signed and stored beacons into a dAPI.
func (s *Service) UpdateDapiWithSignedData(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.UpdateDapiWithSignedData")
	defer span.End()

	var req structs.UpdateDapiWithSignedDataRequest
	if !decodeBody(w, r, &req) {
		return
	}
	airnodes, templateIDs, timestamps, data, signatures, err := req.ToConsensus()
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	dapiID, err := s.cfg.Server.UpdateDapiWithSignedData(ctx, airnodes, templateIDs, timestamps, data, signatures)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.UpdateDapiResponse{DapiId: hexutil.Encode(dapiID[:])})
}

// BeaconID derives the beacon id of the airnode and template query parameters.
func (s *Service) BeaconID(w http.ResponseWriter, r *http.Request) {
	_, span := trace.StartSpan(r.Context(), "rpc.BeaconID")
	defer span.End()

	query := r.URL.Query()
	airnode, err := bytesutil.DecodeHexWithPrefix(query.Get("airnode"))
	if err != nil {
		httputil.HandleError(w, "airnode is invalid: "+err.Error(), http.StatusBadRequest)
		return
	}
	templateID, ok := decodeID(w, "template_id", query.Get("template_id"))
	if !ok {
		return
	}
	beaconID, err := ids.DeriveBeaconID(airnode, templateID)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.BeaconIdResponse{BeaconId: hexutil.Encode(beaconID[:])})
}

// DapiID derives the dAPI id of the beacon_ids query parameter.
func (s *Service) DapiID(w http.ResponseWriter, r *http.Request) {
	_, span := trace.StartSpan(r.Context(), "rpc.DapiID")
	defer span.End()

	beaconIDs, err := structs.DecodeIDs(r.URL.Query()["beacon_ids"], "beacon_ids")
	if err != nil {
		httputil.HandleError(w, err.Error(), http.StatusBadRequest)
		return
	}
	dapiID, err := ids.DeriveDapiID(beaconIDs)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.DapiIdResponse{DapiId: hexutil.Encode(dapiID[:])})
}
