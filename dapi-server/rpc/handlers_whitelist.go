package rpc

import (
	"context"
	"net/http"
	"strconv"

	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"go.opencensus.io/trace"
)

type expirationChange func(ctx context.Context, caller, feedID, reader [32]byte, expiration uint32) error

// SetWhitelistExpiration sets the whitelist expiration of a reader.
func (s *Service) SetWhitelistExpiration(w http.ResponseWriter, r *http.Request) {
	s.changeExpiration(w, r, "rpc.SetWhitelistExpiration", s.cfg.Server.SetWhitelistExpiration)
}

// ExtendWhitelistExpiration moves the whitelist expiration of a reader forward.
func (s *Service) ExtendWhitelistExpiration(w http.ResponseWriter, r *http.Request) {
	s.changeExpiration(w, r, "rpc.ExtendWhitelistExpiration", s.cfg.Server.ExtendWhitelistExpiration)
}

func (s *Service) changeExpiration(w http.ResponseWriter, r *http.Request, spanName string, change expirationChange) {
	ctx, span := trace.StartSpan(r.Context(), spanName)
	defer span.End()

	caller, ok := principal(w, r)
	if !ok {
		return
	}
	var req structs.WhitelistExpirationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	feedID, ok := decodeID(w, "data_feed_id", req.DataFeedId)
	if !ok {
		return
	}
	reader, ok := decodePrincipal(w, "reader", req.Reader)
	if !ok {
		return
	}
	expiration, ok := decodeTimestamp(w, "expiration_timestamp", req.ExpirationTimestamp)
	if !ok {
		return
	}
	if err := change(ctx, caller, feedID, reader, expiration); err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	s.writeWhitelistStatus(ctx, w, r, feedID, reader, nil)
}

// SetIndefiniteWhitelistStatus sets or clears the caller's indefinite whitelisting of a reader.
func (s *Service) SetIndefiniteWhitelistStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.SetIndefiniteWhitelistStatus")
	defer span.End()

	caller, ok := principal(w, r)
	if !ok {
		return
	}
	var req structs.IndefiniteWhitelistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	feedID, ok := decodeID(w, "data_feed_id", req.DataFeedId)
	if !ok {
		return
	}
	reader, ok := decodePrincipal(w, "reader", req.Reader)
	if !ok {
		return
	}
	count, err := s.cfg.Server.SetIndefiniteWhitelistStatus(ctx, caller, feedID, reader, req.Status)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.IndefiniteWhitelistResponse{
		IndefiniteWhitelistCount: strconv.FormatUint(count, 10),
	})
}

// RevokeIndefiniteWhitelistStatus clears the flag of a setter that lost its role.
// Anyone may call it.
func (s *Service) RevokeIndefiniteWhitelistStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.RevokeIndefiniteWhitelistStatus")
	defer span.End()

	var req structs.RevokeIndefiniteWhitelistRequest
	if !decodeBody(w, r, &req) {
		return
	}
	feedID, ok := decodeID(w, "data_feed_id", req.DataFeedId)
	if !ok {
		return
	}
	reader, ok := decodePrincipal(w, "reader", req.Reader)
	if !ok {
		return
	}
	setter, ok := decodePrincipal(w, "setter", req.Setter)
	if !ok {
		return
	}
	revoked, count, err := s.cfg.Server.RevokeIndefiniteWhitelistStatus(ctx, feedID, reader, setter)
	if err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.RevokeIndefiniteWhitelistResponse{
		Revoked:                  revoked,
		IndefiniteWhitelistCount: strconv.FormatUint(count, 10),
	})
}

// WhitelistStatus returns the whitelist status of a reader, and the
// indefinite whitelisting flag of the setter query parameter when given.
func (s *Service) WhitelistStatus(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.WhitelistStatus")
	defer span.End()

	feedID, ok := decodeID(w, "feed", pathVar(r, "feed"))
	if !ok {
		return
	}
	reader, ok := decodePrincipal(w, "reader", pathVar(r, "reader"))
	if !ok {
		return
	}
	var setter *[32]byte
	if raw := r.URL.Query().Get("setter"); raw != "" {
		p, ok := decodePrincipal(w, "setter", raw)
		if !ok {
			return
		}
		setter = &p
	}
	s.writeWhitelistStatus(ctx, w, r, feedID, reader, setter)
}

func (s *Service) writeWhitelistStatus(ctx context.Context, w http.ResponseWriter, r *http.Request, feedID, reader [32]byte, setter *[32]byte) {
	status, err := s.cfg.Server.WhitelistStatus(ctx, feedID, reader)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	resp := structs.WhitelistStatusFromConsensus(status)
	if setter != nil {
		set, err := s.cfg.Server.IndefiniteWhitelistSetterStatus(ctx, feedID, reader, *setter)
		if err != nil {
			handleServerError(w, r, err)
			return
		}
		resp.SetterStatus = &set
	}
	httputil.WriteJson(w, resp)
}
