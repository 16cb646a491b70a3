package rpc

import (
	"context"
	"net/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/monitoring/tracing"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"go.opencensus.io/trace"
)

type roleChange func(ctx context.Context, caller, role, who [32]byte) error

// GrantRole grants a role on behalf of the caller.
func (s *Service) GrantRole(w http.ResponseWriter, r *http.Request) {
	s.changeRole(w, r, "rpc.GrantRole", s.cfg.Server.GrantRole)
}

// RevokeRole revokes a role on behalf of the caller.
func (s *Service) RevokeRole(w http.ResponseWriter, r *http.Request) {
	s.changeRole(w, r, "rpc.RevokeRole", s.cfg.Server.RevokeRole)
}

// RenounceRole drops a role held by the caller.
func (s *Service) RenounceRole(w http.ResponseWriter, r *http.Request) {
	s.changeRole(w, r, "rpc.RenounceRole", s.cfg.Server.RenounceRole)
}

func (s *Service) changeRole(w http.ResponseWriter, r *http.Request, spanName string, change roleChange) {
	ctx, span := trace.StartSpan(r.Context(), spanName)
	defer span.End()

	caller, ok := principal(w, r)
	if !ok {
		return
	}
	var req structs.RoleRequest
	if !decodeBody(w, r, &req) {
		return
	}
	role, ok := decodeID(w, "role", req.Role)
	if !ok {
		return
	}
	who, ok := decodePrincipal(w, "who", req.Who)
	if !ok {
		return
	}
	if err := change(ctx, caller, role, who); err != nil {
		tracing.AnnotateError(span, err)
		handleServerError(w, r, err)
		return
	}
	hasRole, err := s.cfg.Server.HasRole(ctx, role, who)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.HasRoleResponse{HasRole: hasRole})
}

// HasRole reports whether who holds role.
func (s *Service) HasRole(w http.ResponseWriter, r *http.Request) {
	ctx, span := trace.StartSpan(r.Context(), "rpc.HasRole")
	defer span.End()

	role, ok := decodeID(w, "role", pathVar(r, "role"))
	if !ok {
		return
	}
	who, ok := decodePrincipal(w, "who", pathVar(r, "who"))
	if !ok {
		return
	}
	hasRole, err := s.cfg.Server.HasRole(ctx, role, who)
	if err != nil {
		handleServerError(w, r, err)
		return
	}
	httputil.WriteJson(w, &structs.HasRoleResponse{HasRole: hasRole})
}

// WellKnownRoles lists the manager and the roles derived from it.
func (s *Service) WellKnownRoles(w http.ResponseWriter, _ *http.Request) {
	roles := s.cfg.Server.Roles()
	httputil.WriteJson(w, &structs.WellKnownRolesResponse{
		Manager:                         hexutil.Encode(roles.Manager[:]),
		AdminRole:                       hexutil.Encode(roles.AdminRole[:]),
		UnlimitedReaderRole:             hexutil.Encode(roles.UnlimitedReaderRole[:]),
		NameSetterRole:                  hexutil.Encode(roles.NameSetterRole[:]),
		WhitelistExpirationExtenderRole: hexutil.Encode(roles.WhitelistExpirationExtenderRole[:]),
		WhitelistExpirationSetterRole:   hexutil.Encode(roles.WhitelistExpirationSetterRole[:]),
		IndefiniteWhitelisterRole:       hexutil.Encode(roles.IndefiniteWhitelisterRole[:]),
	})
}
