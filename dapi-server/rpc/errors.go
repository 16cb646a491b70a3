package rpc

import (
	"net/http"

	"github.com/oraclelabs/dapi-server/api/server"
	"github.com/oraclelabs/dapi-server/dapi-server/dapi"
	"github.com/oraclelabs/dapi-server/network/httputil"
)

// ErrorKindToHTTP maps an error kind to the HTTP status returned to the caller.
func ErrorKindToHTTP(kind dapi.Kind) int {
	switch kind {
	case dapi.KindValidation:
		return http.StatusBadRequest
	case dapi.KindAuthenticity:
		return http.StatusUnauthorized
	case dapi.KindTemporal:
		return http.StatusConflict
	case dapi.KindAuthorization:
		return http.StatusForbidden
	case dapi.KindNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// handleServerError writes err with the status of its kind. Internal errors are
// logged and not echoed to the caller.
func handleServerError(w http.ResponseWriter, r *http.Request, err error) {
	kind := dapi.KindOf(err)
	code := ErrorKindToHTTP(kind)
	if kind == dapi.KindInternal {
		log.WithError(err).WithField("requestId", server.RequestID(r.Context())).
			WithField("path", r.URL.Path).Error("Could not serve request")
		httputil.HandleError(w, "internal error", code)
		return
	}
	httputil.HandleError(w, err.Error(), code)
}
