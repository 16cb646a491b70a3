package rpc

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"github.com/oraclelabs/dapi-server/dapi-server/core/names"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"github.com/oraclelabs/dapi-server/types/primitives"
)

// PrincipalHeader carries the caller identity, authenticated by the host in
// front of the API.
const PrincipalHeader = "X-Principal"

// principal returns the caller of the request, writing an error response if
// the header is missing or malformed.
func principal(w http.ResponseWriter, r *http.Request) ([32]byte, bool) {
	raw := r.Header.Get(PrincipalHeader)
	if raw == "" {
		httputil.HandleError(w, PrincipalHeader+" header is required", http.StatusUnauthorized)
		return [32]byte{}, false
	}
	p, err := primitives.PrincipalFromString(raw)
	if err != nil {
		httputil.HandleError(w, "Invalid "+PrincipalHeader+" header: "+err.Error(), http.StatusBadRequest)
		return [32]byte{}, false
	}
	return p, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	switch {
	case err == io.EOF:
		httputil.HandleError(w, "No data submitted", http.StatusBadRequest)
		return false
	case err != nil:
		httputil.HandleError(w, "Could not decode request body: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}

func decodeID(w http.ResponseWriter, name, s string) ([32]byte, bool) {
	if s == "" {
		httputil.HandleError(w, name+" is required", http.StatusBadRequest)
		return [32]byte{}, false
	}
	id, err := bytesutil.DecodeHexBytes32(s)
	if err != nil {
		httputil.HandleError(w, name+" is invalid: "+err.Error(), http.StatusBadRequest)
		return [32]byte{}, false
	}
	return id, true
}

func decodePrincipal(w http.ResponseWriter, name, s string) ([32]byte, bool) {
	p, err := primitives.PrincipalFromString(s)
	if err != nil {
		httputil.HandleError(w, name+" is invalid: "+err.Error(), http.StatusBadRequest)
		return [32]byte{}, false
	}
	return p, true
}

// decodeName accepts either a 0x prefixed 32 byte hex name or a UTF-8 name of
// at most 32 bytes.
func decodeName(w http.ResponseWriter, s string) ([32]byte, bool) {
	if s == "" {
		httputil.HandleError(w, "name is required", http.StatusBadRequest)
		return [32]byte{}, false
	}
	var (
		name [32]byte
		err  error
	)
	if strings.HasPrefix(s, "0x") && len(s) == 66 {
		name, err = bytesutil.DecodeHexBytes32(s)
	} else {
		name, err = names.NameFromString(s)
	}
	if err != nil {
		httputil.HandleError(w, "name is invalid: "+err.Error(), http.StatusBadRequest)
		return [32]byte{}, false
	}
	return name, true
}

func decodeTimestamp(w http.ResponseWriter, name, s string) (uint32, bool) {
	ts, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		httputil.HandleError(w, name+" is invalid: "+err.Error(), http.StatusBadRequest)
		return 0, false
	}
	return uint32(ts), true
}

func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}
