package rpc

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/dapi-server/dapi"
	dbtest "github.com/oraclelabs/dapi-server/dapi-server/db/testing"
	"github.com/oraclelabs/dapi-server/network/httputil"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
	"github.com/oraclelabs/dapi-server/testing/util"
)

const now = 1_700_000_000

var (
	manager  = util.Principal(0xaa)
	stranger = util.Principal(0xbb)
)

func setupService(t *testing.T, cfg *Config) *Service {
	srv, err := dapi.NewServer(&dapi.Config{
		Database: dbtest.SetupDB(t),
		Manager:  manager,
		Clock:    func() time.Time { return time.Unix(now, 0) },
	})
	require.NoError(t, err)
	if cfg == nil {
		cfg = &Config{}
	}
	cfg.Host = "127.0.0.1"
	cfg.Server = srv
	s, err := NewService(context.Background(), cfg)
	require.NoError(t, err)
	return s
}

func hexOf(b [32]byte) string {
	return hexutil.Encode(b[:])
}

// do serves one request through the router. A nil caller sends no principal.
func do(t *testing.T, s *Service, method, path string, caller *[32]byte, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if caller != nil {
		req.Header.Set(PrincipalHeader, hexOf(*caller))
	}
	rr := httptest.NewRecorder()
	s.Router().ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) *httputil.DefaultJsonError {
	e := &httputil.DefaultJsonError{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), e))
	return e
}

func TestNewService(t *testing.T) {
	_, err := NewService(context.Background(), &Config{})
	assert.ErrorContains(t, "no dAPI server configured", err)

	s := setupService(t, nil)
	require.NoError(t, s.Status())
}

func TestErrorKindToHTTP(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, ErrorKindToHTTP(dapi.KindValidation))
	assert.Equal(t, http.StatusUnauthorized, ErrorKindToHTTP(dapi.KindAuthenticity))
	assert.Equal(t, http.StatusConflict, ErrorKindToHTTP(dapi.KindTemporal))
	assert.Equal(t, http.StatusForbidden, ErrorKindToHTTP(dapi.KindAuthorization))
	assert.Equal(t, http.StatusNotFound, ErrorKindToHTTP(dapi.KindNotFound))
	assert.Equal(t, http.StatusInternalServerError, ErrorKindToHTTP(dapi.KindInternal))
}

func TestUpdateBeaconWithSignedData(t *testing.T) {
	s := setupService(t, nil)
	airnode := util.DeterministicAirnodes(t, 1)[0]
	beaconID := airnode.BeaconID(t)

	rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil,
		structs.SignedUpdateFromConsensus(airnode.Update(t, 123, now-10)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := &structs.UpdateBeaconResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	assert.Equal(t, hexOf(beaconID), resp.BeaconId)

	t.Run("not newer", func(t *testing.T) {
		rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil,
			structs.SignedUpdateFromConsensus(airnode.Update(t, 124, now-10)))
		assert.Equal(t, http.StatusConflict, rr.Code)
		assert.Equal(t, http.StatusConflict, decodeError(t, rr).Code)
	})
	t.Run("bad signature", func(t *testing.T) {
		update := airnode.Update(t, 125, now-5)
		update.Data[31] ^= 0x01
		rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil, structs.SignedUpdateFromConsensus(update))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
	t.Run("malformed", func(t *testing.T) {
		req := structs.SignedUpdateFromConsensus(airnode.Update(t, 125, now-5))
		req.Timestamp = "soon"
		rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil, req)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.ErrorContains(t, "timestamp", decodeError(t, rr))
	})
	t.Run("empty body", func(t *testing.T) {
		rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil, nil)
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Equal(t, "No data submitted", decodeError(t, rr).Message)
	})
}

func TestReadWithDataPointID(t *testing.T) {
	s := setupService(t, nil)
	airnode := util.DeterministicAirnodes(t, 1)[0]
	beaconID := airnode.BeaconID(t)
	rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil,
		structs.SignedUpdateFromConsensus(airnode.Update(t, -42, now-10)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	path := "/dapi/v1/datapoints/" + hexOf(beaconID)
	rr = do(t, s, http.MethodGet, path, nil, nil)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = do(t, s, http.MethodGet, path, &stranger, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, s, http.MethodGet, path, &manager, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := &structs.DatapointResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	assert.DeepEqual(t, &structs.Datapoint{Value: "-42", Timestamp: "1699999990"}, resp.Data)

	rr = do(t, s, http.MethodGet, "/dapi/v1/datapoints/0x1234", &manager, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestUpdateDapi(t *testing.T) {
	s := setupService(t, nil)
	airnodes := util.DeterministicAirnodes(t, 3)
	beaconIDs := make([]string, len(airnodes))
	signedReq := &structs.UpdateDapiWithSignedDataRequest{}
	for i, a := range airnodes {
		beaconIDs[i] = hexOf(a.BeaconID(t))
		u := structs.SignedUpdateFromConsensus(a.Update(t, int64(100+5*i), uint64(now-10+i)))
		signedReq.Airnodes = append(signedReq.Airnodes, u.Airnode)
		signedReq.TemplateIds = append(signedReq.TemplateIds, u.TemplateId)
		signedReq.Timestamps = append(signedReq.Timestamps, u.Timestamp)
		signedReq.Data = append(signedReq.Data, u.Data)
		signedReq.Signatures = append(signedReq.Signatures, u.Signature)
	}

	rr := do(t, s, http.MethodGet, "/dapi/v1/ids/dapi?beacon_ids="+beaconIDs[0]+","+beaconIDs[1]+","+beaconIDs[2], nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	idResp := &structs.DapiIdResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), idResp))

	rr = do(t, s, http.MethodPost, "/dapi/v1/dapis/beacons", nil, &structs.UpdateDapiWithBeaconsRequest{BeaconIds: beaconIDs})
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = do(t, s, http.MethodPost, "/dapi/v1/dapis/signed", nil, signedReq)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := &structs.UpdateDapiResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	assert.Equal(t, idResp.DapiId, resp.DapiId)

	rr = do(t, s, http.MethodGet, "/dapi/v1/datapoints/"+resp.DapiId, &manager, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	dpResp := &structs.DatapointResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dpResp))
	assert.Equal(t, "105", dpResp.Data.Value)
	assert.Equal(t, "1699999991", dpResp.Data.Timestamp)

	rr = do(t, s, http.MethodPost, "/dapi/v1/dapis/beacons", nil, &structs.UpdateDapiWithBeaconsRequest{BeaconIds: beaconIDs})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodPost, "/dapi/v1/dapis/beacons", nil, &structs.UpdateDapiWithBeaconsRequest{BeaconIds: beaconIDs[:1]})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	signedReq.Signatures = signedReq.Signatures[:2]
	rr = do(t, s, http.MethodPost, "/dapi/v1/dapis/signed", nil, signedReq)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestBeaconID(t *testing.T) {
	s := setupService(t, nil)
	airnode := util.DeterministicAirnodes(t, 1)[0]
	path := "/dapi/v1/ids/beacon?airnode=" + hexutil.Encode(airnode.Signer.PublicKey()) +
		"&template_id=" + hexOf(airnode.TemplateID)
	rr := do(t, s, http.MethodGet, path, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := &structs.BeaconIdResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), resp))
	assert.Equal(t, hexOf(airnode.BeaconID(t)), resp.BeaconId)

	rr = do(t, s, http.MethodGet, "/dapi/v1/ids/beacon?airnode=0x&template_id="+hexOf(airnode.TemplateID), nil, nil)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestNames(t *testing.T) {
	s := setupService(t, nil)
	airnode := util.DeterministicAirnodes(t, 1)[0]
	beaconID := airnode.BeaconID(t)
	rr := do(t, s, http.MethodPost, "/dapi/v1/beacons/signed", nil,
		structs.SignedUpdateFromConsensus(airnode.Update(t, 7, now-10)))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/dapi/v1/names/ETH-USD", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	req := &structs.SetNameRequest{Name: "ETH-USD", DataFeedId: hexOf(beaconID)}
	rr = do(t, s, http.MethodPost, "/dapi/v1/names", &stranger, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = do(t, s, http.MethodPost, "/dapi/v1/names", nil, req)
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	rr = do(t, s, http.MethodPost, "/dapi/v1/names", &manager, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, s, http.MethodGet, "/dapi/v1/names/BTC-USD", nil, nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	rr = do(t, s, http.MethodGet, "/dapi/v1/names/ETH-USD", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	nameResp := &structs.NameResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), nameResp))
	assert.Equal(t, hexOf(beaconID), nameResp.DataFeedId)

	rr = do(t, s, http.MethodGet, "/dapi/v1/names/ETH-USD/datapoint", &stranger, nil)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = do(t, s, http.MethodGet, "/dapi/v1/names/ETH-USD/datapoint", &manager, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	dpResp := &structs.DatapointResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), dpResp))
	assert.Equal(t, "7", dpResp.Data.Value)
}

func TestRoles(t *testing.T) {
	s := setupService(t, nil)
	rr := do(t, s, http.MethodGet, "/dapi/v1/roles/well-known", nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	roles := &structs.WellKnownRolesResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), roles))
	assert.Equal(t, hexOf(manager), roles.Manager)

	req := &structs.RoleRequest{Role: roles.NameSetterRole, Who: hexOf(stranger)}
	rr = do(t, s, http.MethodPost, "/dapi/v1/roles/grant", &stranger, req)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	rr = do(t, s, http.MethodPost, "/dapi/v1/roles/grant", &manager, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	hasRole := &structs.HasRoleResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), hasRole))
	assert.Equal(t, true, hasRole.HasRole)

	rr = do(t, s, http.MethodGet, "/dapi/v1/roles/"+roles.NameSetterRole+"/"+hexOf(stranger), nil, nil)
	require.Equal(t, http.StatusOK, rr.Code)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), hasRole))
	assert.Equal(t, true, hasRole.HasRole)

	rr = do(t, s, http.MethodPost, "/dapi/v1/roles/renounce", &stranger, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), hasRole))
	assert.Equal(t, false, hasRole.HasRole)
}

func TestWhitelist(t *testing.T) {
	s := setupService(t, nil)
	feed := util.DeterministicAirnodes(t, 1)[0]
	feedID := hexOf(feed.BeaconID(t))
	reader := util.Principal(0xcc)
	readerPath := "/dapi/v1/readers/" + feedID + "/" + hexOf(reader)

	canRead := &structs.ReaderCanReadResponse{}
	rr := do(t, s, http.MethodGet, readerPath, nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), canRead))
	assert.Equal(t, false, canRead.CanRead)

	expReq := &structs.WhitelistExpirationRequest{DataFeedId: feedID, Reader: hexOf(reader), ExpirationTimestamp: "1700000100"}
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/expiration", &stranger, expReq)
	assert.Equal(t, http.StatusForbidden, rr.Code)
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/expiration", &manager, expReq)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	status := &structs.WhitelistStatusResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), status))
	assert.Equal(t, "1700000100", status.ExpirationTimestamp)

	rr = do(t, s, http.MethodGet, readerPath, nil, nil)
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), canRead))
	assert.Equal(t, true, canRead.CanRead)

	expReq.ExpirationTimestamp = "1700000050"
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/extend", &manager, expReq)
	assert.Equal(t, http.StatusConflict, rr.Code)

	indefReq := &structs.IndefiniteWhitelistRequest{DataFeedId: feedID, Reader: hexOf(reader), Status: true}
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/indefinite", &manager, indefReq)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	indef := &structs.IndefiniteWhitelistResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), indef))
	assert.Equal(t, "1", indef.IndefiniteWhitelistCount)

	rr = do(t, s, http.MethodGet, "/dapi/v1/whitelist/"+feedID+"/"+hexOf(reader)+"?setter="+hexOf(manager), nil, nil)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	status = &structs.WhitelistStatusResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), status))
	assert.Equal(t, "1", status.IndefiniteWhitelistCount)
	require.NotNil(t, status.SetterStatus)
	assert.Equal(t, true, *status.SetterStatus)

	revokeReq := &structs.RevokeIndefiniteWhitelistRequest{DataFeedId: feedID, Reader: hexOf(reader), Setter: hexOf(manager)}
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/revoke", nil, revokeReq)
	assert.Equal(t, http.StatusForbidden, rr.Code)

	revokeReq.Setter = hexOf(stranger)
	rr = do(t, s, http.MethodPost, "/dapi/v1/whitelist/revoke", nil, revokeReq)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	revoked := &structs.RevokeIndefiniteWhitelistResponse{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), revoked))
	assert.Equal(t, false, revoked.Revoked)
	assert.Equal(t, "1", revoked.IndefiniteWhitelistCount)
}

func TestRateLimit(t *testing.T) {
	s := setupService(t, &Config{WriteRate: 0.001, WriteBurst: 1})
	req := &structs.RoleRequest{Role: hexOf([32]byte{0x01}), Who: hexOf(stranger)}

	rr := do(t, s, http.MethodPost, "/dapi/v1/roles/renounce", &stranger, req)
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	rr = do(t, s, http.MethodPost, "/dapi/v1/roles/renounce", &stranger, req)
	assert.Equal(t, http.StatusTooManyRequests, rr.Code)

	rr = do(t, s, http.MethodPost, "/dapi/v1/roles/renounce", &manager, &structs.RoleRequest{Role: req.Role, Who: hexOf(manager)})
	assert.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	// Reads are not limited.
	rr = do(t, s, http.MethodGet, "/dapi/v1/roles/well-known", &stranger, nil)
	assert.Equal(t, http.StatusOK, rr.Code)
}
