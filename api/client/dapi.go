package client

import (
	"context"
	"net/url"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/api/server/structs"
)

const apiPrefix = "/dapi/v1"

// SubmitSignedUpdate posts a signed beacon update and returns the beacon id.
func (c *Client) SubmitSignedUpdate(ctx context.Context, update *structs.SignedUpdate) (string, error) {
	resp := &structs.UpdateBeaconResponse{}
	if err := c.Post(ctx, apiPrefix+"/beacons/signed", update, resp); err != nil {
		return "", err
	}
	return resp.BeaconId, nil
}

// UpdateDapiWithSignedData posts a batch of signed and stored beacons and returns the dAPI id.
func (c *Client) UpdateDapiWithSignedData(ctx context.Context, req *structs.UpdateDapiWithSignedDataRequest) (string, error) {
	resp := &structs.UpdateDapiResponse{}
	if err := c.Post(ctx, apiPrefix+"/dapis/signed", req, resp); err != nil {
		return "", err
	}
	return resp.DapiId, nil
}

// UpdateDapiWithBeacons aggregates stored beacons and returns the dAPI id.
func (c *Client) UpdateDapiWithBeacons(ctx context.Context, beaconIDs []string) (string, error) {
	resp := &structs.UpdateDapiResponse{}
	if err := c.Post(ctx, apiPrefix+"/dapis/beacons", &structs.UpdateDapiWithBeaconsRequest{BeaconIds: beaconIDs}, resp); err != nil {
		return "", err
	}
	return resp.DapiId, nil
}

// ReadDatapoint reads a beacon or dAPI as the client principal.
func (c *Client) ReadDatapoint(ctx context.Context, id [32]byte) (*structs.Datapoint, error) {
	resp := &structs.DatapointResponse{}
	if err := c.Get(ctx, apiPrefix+"/datapoints/"+hexutil.Encode(id[:]), resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// ReadWithName reads the data feed a name points at as the client principal.
func (c *Client) ReadWithName(ctx context.Context, name string) (*structs.Datapoint, error) {
	resp := &structs.DatapointResponse{}
	if err := c.Get(ctx, apiPrefix+"/names/"+url.PathEscape(name)+"/datapoint", resp); err != nil {
		return nil, err
	}
	return resp.Data, nil
}

// WellKnownRoles returns the manager and the roles derived from it.
func (c *Client) WellKnownRoles(ctx context.Context) (*structs.WellKnownRolesResponse, error) {
	resp := &structs.WellKnownRolesResponse{}
	if err := c.Get(ctx, apiPrefix+"/roles/well-known", resp); err != nil {
		return nil, err
	}
	return resp, nil
}
