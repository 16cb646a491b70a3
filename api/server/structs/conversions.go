package structs

import (
	"strconv"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

// DecodeError names the request field that failed to decode.
type DecodeError struct {
	Field string
	err   error
}

// NewDecodeError wraps err for field.
func NewDecodeError(err error, field string) *DecodeError {
	return &DecodeError{Field: field, err: err}
}

func (e *DecodeError) Error() string {
	return "could not decode " + e.Field + ": " + e.err.Error()
}

func (e *DecodeError) Unwrap() error {
	return e.err
}

func (u *SignedUpdate) ToConsensus() (*signed.Update, error) {
	if u == nil {
		return nil, errors.New("nil signed update")
	}
	airnode, err := bytesutil.DecodeHexWithPrefix(u.Airnode)
	if err != nil {
		return nil, NewDecodeError(err, "airnode")
	}
	templateID, err := bytesutil.DecodeHexBytes32(u.TemplateId)
	if err != nil {
		return nil, NewDecodeError(err, "template_id")
	}
	timestamp, err := strconv.ParseUint(u.Timestamp, 10, 64)
	if err != nil {
		return nil, NewDecodeError(err, "timestamp")
	}
	data, err := bytesutil.DecodeHexWithPrefix(u.Data)
	if err != nil {
		return nil, NewDecodeError(err, "data")
	}
	var signature []byte
	if u.Signature != "" && u.Signature != "0x" {
		signature, err = bytesutil.DecodeHexWithPrefix(u.Signature)
		if err != nil {
			return nil, NewDecodeError(err, "signature")
		}
	}
	return &signed.Update{
		Airnode:    airnode,
		TemplateID: templateID,
		Timestamp:  timestamp,
		Data:       data,
		Signature:  signature,
	}, nil
}

func SignedUpdateFromConsensus(u *signed.Update) *SignedUpdate {
	return &SignedUpdate{
		Airnode:    hexutil.Encode(u.Airnode),
		TemplateId: hexutil.Encode(u.TemplateID[:]),
		Timestamp:  strconv.FormatUint(u.Timestamp, 10),
		Data:       hexutil.Encode(u.Data),
		Signature:  hexutil.Encode(u.Signature),
	}
}

// ToConsensus decodes the parallel lists of the request. Lists of different
// lengths are passed through unchanged so the server can reject them.
func (r *UpdateDapiWithSignedDataRequest) ToConsensus() ([][]byte, [][32]byte, []uint64, [][]byte, [][]byte, error) {
	airnodes := make([][]byte, len(r.Airnodes))
	for i, s := range r.Airnodes {
		b, err := bytesutil.DecodeHexWithPrefix(s)
		if err != nil {
			return nil, nil, nil, nil, nil, NewDecodeError(err, "airnodes["+strconv.Itoa(i)+"]")
		}
		airnodes[i] = b
	}
	templateIDs, err := DecodeIDs(r.TemplateIds, "template_ids")
	if err != nil {
		return nil, nil, nil, nil, nil, err
	}
	timestamps := make([]uint64, len(r.Timestamps))
	for i, s := range r.Timestamps {
		ts, err := strconv.ParseUint(s, 10, 64)
		if err != nil {
			return nil, nil, nil, nil, nil, NewDecodeError(err, "timestamps["+strconv.Itoa(i)+"]")
		}
		timestamps[i] = ts
	}
	data := make([][]byte, len(r.Data))
	for i, s := range r.Data {
		b, err := bytesutil.DecodeHexWithPrefix(s)
		if err != nil {
			return nil, nil, nil, nil, nil, NewDecodeError(err, "data["+strconv.Itoa(i)+"]")
		}
		data[i] = b
	}
	signatures := make([][]byte, len(r.Signatures))
	for i, s := range r.Signatures {
		if s == "" || s == "0x" {
			continue
		}
		b, err := bytesutil.DecodeHexWithPrefix(s)
		if err != nil {
			return nil, nil, nil, nil, nil, NewDecodeError(err, "signatures["+strconv.Itoa(i)+"]")
		}
		signatures[i] = b
	}
	return airnodes, templateIDs, timestamps, data, signatures, nil
}

// DecodeIDs decodes a list of 0x prefixed 32 byte ids.
func DecodeIDs(ids []string, field string) ([][32]byte, error) {
	out := make([][32]byte, len(ids))
	for i, s := range ids {
		id, err := bytesutil.DecodeHexBytes32(s)
		if err != nil {
			return nil, NewDecodeError(err, field+"["+strconv.Itoa(i)+"]")
		}
		out[i] = id
	}
	return out, nil
}

func DatapointFromConsensus(dp *primitives.Datapoint) *Datapoint {
	return &Datapoint{
		Value:     dp.BigValue().String(),
		Timestamp: strconv.FormatUint(uint64(dp.Timestamp), 10),
	}
}

func WhitelistStatusFromConsensus(status *primitives.WhitelistStatus) *WhitelistStatusResponse {
	return &WhitelistStatusResponse{
		ExpirationTimestamp:      strconv.FormatUint(uint64(status.ExpirationTimestamp), 10),
		IndefiniteWhitelistCount: strconv.FormatUint(status.IndefiniteWhitelistCount, 10),
	}
}
