package structs

import (
	"errors"
	"testing"

	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
	"github.com/oraclelabs/dapi-server/testing/util"
	"github.com/oraclelabs/dapi-server/types/primitives"
)

func TestSignedUpdate_ToConsensus(t *testing.T) {
	airnode := util.DeterministicAirnodes(t, 2)[1]
	u := airnode.Update(t, -42, 1650000000)

	got, err := SignedUpdateFromConsensus(u).ToConsensus()
	require.NoError(t, err)
	assert.DeepEqual(t, u, got)

	unsigned := SignedUpdateFromConsensus(u)
	unsigned.Signature = "0x"
	got, err = unsigned.ToConsensus()
	require.NoError(t, err)
	assert.Equal(t, 0, len(got.Signature))
}

func TestSignedUpdate_ToConsensus_Errors(t *testing.T) {
	valid := SignedUpdateFromConsensus(util.DeterministicAirnodes(t, 1)[0].Update(t, 1, 1))
	tests := []struct {
		field  string
		mutate func(u *SignedUpdate)
	}{
		{field: "airnode", mutate: func(u *SignedUpdate) { u.Airnode = "abc" }},
		{field: "template_id", mutate: func(u *SignedUpdate) { u.TemplateId = "0x01" }},
		{field: "timestamp", mutate: func(u *SignedUpdate) { u.Timestamp = "-1" }},
		{field: "data", mutate: func(u *SignedUpdate) { u.Data = "0xzz" }},
		{field: "signature", mutate: func(u *SignedUpdate) { u.Signature = "zz" }},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			u := *valid
			tt.mutate(&u)
			_, err := u.ToConsensus()
			var decodeErr *DecodeError
			require.Equal(t, true, errors.As(err, &decodeErr))
			assert.Equal(t, tt.field, decodeErr.Field)
		})
	}
}

func TestUpdateDapiWithSignedDataRequest_ToConsensus(t *testing.T) {
	airnodes := util.DeterministicAirnodes(t, 2)
	first := SignedUpdateFromConsensus(airnodes[0].Update(t, 1, 10))
	second := SignedUpdateFromConsensus(airnodes[1].Update(t, 2, 20))
	req := &UpdateDapiWithSignedDataRequest{
		Airnodes:    []string{first.Airnode, second.Airnode},
		TemplateIds: []string{first.TemplateId, second.TemplateId},
		Timestamps:  []string{first.Timestamp, second.Timestamp},
		Data:        []string{first.Data, second.Data},
		Signatures:  []string{first.Signature, ""},
	}
	a, tpl, ts, data, sigs, err := req.ToConsensus()
	require.NoError(t, err)
	assert.Equal(t, 2, len(a))
	assert.Equal(t, airnodes[1].TemplateID, tpl[1])
	assert.DeepEqual(t, []uint64{10, 20}, ts)
	assert.Equal(t, 32, len(data[0]))
	assert.NotEqual(t, 0, len(sigs[0]))
	assert.Equal(t, 0, len(sigs[1]))

	req.TemplateIds[1] = "0x"
	_, _, _, _, _, err = req.ToConsensus()
	assert.ErrorContains(t, "template_ids[1]", err)
}

func TestDatapointFromConsensus(t *testing.T) {
	got := DatapointFromConsensus(primitives.DatapointFromInt64(-7, 99))
	assert.DeepEqual(t, &Datapoint{Value: "-7", Timestamp: "99"}, got)
}
