package primitives_test

import (
	"math/big"
	"testing"

	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func TestDatapoint_MarshalUnmarshal(t *testing.T) {
	tests := []struct {
		name  string
		value int64
		ts    uint32
	}{
		{name: "zero", value: 0, ts: 0},
		{name: "positive", value: 123, ts: 1000},
		{name: "negative", value: -5, ts: 4294967295},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dp := primitives.DatapointFromInt64(tt.value, tt.ts)
			enc := dp.Marshal()
			require.Equal(t, primitives.DatapointLength, len(enc))
			decoded, err := primitives.UnmarshalDatapoint(enc)
			require.NoError(t, err)
			assert.Equal(t, tt.ts, decoded.Timestamp)
			assert.Equal(t, tt.value, decoded.BigValue().Int64())
		})
	}
}

func TestDatapoint_EncodingLayout(t *testing.T) {
	enc := primitives.DatapointFromInt64(-1, 1000).Marshal()
	for i := 0; i < 32; i++ {
		require.Equal(t, byte(0xff), enc[i], "byte %d of a negative value must be sign extended", i)
	}
	assert.DeepEqual(t, []byte{0, 0, 3, 232}, enc[32:])
}

func TestUnmarshalDatapoint_InvalidLength(t *testing.T) {
	_, err := primitives.UnmarshalDatapoint(make([]byte, 35))
	assert.ErrorIs(t, err, primitives.ErrInvalidDatapointLength)
}

func TestDatapoint_Copy(t *testing.T) {
	dp := primitives.DatapointFromInt64(7, 1)
	cp := dp.Copy()
	cp.Value.SetUint64(8)
	cp.Timestamp = 2
	assert.Equal(t, int64(7), dp.BigValue().Int64())
	assert.Equal(t, uint32(1), dp.Timestamp)
	var nilDatapoint *primitives.Datapoint
	assert.IsNil(t, nilDatapoint.Copy())
	assert.Equal(t, "{value: 7, timestamp: 1}", dp.String())
}

func TestInt256_BigConversions(t *testing.T) {
	for _, s := range []string{"0", "1", "-1", "123456789012345678901234567890", "-57896044618658097711785492504343953926634992332820282019728792003956564819968"} {
		v, err := primitives.Int256FromDecimal(s)
		require.NoError(t, err)
		assert.Equal(t, s, primitives.Int256ToBig(v).String())
	}

	tooLarge := new(big.Int).Lsh(big.NewInt(1), 255)
	_, err := primitives.Int256FromBig(tooLarge)
	assert.ErrorContains(t, "overflows int256", err)

	tooSmall := new(big.Int).Neg(new(big.Int).Add(tooLarge, big.NewInt(1)))
	_, err = primitives.Int256FromBig(tooSmall)
	assert.ErrorContains(t, "overflows int256", err)

	_, err = primitives.Int256FromDecimal("12a")
	assert.ErrorContains(t, "could not parse", err)
}

func TestCheckInt224(t *testing.T) {
	limit := new(big.Int).Lsh(big.NewInt(1), 223)
	maxValue := new(big.Int).Sub(limit, big.NewInt(1))
	minValue := new(big.Int).Neg(limit)

	inRange := []*big.Int{big.NewInt(0), big.NewInt(-1), maxValue, minValue}
	for _, b := range inRange {
		v, err := primitives.Int256FromBig(b)
		require.NoError(t, err)
		assert.NoError(t, primitives.CheckInt224(v), "value %s", b.String())
	}

	outOfRange := []*big.Int{limit, new(big.Int).Sub(minValue, big.NewInt(1))}
	for _, b := range outOfRange {
		v, err := primitives.Int256FromBig(b)
		require.NoError(t, err)
		assert.ErrorIs(t, primitives.CheckInt224(v), primitives.ErrValueOutOfRange)
	}
	assert.NoError(t, primitives.CheckInt224(new(uint256.Int).Neg(uint256.NewInt(1))))
}
