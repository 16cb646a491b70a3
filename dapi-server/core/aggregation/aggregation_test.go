package aggregation_test

import (
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/dapi-server/core/aggregation"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func ints(values ...int64) []*uint256.Int {
	out := make([]*uint256.Int, len(values))
	for i, v := range values {
		out[i] = primitives.Int256FromInt64(v)
	}
	return out
}

func TestMedian(t *testing.T) {
	tests := []struct {
		name   string
		values []int64
		want   int64
	}{
		{name: "single", values: []int64{7}, want: 7},
		{name: "odd sorted", values: []int64{100, 105, 110}, want: 105},
		{name: "odd unsorted", values: []int64{110, 100, 105}, want: 105},
		{name: "even averages central values", values: []int64{1, 2, 3, 4}, want: 2},
		{name: "even exact", values: []int64{10, 20}, want: 15},
		{name: "negatives sort below positives", values: []int64{-5, 3, -1}, want: -1},
		{name: "even negative rounds toward zero", values: []int64{-3, -2}, want: -2},
		{name: "even mixed rounds toward zero", values: []int64{-3, 0}, want: -1},
		{name: "outlier ignored", values: []int64{100, 101, 1000000}, want: 101},
		{name: "duplicates", values: []int64{5, 5, 5, 1}, want: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := aggregation.Median(ints(tt.values...))
			require.NoError(t, err)
			assert.Equal(t, tt.want, primitives.Int256ToBig(got).Int64())
		})
	}
}

func TestMedian_DoesNotMutateInput(t *testing.T) {
	values := ints(3, 1, 2)
	_, err := aggregation.Median(values)
	require.NoError(t, err)
	assert.Equal(t, uint64(3), values[0].Uint64())
	assert.Equal(t, uint64(1), values[1].Uint64())
}

func TestMedian_Empty(t *testing.T) {
	_, err := aggregation.Median(nil)
	assert.ErrorIs(t, err, aggregation.ErrNoDatapoints)
	_, err = aggregation.MeanTimestamp(nil)
	assert.ErrorIs(t, err, aggregation.ErrNoDatapoints)
	_, err = aggregation.Aggregate(nil)
	assert.ErrorIs(t, err, aggregation.ErrNoDatapoints)
}

func TestMeanTimestamp(t *testing.T) {
	ts, err := aggregation.MeanTimestamp([]uint32{1000, 1001})
	require.NoError(t, err)
	assert.Equal(t, uint32(1000), ts, "mean must be floored")

	ts, err = aggregation.MeanTimestamp([]uint32{4294967295, 4294967295, 4294967295})
	require.NoError(t, err)
	assert.Equal(t, uint32(4294967295), ts, "sum must not overflow")
}

func TestAggregate(t *testing.T) {
	const ts = 1650000000
	dp, err := aggregation.Aggregate([]*primitives.Datapoint{
		primitives.DatapointFromInt64(100, ts),
		primitives.DatapointFromInt64(105, ts),
		primitives.DatapointFromInt64(110, ts),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(105), dp.BigValue().Int64())
	assert.Equal(t, uint32(ts), dp.Timestamp)

	_, err = aggregation.Aggregate([]*primitives.Datapoint{nil})
	assert.ErrorContains(t, "datapoint 0 is nil", err)
}

func TestAggregate_OrderInsensitive(t *testing.T) {
	fuzzer := fuzz.NewWithSeed(1).NilChance(0)
	for i := 0; i < 50; i++ {
		var raw []int32
		fuzzer.NumElements(2, 9).Fuzz(&raw)
		stamps := make([]uint32, len(raw))
		for j := range stamps {
			fuzzer.Fuzz(&stamps[j])
		}
		datapoints := make([]*primitives.Datapoint, len(raw))
		for j := range raw {
			datapoints[j] = primitives.DatapointFromInt64(int64(raw[j]), stamps[j])
		}
		want, err := aggregation.Aggregate(datapoints)
		require.NoError(t, err)

		reversed := make([]*primitives.Datapoint, len(datapoints))
		for j := range datapoints {
			reversed[len(datapoints)-1-j] = datapoints[j]
		}
		got, err := aggregation.Aggregate(reversed)
		require.NoError(t, err)
		assert.DeepEqual(t, want, got)
	}
}
