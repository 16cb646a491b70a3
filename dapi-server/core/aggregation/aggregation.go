// Package aggregation combines beacon datapoints into a dAPI datapoint. The
// value is the median of the beacon values and the timestamp is the floor of
// the mean of the beacon timestamps.
package aggregation

import (
	"sort"

	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
)

// ErrNoDatapoints is returned when aggregating an empty set.
var ErrNoDatapoints = errors.New("no datapoints to aggregate")

// Median returns the median of signed two's complement values. For an even
// number of values it returns the mean of the two central values, rounded
// toward zero. The input is left unmodified.
func Median(values []*uint256.Int) (*uint256.Int, error) {
	if len(values) == 0 {
		return nil, ErrNoDatapoints
	}
	sorted := make([]*uint256.Int, len(values))
	copy(sorted, values)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].Slt(sorted[j])
	})
	mid := len(sorted) / 2
	if len(sorted)%2 == 1 {
		return new(uint256.Int).Set(sorted[mid]), nil
	}
	return Average(sorted[mid-1], sorted[mid]), nil
}

// Average returns the mean of two signed values rounded toward zero. Values
// in the int224 range cannot overflow the 256 bit sum.
func Average(a, b *uint256.Int) *uint256.Int {
	sum := new(uint256.Int).Add(a, b)
	return sum.SDiv(sum, uint256.NewInt(2))
}

// MeanTimestamp returns the floor of the mean of the timestamps.
func MeanTimestamp(timestamps []uint32) (uint32, error) {
	if len(timestamps) == 0 {
		return 0, ErrNoDatapoints
	}
	var sum uint64
	for _, ts := range timestamps {
		sum += uint64(ts)
	}
	return uint32(sum / uint64(len(timestamps))), nil
}

// Aggregate returns the median value and mean timestamp of the datapoints.
func Aggregate(datapoints []*primitives.Datapoint) (*primitives.Datapoint, error) {
	if len(datapoints) == 0 {
		return nil, ErrNoDatapoints
	}
	values := make([]*uint256.Int, len(datapoints))
	timestamps := make([]uint32, len(datapoints))
	for i, dp := range datapoints {
		if dp == nil || dp.Value == nil {
			return nil, errors.Errorf("datapoint %d is nil", i)
		}
		values[i] = dp.Value
		timestamps[i] = dp.Timestamp
	}
	value, err := Median(values)
	if err != nil {
		return nil, err
	}
	timestamp, err := MeanTimestamp(timestamps)
	if err != nil {
		return nil, err
	}
	return &primitives.Datapoint{Value: value, Timestamp: timestamp}, nil
}
