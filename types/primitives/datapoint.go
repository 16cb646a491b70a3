// Package primitives defines the value types stored and served by the dAPI server.
package primitives

import (
	"fmt"
	"math/big"

	"github.com/holiman/uint256"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/pkg/errors"
)

// DatapointLength is the length of an encoded datapoint: a 32 byte two's
// complement value followed by a 4 byte big endian timestamp.
const DatapointLength = 36

var (
	// ErrInvalidDatapointLength is returned when decoding a malformed datapoint.
	ErrInvalidDatapointLength = errors.New("invalid datapoint length")
	// ErrValueOutOfRange is returned for values outside the signed 224 bit range.
	ErrValueOutOfRange = errors.New("value does not fit in int224")

	maxInt224 = new(uint256.Int).Sub(new(uint256.Int).Lsh(uint256.NewInt(1), 223), uint256.NewInt(1))
	minInt224 = new(uint256.Int).Neg(new(uint256.Int).Lsh(uint256.NewInt(1), 223))
)

// Datapoint is the value and timestamp stored for a beacon or a dAPI. Value
// holds a signed integer in two's complement form.
type Datapoint struct {
	Value     *uint256.Int
	Timestamp uint32
}

// NewDatapoint returns a datapoint holding a copy of value.
func NewDatapoint(value *uint256.Int, timestamp uint32) *Datapoint {
	return &Datapoint{Value: new(uint256.Int).Set(value), Timestamp: timestamp}
}

// DatapointFromInt64 builds a datapoint from a small signed value.
func DatapointFromInt64(value int64, timestamp uint32) *Datapoint {
	return &Datapoint{Value: Int256FromInt64(value), Timestamp: timestamp}
}

// Copy returns a deep copy of the datapoint.
func (d *Datapoint) Copy() *Datapoint {
	if d == nil {
		return nil
	}
	return NewDatapoint(d.valueOrZero(), d.Timestamp)
}

// Marshal encodes the datapoint into its 36 byte storage form.
func (d *Datapoint) Marshal() []byte {
	enc := make([]byte, 0, DatapointLength)
	value := d.valueOrZero().Bytes32()
	enc = append(enc, value[:]...)
	return append(enc, bytesutil.Bytes4BigEndian(d.Timestamp)...)
}

// UnmarshalDatapoint decodes a datapoint from its storage form.
func UnmarshalDatapoint(enc []byte) (*Datapoint, error) {
	if len(enc) != DatapointLength {
		return nil, errors.Wrapf(ErrInvalidDatapointLength, "got %d bytes", len(enc))
	}
	return &Datapoint{
		Value:     new(uint256.Int).SetBytes(enc[:32]),
		Timestamp: bytesutil.FromBytes4BigEndian(enc[32:]),
	}, nil
}

// BigValue returns the signed value as a big integer.
func (d *Datapoint) BigValue() *big.Int {
	return Int256ToBig(d.valueOrZero())
}

// String implements fmt.Stringer.
func (d *Datapoint) String() string {
	if d == nil {
		return "<nil>"
	}
	return fmt.Sprintf("{value: %s, timestamp: %d}", d.BigValue().String(), d.Timestamp)
}

func (d *Datapoint) valueOrZero() *uint256.Int {
	if d.Value == nil {
		return new(uint256.Int)
	}
	return d.Value
}
