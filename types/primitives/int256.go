package primitives

import (
	"math/big"

	"github.com/holiman/uint256"
	"github.com/pkg/errors"
)

var twoTo256 = new(big.Int).Lsh(big.NewInt(1), 256)

// Int256FromInt64 returns the two's complement form of v.
func Int256FromInt64(v int64) *uint256.Int {
	if v >= 0 {
		return uint256.NewInt(uint64(v))
	}
	return new(uint256.Int).Neg(uint256.NewInt(uint64(-v)))
}

// Int256FromBig returns the two's complement form of a signed big integer.
// Values outside the signed 256 bit range are rejected.
func Int256FromBig(b *big.Int) (*uint256.Int, error) {
	if b.Sign() >= 0 {
		v, overflow := uint256.FromBig(b)
		if overflow || v.Sign() < 0 {
			return nil, errors.Errorf("value %s overflows int256", b.String())
		}
		return v, nil
	}
	abs := new(big.Int).Neg(b)
	v, overflow := uint256.FromBig(abs)
	if overflow {
		return nil, errors.Errorf("value %s overflows int256", b.String())
	}
	v.Neg(v)
	if v.Sign() > 0 {
		return nil, errors.Errorf("value %s overflows int256", b.String())
	}
	return v, nil
}

// Int256FromDecimal parses a signed decimal string.
func Int256FromDecimal(s string) (*uint256.Int, error) {
	b, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, errors.Errorf("could not parse %q as a decimal integer", s)
	}
	return Int256FromBig(b)
}

// Int256ToBig interprets v as a two's complement signed integer.
func Int256ToBig(v *uint256.Int) *big.Int {
	b := v.ToBig()
	if v.Sign() < 0 {
		b.Sub(b, twoTo256)
	}
	return b
}

// CheckInt224 returns ErrValueOutOfRange unless v lies in the signed 224 bit range.
func CheckInt224(v *uint256.Int) error {
	if v.Slt(minInt224) || v.Sgt(maxInt224) {
		return errors.Wrapf(ErrValueOutOfRange, "value %s", Int256ToBig(v).String())
	}
	return nil
}
