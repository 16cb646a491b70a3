package primitives

import (
	"strings"

	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/pkg/errors"
)

// PrincipalLength is the width of a caller, reader or setter identifier.
const PrincipalLength = 32

// PrincipalFromString maps an external account identifier onto a 32 byte
// principal. 0x prefixed hex of at most 32 bytes is left padded, as for
// Ethereum addresses. Anything else is treated as an account name of at most
// 32 bytes and right padded with zeroes.
func PrincipalFromString(s string) ([32]byte, error) {
	if s == "" {
		return [32]byte{}, errors.New("empty principal")
	}
	if strings.HasPrefix(s, "0x") {
		b, err := bytesutil.DecodeHexWithPrefix(s)
		if err != nil {
			return [32]byte{}, err
		}
		if len(b) > PrincipalLength {
			return [32]byte{}, errors.Errorf("principal %s is longer than %d bytes", s, PrincipalLength)
		}
		return bytesutil.ToBytes32(bytesutil.LeftPadBytes(b, PrincipalLength)), nil
	}
	if len(s) > PrincipalLength {
		return [32]byte{}, errors.Errorf("account name %q is longer than %d bytes", s, PrincipalLength)
	}
	return bytesutil.ToBytes32([]byte(s)), nil
}
