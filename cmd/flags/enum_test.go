package flags

import (
	"testing"

	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
)

func TestEnumValue(t *testing.T) {
	var dest string
	flag := EnumValue{
		Name:        "scheme",
		Enum:        []string{"ed25519", "secp256k1"},
		Value:       "ed25519",
		Destination: &dest,
	}.GenericFlag()
	assert.Equal(t, "ed25519", dest)

	require.NoError(t, flag.Value.Set("secp256k1"))
	assert.Equal(t, "secp256k1", dest)
	assert.Equal(t, "secp256k1", flag.Value.String())

	err := flag.Value.Set("rsa")
	assert.ErrorContains(t, "allowed values are ed25519, secp256k1", err)
	assert.Equal(t, "secp256k1", dest)
}
