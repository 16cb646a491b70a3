package main

import (
	"github.com/oraclelabs/dapi-server/cmd/flags"
	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/urfave/cli/v2"
)

var schemeName string

var (
	schemeFlag = flags.EnumValue{
		Name:        "scheme",
		Usage:       "signature scheme of the airnode key",
		Enum:        []string{signing.Ed25519.String(), signing.Secp256k1.String()},
		Value:       signing.Ed25519.String(),
		Destination: &schemeName,
	}.GenericFlag()
	secretFlag = &cli.StringFlag{
		Name:     "secret",
		Usage:    "0x prefixed hex secret key of the airnode",
		Required: true,
	}
	airnodeFlag = &cli.StringFlag{
		Name:  "airnode",
		Usage: "0x prefixed hex airnode key: a 32 byte ed25519 public key or a 20 byte address",
	}
	templateIDFlag = &cli.StringFlag{
		Name:     "template-id",
		Usage:    "0x prefixed hex template id",
		Required: true,
	}
	beaconIDsFlag = &cli.StringSliceFlag{
		Name:  "beacon-ids",
		Usage: "0x prefixed hex beacon ids of a dAPI, in order",
	}
	valueFlag = &cli.StringFlag{
		Name:     "value",
		Usage:    "decimal int224 value to sign",
		Required: true,
	}
	timestampFlag = &cli.Uint64Flag{
		Name:  "timestamp",
		Usage: "unix timestamp in seconds of the update, defaults to now",
	}
	serverFlag = &cli.StringFlag{
		Name:  "server",
		Usage: "address of the dAPI server http api",
		Value: "http://127.0.0.1:3500",
	}
	principalFlag = &cli.StringFlag{
		Name:  "principal",
		Usage: "principal sent with requests to the dAPI server",
	}
)
