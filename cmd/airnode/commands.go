package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/logrusorgru/aurora"
	"github.com/oraclelabs/dapi-server/api/client"
	"github.com/oraclelabs/dapi-server/api/server/structs"
	"github.com/oraclelabs/dapi-server/crypto/signing"
	"github.com/oraclelabs/dapi-server/dapi-server/core/ids"
	"github.com/oraclelabs/dapi-server/dapi-server/core/signed"
	"github.com/oraclelabs/dapi-server/encoding/bytesutil"
	"github.com/oraclelabs/dapi-server/types/primitives"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

var au = aurora.NewAurora(true)

var keygenCommand = &cli.Command{
	Name:  "keygen",
	Usage: "generates a new airnode key",
	Flags: []cli.Flag{schemeFlag},
	Action: func(cliCtx *cli.Context) error {
		signer, err := signing.GenerateKey(signing.SchemeFromString(schemeName))
		if err != nil {
			return err
		}
		fmt.Printf("%s %s\n", au.BrightGreen("Scheme:"), signer.Scheme())
		fmt.Printf("%s %#x\n", au.BrightGreen("Airnode:"), signer.PublicKey())
		fmt.Printf("%s %#x\n", au.BrightRed("Secret:"), signer.Marshal())
		return nil
	},
}

var deriveCommand = &cli.Command{
	Name:  "derive",
	Usage: "derives a beacon id from an airnode and template, or a dAPI id from beacon ids",
	Flags: []cli.Flag{airnodeFlag, &cli.StringFlag{Name: templateIDFlag.Name, Usage: templateIDFlag.Usage}, beaconIDsFlag},
	Action: func(cliCtx *cli.Context) error {
		if beacons := cliCtx.StringSlice(beaconIDsFlag.Name); len(beacons) > 0 {
			id, err := deriveDapiID(beacons)
			if err != nil {
				return err
			}
			fmt.Printf("%s %#x\n", au.BrightGreen("dAPI id:"), id)
			return nil
		}
		id, err := deriveBeaconID(cliCtx.String(airnodeFlag.Name), cliCtx.String(templateIDFlag.Name))
		if err != nil {
			return err
		}
		fmt.Printf("%s %#x\n", au.BrightGreen("Beacon id:"), id)
		return nil
	},
}

var signCommand = &cli.Command{
	Name:  "sign",
	Usage: "signs a beacon update and prints it as json",
	Flags: []cli.Flag{schemeFlag, secretFlag, templateIDFlag, valueFlag, timestampFlag},
	Action: func(cliCtx *cli.Context) error {
		update, err := signUpdate(cliCtx, time.Now())
		if err != nil {
			return err
		}
		enc, err := json.MarshalIndent(structs.SignedUpdateFromConsensus(update), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(enc))
		return nil
	},
}

var submitCommand = &cli.Command{
	Name:  "submit",
	Usage: "signs a beacon update and submits it to a dAPI server",
	Flags: []cli.Flag{schemeFlag, secretFlag, templateIDFlag, valueFlag, timestampFlag, serverFlag, principalFlag},
	Action: func(cliCtx *cli.Context) error {
		update, err := signUpdate(cliCtx, time.Now())
		if err != nil {
			return err
		}
		var opts []client.ClientOpt
		if p := cliCtx.String(principalFlag.Name); p != "" {
			opts = append(opts, client.WithPrincipal(p))
		}
		c, err := client.NewClient(cliCtx.String(serverFlag.Name), opts...)
		if err != nil {
			return err
		}
		beaconID, err := c.SubmitSignedUpdate(cliCtx.Context, structs.SignedUpdateFromConsensus(update))
		if err != nil {
			return errors.Wrap(err, "could not submit update")
		}
		fmt.Printf("%s %s\n", au.BrightGreen("Updated beacon:"), beaconID)
		return nil
	},
}

func deriveBeaconID(airnode, templateID string) ([32]byte, error) {
	key, err := bytesutil.DecodeHexWithPrefix(airnode)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "invalid airnode")
	}
	template, err := bytesutil.DecodeHexBytes32(templateID)
	if err != nil {
		return [32]byte{}, errors.Wrap(err, "invalid template id")
	}
	return ids.DeriveBeaconID(key, template)
}

func deriveDapiID(beacons []string) ([32]byte, error) {
	beaconIDs, err := structs.DecodeIDs(beacons, "beacon_ids")
	if err != nil {
		return [32]byte{}, err
	}
	return ids.DeriveDapiID(beaconIDs)
}

func signUpdate(cliCtx *cli.Context, now time.Time) (*signed.Update, error) {
	secret, err := hexutil.Decode(cliCtx.String(secretFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid secret")
	}
	signer, err := signing.SignerFromBytes(signing.SchemeFromString(schemeName), secret)
	if err != nil {
		return nil, err
	}
	template, err := bytesutil.DecodeHexBytes32(cliCtx.String(templateIDFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid template id")
	}
	value, err := primitives.Int256FromDecimal(cliCtx.String(valueFlag.Name))
	if err != nil {
		return nil, errors.Wrap(err, "invalid value")
	}
	timestamp := cliCtx.Uint64(timestampFlag.Name)
	if timestamp == 0 {
		timestamp = uint64(now.Unix())
	}
	return signed.Sign(signer, template, timestamp, value)
}
