package cmd

import (
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
	"github.com/urfave/cli/v2/altsrc"
)

// LoadFlagsFromConfig sets flags values from config file if ConfigFileFlag is set.
func LoadFlagsFromConfig(cliCtx *cli.Context, flags []cli.Flag) error {
	if cliCtx.IsSet(ConfigFileFlag.Name) {
		if err := altsrc.InitInputSourceWithContext(flags, altsrc.NewYamlSourceFromFlagFunc(ConfigFileFlag.Name))(cliCtx); err != nil {
			return err
		}
	}
	return nil
}

// ConfigureDapiServer applies the parameter related flags to the global
// dAPI server config.
func ConfigureDapiServer(cliCtx *cli.Context) error {
	if cliCtx.Bool(MinimalConfigFlag.Name) {
		log.Warn("Using minimal config")
		params.OverrideDapiConfig(params.MinimalConfig())
	}
	if cliCtx.IsSet(DapiConfigFileFlag.Name) {
		if err := params.LoadDapiConfigFile(cliCtx.String(DapiConfigFileFlag.Name)); err != nil {
			return errors.Wrap(err, "could not load dAPI server config file")
		}
	}
	return nil
}
