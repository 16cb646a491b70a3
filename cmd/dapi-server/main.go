// Package main defines a dAPI server implementation. A dAPI server stores
// signed beacon readings of airnodes, aggregates them into dAPIs and serves
// them to whitelisted readers.
package main

import (
	"fmt"
	"os"
	runtimeDebug "runtime/debug"

	"github.com/oraclelabs/dapi-server/cmd"
	dbcommands "github.com/oraclelabs/dapi-server/cmd/dapi-server/db"
	"github.com/oraclelabs/dapi-server/cmd/dapi-server/flags"
	"github.com/oraclelabs/dapi-server/dapi-server/node"
	"github.com/oraclelabs/dapi-server/io/logs"
	"github.com/oraclelabs/dapi-server/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
	_ "go.uber.org/automaxprocs"
)

var appFlags = []cli.Flag{
	flags.ManagerFlag,
	flags.HTTPHostFlag,
	flags.HTTPPortFlag,
	flags.HTTPTimeoutFlag,
	flags.HTTPCorsDomainFlag,
	flags.WriteRateLimitFlag,
	flags.WriteBurstLimitFlag,
	flags.MonitoringPortFlag,
	flags.MQTTBrokerFlag,
	flags.MQTTClientIDFlag,
	flags.MQTTTopicPrefixFlag,
	flags.MQTTQoSFlag,
	flags.BackupIntervalFlag,
	flags.DatapointCacheSizeFlag,
	cmd.MinimalConfigFlag,
	cmd.DapiConfigFileFlag,
	cmd.DataDirFlag,
	cmd.VerbosityFlag,
	cmd.EnableTracingFlag,
	cmd.TracingProcessNameFlag,
	cmd.TracingEndpointFlag,
	cmd.TraceSampleFractionFlag,
	cmd.MonitoringHostFlag,
	cmd.DisableMonitoringFlag,
	cmd.EnableBackupWebhookFlag,
	cmd.BackupWebhookOutputDir,
	cmd.BoltMMapInitialSizeFlag,
	cmd.ClearDB,
	cmd.ForceClearDB,
	cmd.LogFormat,
	cmd.LogFileName,
	cmd.ConfigFileFlag,
}

func init() {
	appFlags = cmd.WrapFlags(appFlags)
}

func main() {
	app := cli.App{}
	app.Name = "dapi-server"
	app.Usage = "serves signed oracle data aggregated into dAPIs"
	app.Action = func(ctx *cli.Context) error {
		if err := startNode(ctx); err != nil {
			return cli.Exit(err.Error(), 1)
		}
		return nil
	}
	app.Version = version.Version()
	app.Commands = []*cli.Command{
		dbcommands.Commands,
	}

	app.Flags = appFlags

	app.Before = func(ctx *cli.Context) error {
		if err := cmd.LoadFlagsFromConfig(ctx, app.Flags); err != nil {
			return err
		}

		logFileName := ctx.String(cmd.LogFileName.Name)
		if err := logs.SetFormatter(ctx.String(cmd.LogFormat.Name), logFileName != ""); err != nil {
			return err
		}
		if logFileName != "" {
			if err := logs.ConfigurePersistentLogging(logFileName); err != nil {
				log.WithError(err).Error("Failed to configuring logging to disk.")
			}
		}
		return nil
	}

	defer func() {
		if x := recover(); x != nil {
			log.Errorf("Runtime panic: %v\n%v", x, string(runtimeDebug.Stack()))
			panic(x)
		}
	}()

	if err := app.Run(os.Args); err != nil {
		log.Error(err.Error())
	}
}

func startNode(ctx *cli.Context) error {
	verbosity := ctx.String(cmd.VerbosityFlag.Name)
	level, err := logrus.ParseLevel(verbosity)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)

	dapiNode, err := node.New(ctx)
	if err != nil {
		return fmt.Errorf("unable to start dAPI server: %w", err)
	}
	dapiNode.Start()
	return nil
}
