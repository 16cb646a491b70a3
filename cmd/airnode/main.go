// Package main defines airnode, a tool for generating airnode keys, deriving
// beacon and dAPI ids, and signing or submitting beacon updates to a dAPI server.
package main

import (
	"os"

	"github.com/oraclelabs/dapi-server/runtime/version"
	"github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var log = logrus.WithField("prefix", "airnode")

var airnodeCommands []*cli.Command

func init() {
	airnodeCommands = append(airnodeCommands, keygenCommand, deriveCommand, signCommand, submitCommand)
}

func main() {
	app := &cli.App{
		Name:     "airnode",
		Usage:    "signs beacon updates for a dAPI server",
		Version:  version.Version(),
		Commands: airnodeCommands,
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
