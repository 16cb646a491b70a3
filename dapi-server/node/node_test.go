package node

import (
	"context"
	"flag"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/oraclelabs/dapi-server/cmd"
	"github.com/oraclelabs/dapi-server/cmd/dapi-server/flags"
	"github.com/oraclelabs/dapi-server/config/params"
	"github.com/oraclelabs/dapi-server/testing/assert"
	"github.com/oraclelabs/dapi-server/testing/require"
	"github.com/oraclelabs/dapi-server/testing/util"
	logTest "github.com/sirupsen/logrus/hooks/test"
	"github.com/urfave/cli/v2"
)

func newCliContext(t *testing.T, set func(*flag.FlagSet)) *cli.Context {
	app := cli.App{}
	fs := flag.NewFlagSet("test", 0)
	fs.String(cmd.DataDirFlag.Name, t.TempDir(), "")
	fs.String(flags.ManagerFlag.Name, "0xaa", "")
	fs.String(flags.HTTPHostFlag.Name, "127.0.0.1", "")
	fs.Int(flags.HTTPPortFlag.Name, 0, "")
	fs.String(flags.HTTPCorsDomainFlag.Name, "http://localhost:4200, ", "")
	fs.Bool(cmd.DisableMonitoringFlag.Name, true, "")
	fs.Bool(cmd.ForceClearDB.Name, false, "")
	fs.String(flags.MQTTBrokerFlag.Name, "", "")
	fs.Int(flags.MQTTQoSFlag.Name, 1, "")
	if set != nil {
		set(fs)
	}
	ctx := cli.NewContext(&app, fs, nil)
	ctx.Context = context.Background()
	return ctx
}

func TestNew_RequiresManager(t *testing.T) {
	ctx := newCliContext(t, nil)
	require.NoError(t, ctx.Set(flags.ManagerFlag.Name, ""))
	_, err := New(ctx)
	assert.ErrorContains(t, "--manager is required", err)

	require.NoError(t, ctx.Set(flags.ManagerFlag.Name, "0xzz"))
	_, err = New(ctx)
	assert.ErrorContains(t, "invalid --manager", err)
}

func TestNew_StartsAndCloses(t *testing.T) {
	hook := logTest.NewGlobal()
	ctx := newCliContext(t, nil)
	n, err := New(ctx)
	require.NoError(t, err)
	assert.Equal(t, [32]byte{31: 0xaa}, n.Server().Roles().Manager)

	done := make(chan struct{})
	go func() {
		n.Start()
		close(done)
	}()
	util.WaitForCondition(t, 5*time.Second, func() bool {
		for _, e := range hook.AllEntries() {
			if e.Message == "Starting dAPI server" {
				return true
			}
		}
		return false
	})
	n.Close()
	<-done
	assert.LogsContain(t, hook, "Stopping dAPI server")
}

func TestNew_ForceClearDB(t *testing.T) {
	ctx := newCliContext(t, nil)
	n, err := New(ctx)
	require.NoError(t, err)
	dataFile := filepath.Join(ctx.String(cmd.DataDirFlag.Name), params.DapiConfig().DatabaseFileName)
	_, err = os.Stat(dataFile)
	require.NoError(t, err)
	n.services.StopAll()
	n.closeDB()

	require.NoError(t, ctx.Set(cmd.ForceClearDB.Name, "true"))
	hook := logTest.NewGlobal()
	n, err = New(ctx)
	require.NoError(t, err)
	assert.LogsContain(t, hook, "Removing database")
	n.closeDB()
}

func TestNew_InvalidQoS(t *testing.T) {
	ctx := newCliContext(t, nil)
	require.NoError(t, ctx.Set(flags.MQTTBrokerFlag.Name, "tcp://127.0.0.1:1883"))
	require.NoError(t, ctx.Set(flags.MQTTQoSFlag.Name, "3"))
	_, err := New(ctx)
	assert.ErrorContains(t, "invalid --mqtt-qos 3", err)
}
